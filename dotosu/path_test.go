package dotosu

import (
	"reflect"
	"testing"
)

func TestSegmentCurvesBezierSplitsOnDuplicate(t *testing.T) {
	head := Point{X: 100, Y: 100}
	anchors := []Point{{150, 100}, {150, 100}, {200, 150}}

	curves := segmentCurves(CurveBezier, head, anchors)
	want := []Curve{
		{Type: CurveBezier, Points: []Point{{100, 100}, {150, 100}}},
		{Type: CurveBezier, Points: []Point{{150, 100}, {200, 150}}},
	}
	if !reflect.DeepEqual(curves, want) {
		t.Errorf("curves = %+v, want %+v", curves, want)
	}
}

func TestSegmentCurvesBezierNoDuplicate(t *testing.T) {
	head := Point{X: 0, Y: 0}
	anchors := []Point{{10, 0}, {20, 10}}

	curves := segmentCurves(CurveBezier, head, anchors)
	if len(curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(curves))
	}
	if want := []Point{{0, 0}, {10, 0}, {20, 10}}; !reflect.DeepEqual(curves[0].Points, want) {
		t.Errorf("points = %v, want %v", curves[0].Points, want)
	}
}

func TestSegmentCurvesDuplicateOfHeadSplits(t *testing.T) {
	// The head participates in the sequence, so an anchor equal to the
	// head opens a second segment immediately.
	head := Point{X: 50, Y: 50}
	anchors := []Point{{50, 50}, {80, 80}}

	curves := segmentCurves(CurveBezier, head, anchors)
	if len(curves) != 2 {
		t.Fatalf("got %d curves, want 2", len(curves))
	}
	if want := []Point{{50, 50}}; !reflect.DeepEqual(curves[0].Points, want) {
		t.Errorf("first segment = %v, want %v", curves[0].Points, want)
	}
	if want := []Point{{50, 50}, {80, 80}}; !reflect.DeepEqual(curves[1].Points, want) {
		t.Errorf("second segment = %v, want %v", curves[1].Points, want)
	}
}

func TestSegmentCurvesNonBezierNeverSplits(t *testing.T) {
	head := Point{X: 0, Y: 0}
	anchors := []Point{{10, 10}, {10, 10}, {20, 20}}

	for _, ct := range []CurveType{CurveCatmull, CurveLinear, CurvePerfect} {
		curves := segmentCurves(ct, head, anchors)
		if len(curves) != 1 {
			t.Errorf("type %d: got %d curves, want 1", ct, len(curves))
			continue
		}
		if want := []Point{{0, 0}, {10, 10}, {10, 10}, {20, 20}}; !reflect.DeepEqual(curves[0].Points, want) {
			t.Errorf("type %d: points = %v, want %v", ct, curves[0].Points, want)
		}
	}
}
