package dotosu

// segmentCurves splits the slider's anchor sequence into curves. The
// slider's own position is always the first anchor. Bézier paths start a
// new segment whenever an anchor exactly repeats the one before it; the
// duplicated anchor opens the new segment. Every other curve type is a
// single segment carrying the whole sequence.
func segmentCurves(ct CurveType, head Point, anchors []Point) []Curve {
	pts := make([]Point, 0, len(anchors)+1)
	pts = append(pts, head)
	pts = append(pts, anchors...)

	if ct != CurveBezier {
		return []Curve{{Type: ct, Points: pts}}
	}

	var curves []Curve
	cur := []Point{pts[0]}
	for _, p := range pts[1:] {
		if p == cur[len(cur)-1] {
			curves = append(curves, Curve{Type: CurveBezier, Points: cur})
			cur = []Point{p}
			continue
		}
		cur = append(cur, p)
	}
	return append(curves, Curve{Type: CurveBezier, Points: cur})
}
