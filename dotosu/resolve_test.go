package dotosu

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveSliderBindsToGoverningPoint(t *testing.T) {
	// Inherited point at t=1000 with sv multiplier 2 (beat length -50);
	// slider at t=1000 binds to it:
	// duration = 500*2*350 / (2*100*1.4) = 1250.
	in := `[Difficulty]
SliderMultiplier: 1.4

[TimingPoints]
0,500,4,1,0,100,1,0
1000,-50,4,1,0,100,0,0

[HitObjects]
100,100,1000,2,0,L|300:100,2,350,0|0|0,0:0|0:0|0:0
`
	b, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sl := b.HitObjects[0].(*Slider)
	if sl.Duration != 1250 {
		t.Errorf("Duration = %v, want 1250", sl.Duration)
	}
	if sl.EndTime != 2250 {
		t.Errorf("EndTime = %v, want 2250", sl.EndTime)
	}
	if sl.TimingPointIndex != 1 {
		t.Errorf("TimingPointIndex = %d, want 1", sl.TimingPointIndex)
	}
}

func TestResolveSortsBeforeBinding(t *testing.T) {
	// Timing points and objects deliberately out of file order.
	in := `[Difficulty]
SliderMultiplier: 1

[TimingPoints]
5000,-100,4,1,0,100,0,0
0,400,4,1,0,100,1,0

[HitObjects]
0,0,6000,2,0,L|100:0,1,100,0|0,0:0|0:0
0,0,1000,2,0,L|100:0,1,100,0|0,0:0|0:0
`
	b, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.TimingPoints[0].Time != 0 || b.TimingPoints[1].Time != 5000 {
		t.Fatalf("timing points not sorted: %+v", b.TimingPoints)
	}
	early := b.HitObjects[0].(*Slider)
	late := b.HitObjects[1].(*Slider)
	if early.Time != 1000 || late.Time != 6000 {
		t.Fatalf("hit objects not sorted: %d, %d", early.Time, late.Time)
	}
	if early.TimingPointIndex != 0 {
		t.Errorf("early slider index = %d, want 0", early.TimingPointIndex)
	}
	if late.TimingPointIndex != 1 {
		t.Errorf("late slider index = %d, want 1", late.TimingPointIndex)
	}
	// 400 * 1 * 100 / (1 * 100 * 1) = 400 on the uninherited point,
	// sv 1 on the inherited one leaves the math identical.
	if early.Duration != 400 || late.Duration != 400 {
		t.Errorf("durations = %v, %v, want 400, 400", early.Duration, late.Duration)
	}
}

func TestResolveCursorNeverRewinds(t *testing.T) {
	in := `[Difficulty]
SliderMultiplier: 1

[TimingPoints]
0,500,4,1,0,100,1,0
2000,250,4,1,0,100,1,0

[HitObjects]
0,0,2500,2,0,L|100:0,1,100,0|0,0:0|0:0
0,0,3000,2,0,L|100:0,1,100,0|0,0:0|0:0
`
	b, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, obj := range b.HitObjects {
		sl := obj.(*Slider)
		if sl.TimingPointIndex != 1 {
			t.Errorf("slider %d index = %d, want 1", i, sl.TimingPointIndex)
		}
		if sl.Duration != 250 {
			t.Errorf("slider %d duration = %v, want 250", i, sl.Duration)
		}
	}
}

func TestResolveSliderWithoutTimingPoints(t *testing.T) {
	in := "[HitObjects]\n0,0,1000,2,0,L|100:0,1,100,0|0,0:0|0:0\n"
	_, err := Decode(strings.NewReader(in))
	var mc *MissingContextError
	if !errors.As(err, &mc) {
		t.Fatalf("err = %v, want MissingContextError", err)
	}
}

func TestResolveSliderBeforeAnyUninheritedPoint(t *testing.T) {
	// Only an inherited point exists, so no beat duration is ever in effect.
	in := `[TimingPoints]
0,-50,4,1,0,100,0,0

[HitObjects]
0,0,1000,2,0,L|100:0,1,100,0|0,0:0|0:0
`
	_, err := Decode(strings.NewReader(in))
	var mc *MissingContextError
	if !errors.As(err, &mc) {
		t.Fatalf("err = %v, want MissingContextError", err)
	}
}

func TestResolveNoSlidersNeedsNoTimingPoints(t *testing.T) {
	in := "[HitObjects]\n256,192,1000,1,0\n"
	b, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(b.HitObjects) != 1 {
		t.Errorf("got %d hit objects, want 1", len(b.HitObjects))
	}
}
