package dotosu

import (
	"cmp"
	"fmt"
	"slices"
)

// resolve runs the two post-parse passes. Files are not required to list
// timing points or hit objects in time order, so both sequences are
// sorted first.
//
// Pass A propagates the beat duration of each uninherited timing point
// onto the inherited points that follow it. Pass B walks sliders with a
// monotonically advancing timing-point cursor, binds each slider to the
// last point whose time is <= the slider's start time, and derives the
// slider's duration and end time from that point.
func resolve(b *Beatmap) error {
	slices.SortStableFunc(b.TimingPoints, func(x, y TimingPoint) int {
		return cmp.Compare(x.Time, y.Time)
	})
	slices.SortStableFunc(b.HitObjects, func(x, y HitObject) int {
		return cmp.Compare(x.StartTime(), y.StartTime())
	})

	var lastBeatDuration float64
	seenUninherited := false
	for i := range b.TimingPoints {
		tp := &b.TimingPoints[i]
		if tp.Uninherited {
			lastBeatDuration = tp.BeatDuration
			seenUninherited = true
		} else if seenUninherited {
			tp.BeatDuration = lastBeatDuration
		}
	}

	cursor := 0
	for _, obj := range b.HitObjects {
		sl, ok := obj.(*Slider)
		if !ok {
			continue
		}
		if len(b.TimingPoints) == 0 {
			return &MissingContextError{Reason: fmt.Sprintf("slider at %dms needs a timing point but the beatmap has none", sl.Time)}
		}
		for cursor+1 < len(b.TimingPoints) && b.TimingPoints[cursor+1].Time <= float64(sl.Time) {
			cursor++
		}
		tp := &b.TimingPoints[cursor]
		if tp.BeatDuration == 0 {
			return &MissingContextError{Reason: fmt.Sprintf("slider at %dms is governed by a timing point with no beat duration; no uninherited timing point precedes it", sl.Time)}
		}

		duration := tp.BeatDuration * float64(sl.Slides) * sl.Length /
			(tp.SVMultiplier * 100 * b.Difficulty.SliderMultiplier)
		sl.Duration = duration
		sl.EndTime = float64(sl.Time) + duration
		sl.TimingPointIndex = cursor
	}
	return nil
}
