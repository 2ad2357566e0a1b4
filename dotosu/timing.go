package dotosu

// SampleBank is the integer sample set used by timing points and hit
// sample descriptors. 0 means "use the default for the context".
type SampleBank int

const (
	BankDefault SampleBank = iota
	BankNormal
	BankSoft
	BankDrum
)

// TimingPoint is one [TimingPoints] entry. Uninherited points carry an
// authoritative BeatDuration and start a new measure group; inherited
// points scale slider velocity within the current group and receive
// their group's BeatDuration during resolution.
type TimingPoint struct {
	// Time in milliseconds. Not guaranteed integral; some maps store
	// fractional times.
	Time float64
	// Meter is beats per measure. Inherited points ignore it.
	Meter       int
	SampleSet   SampleBank
	SampleIndex int
	Volume      int
	Uninherited bool
	Effects     Effects

	// BeatDuration is the duration of one beat in milliseconds. Set at
	// parse time on uninherited points, filled in on inherited points by
	// the resolver. Zero on an inherited point that precedes every
	// uninherited point.
	BeatDuration float64
	// SVMultiplier is the slider velocity multiplier, -100 divided by the
	// stored beat length on inherited points, 1 otherwise.
	SVMultiplier float64
}
