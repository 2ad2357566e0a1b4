package dotosu

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
)

// HitObject is a sealed sum over Circle, Slider and Spinner. Mania hold
// notes are recognized in the type flags but produce no record; this is a
// documented format limitation, not an error. Consumers switch on the
// concrete type:
//
//	switch o := obj.(type) {
//	case *dotosu.Circle:
//	case *dotosu.Slider:
//	case *dotosu.Spinner:
//	}
type HitObject interface {
	Kind() ObjectKind
	StartTime() int

	hitObject()
}

// HitSample is the colon-delimited 5-tuple sample descriptor attached to
// a hit object or slider edge. The zero value means "all defaults".
type HitSample struct {
	NormalSet   SampleBank
	AdditionSet SampleBank
	// Index of the custom sample bank; 0 falls back to the timing point's.
	Index int
	// Volume from 1 to 100; 0 falls back to the timing point's.
	Volume   int
	Filename string
}

// EdgeSet is the normalSet:additionSet pair for one slider edge.
type EdgeSet struct {
	NormalSet   SampleBank
	AdditionSet SampleBank
}

type CurveType uint8

const (
	CurveBezier CurveType = iota
	CurveCatmull
	CurveLinear
	CurvePerfect
)

type Point struct {
	X, Y int
}

// Curve is one independently interpolated piece of a slider's path. The
// first point of the first curve is the slider's own position.
type Curve struct {
	Type   CurveType
	Points []Point
}

// HitObjectBase carries the fields common to every object variant.
type HitObjectBase struct {
	X, Y int
	// Time in milliseconds when the object is hit.
	Time      int
	TypeFlags TypeFlags
	HitSound  HitSound
	NewCombo  bool
	ComboSkip int
	Sample    HitSample
}

func (b *HitObjectBase) StartTime() int { return b.Time }

type Circle struct {
	HitObjectBase
}

func (*Circle) Kind() ObjectKind { return KindCircle }
func (*Circle) hitObject()       {}

type Slider struct {
	HitObjectBase
	Curves []Curve
	// Slides is the number of path traversals, repeat count plus one.
	Slides int
	// Length is the nominal pixel length of the path.
	Length     float64
	EdgeSounds []HitSound
	EdgeSets   []EdgeSet

	// Populated by the resolver.
	EndTime  float64
	Duration float64
	// TimingPointIndex indexes Beatmap.TimingPoints at the governing
	// point; -1 until resolved.
	TimingPointIndex int
}

func (*Slider) Kind() ObjectKind { return KindSlider }
func (*Slider) hitObject()       {}

type Spinner struct {
	HitObjectBase
	EndTime int
}

func (*Spinner) Kind() ObjectKind { return KindSpinner }
func (*Spinner) hitObject()       {}
