package dotosu

// Beatmap is the aggregate produced by one Decode call. It is built once and
// never mutated by this package afterwards; callers that need a different
// model reparse from scratch.
type Beatmap struct {
	FormatVersion int

	General    General
	Editor     Editor
	Metadata   Metadata
	Difficulty Difficulty

	Events          []Event
	UnhandledEvents []string

	TimingPoints []TimingPoint
	Colors       Colors
	HitObjects   []HitObject
}

type Countdown int

const (
	NoCountdown Countdown = iota
	CountdownNormal
	CountdownHalf
	CountdownDouble
)

type GameMode int

const (
	ModeStandard GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// SampleSet is the named default sample set from [General].
type SampleSet string

const (
	SampleSetNormal SampleSet = "Normal"
	SampleSetSoft   SampleSet = "Soft"
	SampleSetDrum   SampleSet = "Drum"
)

// OverlayPosition controls the draw order of hit circle overlays
// relative to hit numbers.
type OverlayPosition string

const (
	OverlayNoChange OverlayPosition = "NoChange"
	OverlayBelow    OverlayPosition = "Below"
	OverlayAbove    OverlayPosition = "Above"
)

type General struct {
	// AudioFilename is the audio file location relative to the beatmap folder.
	AudioFilename string
	// AudioLeadIn is milliseconds of silence before the audio starts.
	AudioLeadIn int
	// AudioHash is deprecated but still present in old files.
	AudioHash string
	// PreviewTime is when the audio preview starts, -1 if unset.
	PreviewTime int
	Countdown   Countdown
	SampleSet   SampleSet
	// StackLeniency is the threshold multiplier for object stacking (0-1).
	StackLeniency     float64
	Mode              GameMode
	LetterboxInBreaks bool
	// StoryFireInFront is deprecated.
	StoryFireInFront bool
	UseSkinSprites   bool
	// AlwaysShowPlayfield is deprecated.
	AlwaysShowPlayfield bool
	OverlayPosition     OverlayPosition
	SkinPreference      string
	EpilepsyWarning     bool
	// CountdownOffset is in beats, not milliseconds.
	CountdownOffset          int
	SpecialStyle             bool
	WidescreenStoryboard     bool
	SamplesMatchPlaybackRate bool
}

type Editor struct {
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64
	// Bookmarks holds editor bookmark times in milliseconds.
	Bookmarks []int
}

type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	// Version is the difficulty name.
	Version      string
	Source       string
	Tags         []string
	BeatmapID    int
	BeatmapSetID int
}

type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	// SliderMultiplier is the base slider velocity in hundreds of
	// osu! pixels per beat.
	SliderMultiplier float64
	SliderTickRate   float64
}

type EventKind uint8

const (
	EventBackground EventKind = iota
	EventVideo
	EventBreak
)

// Event is one background, video, or break entry from [Events].
// Filename and the offsets are meaningful for backgrounds and videos,
// EndTime for breaks.
type Event struct {
	Kind      EventKind
	StartTime int
	Filename  string
	XOffset   int
	YOffset   int
	EndTime   int
}

// Color is an RGB combo or skin color from [Colours].
type Color struct {
	R, G, B uint8
}

// Colors holds the [Colours] section. The on-disk header keeps the British
// spelling; the model does not.
type Colors struct {
	// Combo colors in file order.
	Combo []Color

	SliderTrackOverride *Color
	SliderBorder        *Color
}

// newBeatmap returns a Beatmap carrying the format's documented defaults
// for fields the file may omit.
func newBeatmap() *Beatmap {
	return &Beatmap{
		General: General{
			PreviewTime:      -1,
			Countdown:        CountdownNormal,
			SampleSet:        SampleSetNormal,
			StackLeniency:    0.7,
			StoryFireInFront: true,
			OverlayPosition:  OverlayNoChange,
		},
		Editor: Editor{
			DistanceSpacing: 1,
			BeatDivisor:     4,
			GridSize:        64,
		},
		Metadata: Metadata{
			BeatmapID:    -1,
			BeatmapSetID: -1,
		},
		Difficulty: Difficulty{
			HPDrainRate:       5,
			CircleSize:        5,
			OverallDifficulty: 5,
			ApproachRate:      5,
			SliderMultiplier:  5,
			SliderTickRate:    5,
		},
	}
}
