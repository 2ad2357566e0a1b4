// Package dotosu decodes .osu beatmap files into a typed in-memory model
// and resolves the timing properties the file does not store verbatim:
// beat durations on inherited timing points and slider end times.
//
// Decoding is strict. Structural, type and missing-context problems abort
// the load; a partially built Beatmap is never returned. Unknown keys
// inside a recognized section and entire unrecognized sections are
// skipped for forward compatibility with newer format revisions.
package dotosu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type section int

const (
	secNone section = iota
	secGeneral
	secEditor
	secMetadata
	secDifficulty
	secEvents
	secTimingPoints
	secColours
	secHitObjects
	secUnknown
)

var sectionNames = map[section]string{
	secNone:         "",
	secGeneral:      "General",
	secEditor:       "Editor",
	secMetadata:     "Metadata",
	secDifficulty:   "Difficulty",
	secEvents:       "Events",
	secTimingPoints: "TimingPoints",
	secColours:      "Colours",
	secHitObjects:   "HitObjects",
	secUnknown:      "?",
}

// DecodeFile opens path and decodes it as a .osu beatmap.
func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open beatmap: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a .osu beatmap from r, builds the full model and resolves
// timing point and slider properties. The returned Beatmap is independent
// of r and is not mutated by this package after Decode returns.
func Decode(r io.Reader) (*Beatmap, error) {
	const (
		initialBufSize = 64 * 1024
		maxBufSize     = 1024 * 1024
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, initialBufSize), maxBufSize)

	d := &decoder{b: newBeatmap(), section: secNone}

	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		d.line++
		if err := d.next(line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read beatmap: %w", err)
	}

	if err := resolve(d.b); err != nil {
		return nil, err
	}
	return d.b, nil
}

// decoder threads the router state through the line fold: the active
// section, the line counter for error context, and the model under
// construction.
type decoder struct {
	b       *Beatmap
	section section
	line    int
}

func (d *decoder) sectionName() string { return sectionNames[d.section] }

func (d *decoder) next(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "//") {
		return nil
	}

	if strings.HasPrefix(line, "[") {
		if !strings.HasSuffix(line, "]") {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "malformed section header"}
		}
		// Header names are matched case-sensitively; note the on-disk
		// British spelling of Colours. An unrecognized name routes the
		// section's lines to an explicit skip state.
		switch line[1 : len(line)-1] {
		case "General":
			d.section = secGeneral
		case "Editor":
			d.section = secEditor
		case "Metadata":
			d.section = secMetadata
		case "Difficulty":
			d.section = secDifficulty
		case "Events":
			d.section = secEvents
		case "TimingPoints":
			d.section = secTimingPoints
		case "Colours":
			d.section = secColours
		case "HitObjects":
			d.section = secHitObjects
		default:
			d.section = secUnknown
		}
		return nil
	}

	switch d.section {
	case secNone:
		if strings.HasPrefix(line, "osu file format v") {
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "osu file format v")))
			if err != nil {
				return &TypeCoercionError{Section: "", Line: d.line, Key: "format version", Value: line, Want: "integer"}
			}
			d.b.FormatVersion = v
			return nil
		}
		return &MissingContextError{Line: d.line, Reason: fmt.Sprintf("data line %q before any section header", line)}
	case secUnknown:
		return nil
	case secGeneral:
		return d.generalLine(line)
	case secEditor:
		return d.editorLine(line)
	case secMetadata:
		return d.metadataLine(line)
	case secDifficulty:
		return d.difficultyLine(line)
	case secEvents:
		return d.eventLine(line)
	case secTimingPoints:
		return d.timingPointLine(line)
	case secColours:
		return d.colorLine(line)
	case secHitObjects:
		return d.hitObjectLine(line)
	}
	return nil
}

// splitKeyValue splits on the first colon only, so values that contain
// colons (song titles, sources) survive intact.
func splitKeyValue(line string) (key, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func (d *decoder) keyValue(line string) (string, string, error) {
	k, v, ok := splitKeyValue(line)
	if !ok {
		return "", "", &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "missing key/value separator"}
	}
	return k, v, nil
}

func (d *decoder) intField(key, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &TypeCoercionError{Section: d.sectionName(), Line: d.line, Key: key, Value: v, Want: "integer"}
	}
	return n, nil
}

func (d *decoder) floatField(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &TypeCoercionError{Section: d.sectionName(), Line: d.line, Key: key, Value: v, Want: "decimal"}
	}
	return f, nil
}

func (d *decoder) boolField(key, v string) (bool, error) {
	n, err := d.intField(key, v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (d *decoder) generalLine(line string) error {
	k, v, err := d.keyValue(line)
	if err != nil {
		return err
	}
	g := &d.b.General
	switch k {
	case "AudioFilename":
		g.AudioFilename = v
	case "AudioLeadIn":
		g.AudioLeadIn, err = d.intField(k, v)
	case "AudioHash":
		g.AudioHash = v
	case "PreviewTime":
		g.PreviewTime, err = d.intField(k, v)
	case "Countdown":
		var n int
		if n, err = d.intField(k, v); err == nil {
			if n < int(NoCountdown) || n > int(CountdownDouble) {
				return &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "countdown", Value: v}
			}
			g.Countdown = Countdown(n)
		}
	case "SampleSet":
		switch SampleSet(v) {
		case SampleSetNormal, SampleSetSoft, SampleSetDrum:
			g.SampleSet = SampleSet(v)
		default:
			return &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "sample set", Value: v}
		}
	case "StackLeniency":
		g.StackLeniency, err = d.floatField(k, v)
	case "Mode":
		var n int
		if n, err = d.intField(k, v); err == nil {
			if n < int(ModeStandard) || n > int(ModeMania) {
				return &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "game mode", Value: v}
			}
			g.Mode = GameMode(n)
		}
	case "LetterboxInBreaks":
		g.LetterboxInBreaks, err = d.boolField(k, v)
	case "StoryFireInFront":
		g.StoryFireInFront, err = d.boolField(k, v)
	case "UseSkinSprites":
		g.UseSkinSprites, err = d.boolField(k, v)
	case "AlwaysShowPlayfield":
		g.AlwaysShowPlayfield, err = d.boolField(k, v)
	case "OverlayPosition":
		switch OverlayPosition(v) {
		case OverlayNoChange, OverlayBelow, OverlayAbove:
			g.OverlayPosition = OverlayPosition(v)
		default:
			return &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "overlay position", Value: v}
		}
	case "SkinPreference":
		g.SkinPreference = v
	case "EpilepsyWarning":
		g.EpilepsyWarning, err = d.boolField(k, v)
	case "CountdownOffset":
		g.CountdownOffset, err = d.intField(k, v)
	case "SpecialStyle":
		g.SpecialStyle, err = d.boolField(k, v)
	case "WidescreenStoryboard":
		g.WidescreenStoryboard, err = d.boolField(k, v)
	case "SamplesMatchPlaybackRate":
		g.SamplesMatchPlaybackRate, err = d.boolField(k, v)
	}
	return err
}

func (d *decoder) editorLine(line string) error {
	k, v, err := d.keyValue(line)
	if err != nil {
		return err
	}
	e := &d.b.Editor
	switch k {
	case "DistanceSpacing":
		e.DistanceSpacing, err = d.floatField(k, v)
	case "BeatDivisor":
		e.BeatDivisor, err = d.intField(k, v)
	case "GridSize":
		e.GridSize, err = d.intField(k, v)
	case "TimelineZoom":
		e.TimelineZoom, err = d.floatField(k, v)
	case "Bookmarks":
		var marks []int
		for _, tok := range strings.Split(v, ",") {
			n, err := d.intField(k, tok)
			if err != nil {
				return err
			}
			marks = append(marks, n)
		}
		e.Bookmarks = marks
	}
	return err
}

func (d *decoder) metadataLine(line string) error {
	k, v, err := d.keyValue(line)
	if err != nil {
		return err
	}
	m := &d.b.Metadata
	switch k {
	case "Title":
		m.Title = v
	case "TitleUnicode":
		m.TitleUnicode = v
	case "Artist":
		m.Artist = v
	case "ArtistUnicode":
		m.ArtistUnicode = v
	case "Creator":
		m.Creator = v
	case "Version":
		m.Version = v
	case "Source":
		m.Source = v
	case "Tags":
		m.Tags = strings.Split(v, " ")
	case "BeatmapID":
		m.BeatmapID, err = d.intField(k, v)
	case "BeatmapSetID":
		m.BeatmapSetID, err = d.intField(k, v)
	}
	return err
}

func (d *decoder) difficultyLine(line string) error {
	k, v, err := d.keyValue(line)
	if err != nil {
		return err
	}
	f := &d.b.Difficulty
	switch k {
	case "HPDrainRate":
		f.HPDrainRate, err = d.floatField(k, v)
	case "CircleSize":
		f.CircleSize, err = d.floatField(k, v)
	case "OverallDifficulty":
		f.OverallDifficulty, err = d.floatField(k, v)
	case "ApproachRate":
		f.ApproachRate, err = d.floatField(k, v)
	case "SliderMultiplier":
		f.SliderMultiplier, err = d.floatField(k, v)
	case "SliderTickRate":
		f.SliderTickRate, err = d.floatField(k, v)
	}
	return err
}

func (d *decoder) eventLine(line string) error {
	parts := splitCSV(line)
	switch parts[0] {
	case "0", "Background":
		if len(parts) < 3 {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "background event needs type, start time and filename"}
		}
		ev := Event{Kind: EventBackground, Filename: cleanFilename(parts[2])}
		var err error
		if ev.StartTime, err = d.intField("startTime", parts[1]); err != nil {
			return err
		}
		if len(parts) >= 5 {
			if ev.XOffset, err = d.intField("xOffset", parts[3]); err != nil {
				return err
			}
			if ev.YOffset, err = d.intField("yOffset", parts[4]); err != nil {
				return err
			}
		}
		d.b.Events = append(d.b.Events, ev)
	case "1", "Video":
		if len(parts) < 3 {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "video event needs type, start time and filename"}
		}
		ev := Event{Kind: EventVideo, Filename: cleanFilename(parts[2])}
		var err error
		if ev.StartTime, err = d.intField("startTime", parts[1]); err != nil {
			return err
		}
		if len(parts) >= 5 {
			if ev.XOffset, err = d.intField("xOffset", parts[3]); err != nil {
				return err
			}
			if ev.YOffset, err = d.intField("yOffset", parts[4]); err != nil {
				return err
			}
		}
		d.b.Events = append(d.b.Events, ev)
	case "2", "Break":
		if len(parts) < 3 {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "break event needs type, start time and end time"}
		}
		ev := Event{Kind: EventBreak}
		var err error
		if ev.StartTime, err = d.intField("startTime", parts[1]); err != nil {
			return err
		}
		if ev.EndTime, err = d.intField("endTime", parts[2]); err != nil {
			return err
		}
		d.b.Events = append(d.b.Events, ev)
	default:
		// Storyboard commands and newer event types pass through raw.
		d.b.UnhandledEvents = append(d.b.UnhandledEvents, line)
	}
	return nil
}

func (d *decoder) timingPointLine(line string) error {
	parts := strings.Split(line, ",")
	if len(parts) != 8 {
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: fmt.Sprintf("timing point needs 8 fields, got %d", len(parts))}
	}
	tp := TimingPoint{SVMultiplier: 1}
	var err error
	if tp.Time, err = d.floatField("time", parts[0]); err != nil {
		return err
	}
	beatLength, err := d.floatField("beatLength", parts[1])
	if err != nil {
		return err
	}
	if tp.Meter, err = d.intField("meter", parts[2]); err != nil {
		return err
	}
	if tp.SampleSet, err = d.sampleBank("sampleSet", parts[3]); err != nil {
		return err
	}
	if tp.SampleIndex, err = d.intField("sampleIndex", parts[4]); err != nil {
		return err
	}
	if tp.Volume, err = d.intField("volume", parts[5]); err != nil {
		return err
	}
	if tp.Uninherited, err = d.boolField("uninherited", parts[6]); err != nil {
		return err
	}
	effects, err := d.intField("effects", parts[7])
	if err != nil {
		return err
	}
	tp.Effects = DecodeEffects(effects)

	if tp.Uninherited {
		tp.BeatDuration = beatLength
	} else {
		if beatLength == 0 {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "inherited timing point with zero beat length"}
		}
		tp.SVMultiplier = -100 / beatLength
	}
	d.b.TimingPoints = append(d.b.TimingPoints, tp)
	return nil
}

func (d *decoder) sampleBank(key, v string) (SampleBank, error) {
	n, err := d.intField(key, v)
	if err != nil {
		return BankDefault, err
	}
	if n < int(BankDefault) || n > int(BankDrum) {
		return BankDefault, &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "sample set", Value: v}
	}
	return SampleBank(n), nil
}

func (d *decoder) colorLine(line string) error {
	k, v, err := d.keyValue(line)
	if err != nil {
		return err
	}
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "color needs 3 channels"}
	}
	var c Color
	for i, field := range []*uint8{&c.R, &c.G, &c.B} {
		n, err := d.intField(k, parts[i])
		if err != nil {
			return err
		}
		if n < 0 || n > 255 {
			return &TypeCoercionError{Section: d.sectionName(), Line: d.line, Key: k, Value: parts[i], Want: "color channel (0-255)"}
		}
		*field = uint8(n)
	}
	switch {
	case strings.HasPrefix(k, "Combo"):
		d.b.Colors.Combo = append(d.b.Colors.Combo, c)
	case k == "SliderTrackOverride":
		d.b.Colors.SliderTrackOverride = &c
	case k == "SliderBorder":
		d.b.Colors.SliderBorder = &c
	}
	return nil
}

// splitCSV splits an event line on commas outside double quotes, so quoted
// filenames keep embedded commas.
func splitCSV(line string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '"':
			inQuote = !inQuote
		case ',':
			if inQuote {
				cur.WriteByte(c)
			} else {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, strings.TrimSpace(cur.String()))
}

func cleanFilename(s string) string {
	s = strings.Trim(s, "\"")
	return strings.ReplaceAll(s, "\\", "/")
}
