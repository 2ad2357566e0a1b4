package dotosu

import (
	"fmt"
	"strings"
)

// hitObjectLine builds one hit object from a [HitObjects] line:
// x,y,time,type,hitSound followed by the variant's own parameters.
func (d *decoder) hitObjectLine(line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 5 {
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: fmt.Sprintf("hit object needs at least 5 fields, got %d", len(parts))}
	}

	var base HitObjectBase
	var err error
	if base.X, err = d.intField("x", parts[0]); err != nil {
		return err
	}
	if base.Y, err = d.intField("y", parts[1]); err != nil {
		return err
	}
	if base.Time, err = d.intField("time", parts[2]); err != nil {
		return err
	}
	typeRaw, err := d.intField("type", parts[3])
	if err != nil {
		return err
	}
	soundRaw, err := d.intField("hitSound", parts[4])
	if err != nil {
		return err
	}
	base.TypeFlags = TypeFlags(typeRaw)
	base.HitSound = DecodeHitSound(soundRaw)
	base.NewCombo = base.TypeFlags.NewCombo()
	base.ComboSkip = base.TypeFlags.ComboSkip()

	rest := parts[5:]
	switch typeRaw & kindMask {
	case flagCircle:
		return d.buildCircle(base, rest, line)
	case flagSlider:
		return d.buildSlider(base, rest, line)
	case flagSpinner:
		return d.buildSpinner(base, rest, line)
	case flagHold:
		// Mania hold notes are a recognized but unsupported format
		// feature: the line parses, no record is appended.
		return nil
	default:
		return &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "object type", Value: parts[3]}
	}
}

func (d *decoder) buildCircle(base HitObjectBase, rest []string, line string) error {
	switch len(rest) {
	case 0:
	case 1:
		var err error
		if base.Sample, err = d.hitSample(rest[0]); err != nil {
			return err
		}
	default:
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "too many fields for a circle"}
	}
	d.b.HitObjects = append(d.b.HitObjects, &Circle{HitObjectBase: base})
	return nil
}

func (d *decoder) buildSpinner(base HitObjectBase, rest []string, line string) error {
	if len(rest) < 1 || len(rest) > 2 {
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: "spinner needs an end time and an optional hit sample"}
	}
	endTime, err := d.intField("endTime", rest[0])
	if err != nil {
		return err
	}
	if len(rest) == 2 {
		if base.Sample, err = d.hitSample(rest[1]); err != nil {
			return err
		}
	}
	d.b.HitObjects = append(d.b.HitObjects, &Spinner{HitObjectBase: base, EndTime: endTime})
	return nil
}

func (d *decoder) buildSlider(base HitObjectBase, rest []string, line string) error {
	if len(rest) < 5 || len(rest) > 6 {
		return &StructuralError{Section: d.sectionName(), Line: d.line, Content: line, Reason: fmt.Sprintf("slider needs 5 or 6 object parameters, got %d", len(rest))}
	}

	curveType, anchors, err := d.curveSpec(rest[0])
	if err != nil {
		return err
	}
	slides, err := d.intField("slides", rest[1])
	if err != nil {
		return err
	}
	length, err := d.floatField("length", rest[2])
	if err != nil {
		return err
	}

	var edgeSounds []HitSound
	for _, tok := range strings.Split(rest[3], "|") {
		n, err := d.intField("edgeSounds", tok)
		if err != nil {
			return err
		}
		edgeSounds = append(edgeSounds, DecodeHitSound(n))
	}

	var edgeSets []EdgeSet
	for _, tok := range strings.Split(rest[4], "|") {
		pair := strings.Split(tok, ":")
		if len(pair) != 2 {
			return &StructuralError{Section: d.sectionName(), Line: d.line, Content: tok, Reason: "edge set needs a normalSet:additionSet pair"}
		}
		var es EdgeSet
		if es.NormalSet, err = d.sampleBank("edgeSets", pair[0]); err != nil {
			return err
		}
		if es.AdditionSet, err = d.sampleBank("edgeSets", pair[1]); err != nil {
			return err
		}
		edgeSets = append(edgeSets, es)
	}

	if len(rest) == 6 {
		if base.Sample, err = d.hitSample(rest[5]); err != nil {
			return err
		}
	}

	d.b.HitObjects = append(d.b.HitObjects, &Slider{
		HitObjectBase:    base,
		Curves:           segmentCurves(curveType, Point{X: base.X, Y: base.Y}, anchors),
		Slides:           slides,
		Length:           length,
		EdgeSounds:       edgeSounds,
		EdgeSets:         edgeSets,
		TimingPointIndex: -1,
	})
	return nil
}

// curveSpec parses the TYPE|x1:y1|x2:y2|... curve descriptor.
func (d *decoder) curveSpec(desc string) (CurveType, []Point, error) {
	toks := strings.Split(desc, "|")
	var ct CurveType
	switch toks[0] {
	case "B":
		ct = CurveBezier
	case "C":
		ct = CurveCatmull
	case "L":
		ct = CurveLinear
	case "P":
		ct = CurvePerfect
	default:
		return 0, nil, &UnknownEnumValueError{Section: d.sectionName(), Line: d.line, What: "curve type", Value: toks[0]}
	}

	anchors := make([]Point, 0, len(toks)-1)
	for _, tok := range toks[1:] {
		xy := strings.Split(tok, ":")
		if len(xy) != 2 {
			return 0, nil, &StructuralError{Section: d.sectionName(), Line: d.line, Content: tok, Reason: "curve anchor needs an x:y pair"}
		}
		var p Point
		var err error
		if p.X, err = d.intField("curvePoints", xy[0]); err != nil {
			return 0, nil, err
		}
		if p.Y, err = d.intField("curvePoints", xy[1]); err != nil {
			return 0, nil, err
		}
		anchors = append(anchors, p)
	}
	return ct, anchors, nil
}

// hitSample parses the normalSet:additionSet:index:volume:filename tuple.
func (d *decoder) hitSample(s string) (HitSample, error) {
	parts := strings.SplitN(s, ":", 5)
	if len(parts) != 5 {
		return HitSample{}, &StructuralError{Section: d.sectionName(), Line: d.line, Content: s, Reason: "hit sample needs a 5-part descriptor"}
	}
	var hs HitSample
	var err error
	if hs.NormalSet, err = d.sampleBank("hitSample", parts[0]); err != nil {
		return HitSample{}, err
	}
	if hs.AdditionSet, err = d.sampleBank("hitSample", parts[1]); err != nil {
		return HitSample{}, err
	}
	if hs.Index, err = d.intField("hitSample", parts[2]); err != nil {
		return HitSample{}, err
	}
	if hs.Volume, err = d.intField("hitSample", parts[3]); err != nil {
		return HitSample{}, err
	}
	hs.Filename = strings.Trim(parts[4], "\"")
	return hs, nil
}
