package dotosu

// Effects are the extra behaviours carried on a timing point's bit flags.
type Effects struct {
	// KiaiTime marks the section as kiai (visual/audio intensity).
	KiaiTime bool
	// OmitFirstBarline omits the first barline in taiko and mania.
	OmitFirstBarline bool
}

// DecodeEffects decodes the timing point effects bit field.
// Bit 0 is kiai, bit 3 omits the first barline.
func DecodeEffects(v int) Effects {
	return Effects{
		KiaiTime:         (v>>0)&1 == 1,
		OmitFirstBarline: (v>>3)&1 == 1,
	}
}

// HitSound is the decoded per-object hitsound bit field.
type HitSound struct {
	Normal  bool
	Whistle bool
	Finish  bool
	Clap    bool
}

// DecodeHitSound decodes the hitsound bit field: bits 0-3 are
// normal, whistle, finish, clap.
func DecodeHitSound(v int) HitSound {
	return HitSound{
		Normal:  (v>>0)&1 == 1,
		Whistle: (v>>1)&1 == 1,
		Finish:  (v>>2)&1 == 1,
		Clap:    (v>>3)&1 == 1,
	}
}

// TypeFlags is the raw hit object type bit field. Bits 0, 1, 3 and 7
// select the object kind, bit 2 marks a new combo, and bits 4-6 carry
// the combo color skip count.
type TypeFlags int

const (
	flagCircle   = 1 << 0
	flagSlider   = 1 << 1
	flagNewCombo = 1 << 2
	flagSpinner  = 1 << 3
	flagHold     = 1 << 7

	kindMask = flagCircle | flagSlider | flagSpinner | flagHold // 0b10001011
)

func (f TypeFlags) IsCircle() bool  { return (f>>0)&1 == 1 }
func (f TypeFlags) IsSlider() bool  { return (f>>1)&1 == 1 }
func (f TypeFlags) IsSpinner() bool { return (f>>3)&1 == 1 }
func (f TypeFlags) IsHold() bool    { return (f>>7)&1 == 1 }

// NewCombo reports whether the object starts a new combo.
func (f TypeFlags) NewCombo() bool { return (f>>2)&1 == 1 }

// ComboSkip extracts the 3-bit combo color skip count from bits 4-6.
func (f TypeFlags) ComboSkip() int { return int(f>>4) & 0b111 }
