package dotosu

import "testing"

func TestTypeFlagsReportBitSubset(t *testing.T) {
	for mask := 0; mask < 256; mask++ {
		f := TypeFlags(mask)
		if got, want := f.IsCircle(), mask&1 != 0; got != want {
			t.Errorf("mask %#b: IsCircle = %v, want %v", mask, got, want)
		}
		if got, want := f.IsSlider(), mask&2 != 0; got != want {
			t.Errorf("mask %#b: IsSlider = %v, want %v", mask, got, want)
		}
		if got, want := f.IsSpinner(), mask&8 != 0; got != want {
			t.Errorf("mask %#b: IsSpinner = %v, want %v", mask, got, want)
		}
		if got, want := f.IsHold(), mask&128 != 0; got != want {
			t.Errorf("mask %#b: IsHold = %v, want %v", mask, got, want)
		}
	}
}

func TestTypeFlagsComboFields(t *testing.T) {
	// Bit 2 is new combo, bits 4-6 the color skip count.
	f := TypeFlags(0b0110_0110)
	if !f.NewCombo() {
		t.Error("NewCombo = false, want true")
	}
	if got := f.ComboSkip(); got != 6 {
		t.Errorf("ComboSkip = %d, want 6", got)
	}

	f = TypeFlags(0b0000_0001)
	if f.NewCombo() {
		t.Error("NewCombo = true, want false")
	}
	if got := f.ComboSkip(); got != 0 {
		t.Errorf("ComboSkip = %d, want 0", got)
	}
}

func TestDecodeHitSound(t *testing.T) {
	hs := DecodeHitSound(0b1010)
	want := HitSound{Whistle: true, Clap: true}
	if hs != want {
		t.Errorf("DecodeHitSound(0b1010) = %+v, want %+v", hs, want)
	}
	if hs := DecodeHitSound(0); hs != (HitSound{}) {
		t.Errorf("DecodeHitSound(0) = %+v, want zero", hs)
	}
}

func TestDecodeEffects(t *testing.T) {
	e := DecodeEffects(0b1001)
	if !e.KiaiTime || !e.OmitFirstBarline {
		t.Errorf("DecodeEffects(0b1001) = %+v, want both set", e)
	}
	// Bits 1 and 2 are unassigned and must not leak into either flag.
	if e := DecodeEffects(0b0110); e != (Effects{}) {
		t.Errorf("DecodeEffects(0b0110) = %+v, want zero", e)
	}
}
