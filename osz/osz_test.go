package osz

import (
	"archive/zip"
	"bytes"
	"testing"
)

const minimalDiff = `osu file format v14

[Metadata]
Title: Archived Song
Version: Easy

[HitObjects]
256,192,1000,1,0
`

func buildArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, contents := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(contents)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractFiltersEntries(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"diff1.osu":       minimalDiff,
		"diff2.osu":       minimalDiff,
		"audio.mp3":       "not a chart",
		"nested/evil.osu": minimalDiff,
		"storyboard.osb":  "",
	})

	files, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
	for _, name := range []string{"diff1.osu", "diff2.osu"} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
}

func TestExtractRejectsNonZip(t *testing.T) {
	if _, err := Extract([]byte("definitely not a zip")); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestDecodeAll(t *testing.T) {
	data := buildArchive(t, map[string]string{"diff1.osu": minimalDiff})

	maps, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	b, ok := maps["diff1.osu"]
	if !ok {
		t.Fatal("missing diff1.osu")
	}
	if b.Metadata.Title != "Archived Song" {
		t.Errorf("Title = %q", b.Metadata.Title)
	}
	if len(b.HitObjects) != 1 {
		t.Errorf("got %d hit objects, want 1", len(b.HitObjects))
	}
}

func TestDecodeAllPropagatesDecodeErrors(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"broken.osu": "[TimingPoints]\n0,500\n",
	})
	if _, err := DecodeAll(data); err == nil {
		t.Error("expected decode error to fail the whole set")
	}
}
