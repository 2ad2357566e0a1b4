package store

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"osukit/dotosu"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	e := Entry{
		Path:         "songs/a/diff.osu",
		Title:        "Song",
		Artist:       "Artist",
		Creator:      "mapper",
		Version:      "Hard",
		BeatmapID:    101,
		BeatmapSetID: 55,
		Mode:         dotosu.ModeMania,
		HitObjects:   420,
	}
	if err := s.Put(e); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := s.Get(e.Path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("entry not found after Put")
	}
	if got != e {
		t.Errorf("Get = %+v, want %+v", got, e)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, found, err := s.Get("never/indexed.osu")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for missing entry")
	}
}

func TestPutReplacesByPath(t *testing.T) {
	s := openTestStore(t)

	e := Entry{Path: "p.osu", Title: "First"}
	if err := s.Put(e); err != nil {
		t.Fatal(err)
	}
	e.Title = "Second"
	if err := s.Put(e); err != nil {
		t.Fatal(err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d entries, want 1", len(all))
	}
	if all[0].Title != "Second" {
		t.Errorf("Title = %q, want Second", all[0].Title)
	}
}

func TestEntryFromBeatmap(t *testing.T) {
	b, err := dotosu.Decode(strings.NewReader(
		"[Metadata]\nTitle: T\nArtist: A\nCreator: C\nVersion: V\nBeatmapID: 7\nBeatmapSetID: 8\n" +
			"[HitObjects]\n256,192,1000,1,0\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	e := EntryFromBeatmap("x.osu", b)
	want := Entry{Path: "x.osu", Title: "T", Artist: "A", Creator: "C", Version: "V", BeatmapID: 7, BeatmapSetID: 8, HitObjects: 1}
	if e != want {
		t.Errorf("EntryFromBeatmap = %+v, want %+v", e, want)
	}
}
