// osuinfo decodes a .osu difficulty or a whole .osz set and prints a
// summary of its metadata, timing and objects.
package main

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"osukit/dotosu"
	"osukit/osz"
)

var (
	file    = kingpin.Arg("file", ".osu or .osz file").Required().ExistingFile()
	objects = kingpin.Flag("objects", "Print every hit object").Short('o').Bool()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	if err := run(*file); err != nil {
		log.Fatalln(err)
	}
}

func run(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osu":
		b, err := dotosu.DecodeFile(path)
		if err != nil {
			return err
		}
		printBeatmap(b)
		return nil
	case ".osz":
		maps, err := osz.DecodeAllFile(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(maps))
		for name := range maps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("== %s ==\n", name)
			printBeatmap(maps[name])
			fmt.Println()
		}
		return nil
	default:
		return fmt.Errorf("unsupported file type: %s", path)
	}
}

func printBeatmap(b *dotosu.Beatmap) {
	m := b.Metadata
	fmt.Printf("%s - %s [%s] by %s\n", m.Artist, m.Title, m.Version, m.Creator)
	fmt.Printf("format v%d, mode %d, set %d\n", b.FormatVersion, b.General.Mode, m.BeatmapSetID)

	if bpm, ok := baseBPM(b); ok {
		fmt.Printf("base BPM %.2f, %d timing points\n", bpm, len(b.TimingPoints))
	}

	var circles, sliders, spinners int
	for _, obj := range b.HitObjects {
		switch obj.(type) {
		case *dotosu.Circle:
			circles++
		case *dotosu.Slider:
			sliders++
		case *dotosu.Spinner:
			spinners++
		}
	}
	fmt.Printf("%d circles, %d sliders, %d spinners\n", circles, sliders, spinners)

	if *objects {
		for _, obj := range b.HitObjects {
			switch o := obj.(type) {
			case *dotosu.Circle:
				fmt.Printf("  %7dms circle  (%d,%d)\n", o.Time, o.X, o.Y)
			case *dotosu.Slider:
				fmt.Printf("  %7dms slider  (%d,%d) %d curves, %.0fpx, ends %.0fms\n",
					o.Time, o.X, o.Y, len(o.Curves), o.Length, o.EndTime)
			case *dotosu.Spinner:
				fmt.Printf("  %7dms spinner ends %dms\n", o.Time, o.EndTime)
			}
		}
	}
}

// baseBPM derives the tempo of the first uninherited timing point.
func baseBPM(b *dotosu.Beatmap) (float64, bool) {
	for _, tp := range b.TimingPoints {
		if tp.Uninherited && tp.BeatDuration > 0 {
			return 60000 / tp.BeatDuration, true
		}
	}
	return 0, false
}
