// osuindex scans a songs directory, decodes every .osu chart it finds
// and records the metadata in a SQLite index. With --watch it keeps
// running and indexes charts as they appear.
package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	"osukit/dotosu"
	"osukit/store"
)

var (
	dir   = kingpin.Arg("directory", "Songs directory to scan").Required().ExistingDir()
	dbp   = kingpin.Flag("db", "Index database path").Default("beatmaps.db").String()
	jobs  = kingpin.Flag("jobs", "Concurrent decodes").Short('j').Default("8").Int()
	watch = kingpin.Flag("watch", "Keep watching for new charts").Short('w').Bool()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	logger := log.New(os.Stderr, "[osuindex] ", log.LstdFlags)
	if err := run(logger); err != nil {
		logger.Fatalln(err)
	}
}

func run(logger *log.Logger) error {
	s, err := store.Open(*dbp, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := scan(logger, s, *dir); err != nil {
		return err
	}
	if *watch {
		return watchDir(logger, s, *dir)
	}
	return nil
}

// scan walks the directory and indexes every chart, decoding
// concurrently. Each load is independent, so this needs no locking
// beyond the database itself.
func scan(logger *log.Logger, s *store.Store, root string) error {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".osu") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	entries := make(chan store.Entry, len(paths))
	g := &errgroup.Group{}
	g.SetLimit(*jobs)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			b, err := dotosu.DecodeFile(path)
			if err != nil {
				// A broken chart should not sink the whole scan.
				logger.Printf("skipping %s: %v", path, err)
				return nil
			}
			entries <- store.EntryFromBeatmap(path, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(entries)

	for e := range entries {
		if err := s.Put(e); err != nil {
			return err
		}
	}
	logger.Printf("scan complete: %d charts considered", len(paths))
	return nil
}

// watchDir indexes charts as they are created or rewritten. Song folders
// are watched individually since fsnotify does not recurse.
func watchDir(logger *log.Logger, s *store.Store, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return err
	}
	subdirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, d := range subdirs {
		if d.IsDir() {
			if err := watcher.Add(filepath.Join(root, d.Name())); err != nil {
				return err
			}
		}
	}

	logger.Printf("watching %s", root)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				// A new song folder; watch it for its charts.
				if err := watcher.Add(ev.Name); err != nil {
					logger.Printf("watch %s: %v", ev.Name, err)
				}
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".osu") {
				continue
			}
			b, err := dotosu.DecodeFile(ev.Name)
			if err != nil {
				logger.Printf("skipping %s: %v", ev.Name, err)
				continue
			}
			if err := s.Put(store.EntryFromBeatmap(ev.Name, b)); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch error: %v", err)
		}
	}
}
