// Package osz reads .osz beatmap-set archives: plain zip files whose
// top-level entries include one .osu file per difficulty.
package osz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"osukit/dotosu"
)

// Extract returns the contents of every top-level .osu file in the
// archive, keyed by entry name. Directory entries and names that carry a
// path separator are not valid difficulty entries and are ignored.
func Extract(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open osz archive: %w", err)
	}

	files := make(map[string][]byte)
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".osu") {
			continue
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.ContainsAny(f.Name, `/\`) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in archive: %w", f.Name, err)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s in archive: %w", f.Name, err)
		}
		files[f.Name] = contents
	}
	return files, nil
}

// ExtractFile reads path and extracts its .osu entries.
func ExtractFile(path string) (map[string][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read osz: %w", err)
	}
	return Extract(data)
}

// DecodeAll extracts and decodes every difficulty in the archive, keyed
// by entry name. A decode failure in any difficulty fails the whole set.
func DecodeAll(data []byte) (map[string]*dotosu.Beatmap, error) {
	files, err := Extract(data)
	if err != nil {
		return nil, err
	}
	maps := make(map[string]*dotosu.Beatmap, len(files))
	for name, contents := range files {
		b, err := dotosu.Decode(bytes.NewReader(contents))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		maps[name] = b
	}
	return maps, nil
}

// DecodeAllFile reads path and decodes its difficulties.
func DecodeAllFile(path string) (map[string]*dotosu.Beatmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read osz: %w", err)
	}
	return DecodeAll(data)
}
