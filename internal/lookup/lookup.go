// Package lookup builds bidirectional name indexes over normalized
// mapping CSVs, answering "what is the English name for this Chinese
// title" and the reverse.
package lookup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonesrussell/rommap/internal/exporter"
)

// ErrNoEntries is returned when no usable entries were loaded.
var ErrNoEntries = errors.New("no mapping entries loaded")

// Entry is one English/Chinese name pair from a normalized CSV.
type Entry struct {
	System      string
	EnglishName string
	ChineseName string
}

// Index answers name lookups in both directions. Keys are lowercased to
// improve hit rate; the first entry for a name wins.
type Index struct {
	entries []Entry
	cnToEn  map[string]Entry
	enToCn  map[string]Entry
}

// LoadDir builds an index from every normalized CSV in dir. The combined
// all.csv is skipped so its rows are not counted twice.
func LoadDir(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lookup dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || !strings.HasSuffix(name, ".csv") || name == "all.csv" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	idx := newIndex()
	for _, path := range paths {
		if loadErr := idx.loadFile(path); loadErr != nil {
			return nil, loadErr
		}
	}

	if len(idx.entries) == 0 {
		return nil, fmt.Errorf("%w from %s", ErrNoEntries, dir)
	}
	return idx, nil
}

func newIndex() *Index {
	return &Index{
		cnToEn: make(map[string]Entry),
		enToCn: make(map[string]Entry),
	}
}

// loadFile reads one normalized CSV, keeping the name columns and
// skipping rows where both are empty.
func (idx *Index) loadFile(path string) error {
	system := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".csv"))

	headers, rows, err := exporter.ReadCSV(path)
	if err != nil {
		return err
	}
	if len(headers) < 2 {
		return nil
	}

	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		entry := Entry{
			System:      system,
			EnglishName: strings.TrimSpace(r[0]),
			ChineseName: strings.TrimSpace(r[1]),
		}
		if entry.EnglishName == "" && entry.ChineseName == "" {
			continue
		}
		idx.add(entry)
	}

	return nil
}

func (idx *Index) add(entry Entry) {
	idx.entries = append(idx.entries, entry)

	if entry.ChineseName != "" && entry.EnglishName != "" {
		cnKey := strings.ToLower(entry.ChineseName)
		if _, ok := idx.cnToEn[cnKey]; !ok {
			idx.cnToEn[cnKey] = entry
		}
		enKey := strings.ToLower(entry.EnglishName)
		if _, ok := idx.enToCn[enKey]; !ok {
			idx.enToCn[enKey] = entry
		}
	}
}

// Len reports how many entries the index holds.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// EnglishFor returns the English name mapped to a Chinese title.
func (idx *Index) EnglishFor(chineseName string) (Entry, bool) {
	e, ok := idx.cnToEn[strings.ToLower(strings.TrimSpace(chineseName))]
	return e, ok
}

// ChineseFor returns the Chinese name mapped to an English title.
func (idx *Index) ChineseFor(englishName string) (Entry, bool) {
	e, ok := idx.enToCn[strings.ToLower(strings.TrimSpace(englishName))]
	return e, ok
}

// Find looks a name up in both directions, Chinese first.
func (idx *Index) Find(name string) (Entry, bool) {
	if e, ok := idx.EnglishFor(name); ok {
		return e, true
	}
	return idx.ChineseFor(name)
}
