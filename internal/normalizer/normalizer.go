// Package normalizer converts scraped per-system CSV exports into the
// canonical mapping schema and builds the combined multi-source dataset.
package normalizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonesrussell/rommap/internal/exporter"
	"github.com/jonesrussell/rommap/internal/logger"
	"github.com/jonesrussell/rommap/internal/mapping"
)

// ErrNoInputFiles is returned when the input directory holds no CSVs.
var ErrNoInputFiles = errors.New("no csv files found")

// Service runs the normalization stage.
type Service struct {
	log logger.Interface
}

// NewService creates a normalizer service.
func NewService(log logger.Interface) *Service {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{log: log}
}

// Summary tallies a normalization run.
type Summary struct {
	Systems      int
	Records      int
	CombinedPath string
}

// Run normalizes every CSV in inDir into outDir, then writes the
// combined all.csv. Input files are processed in name order, which is
// system-key order since each file is named {system}.csv.
func (s *Service) Run(inDir, outDir string) (Summary, error) {
	var summary Summary

	files, err := listCSVs(inDir)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("%w in %s", ErrNoInputFiles, inDir)
	}

	var combined []mapping.Combined

	for _, path := range files {
		system := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".csv"))
		log := s.log.WithSystem(system)

		records, normErr := s.normalizeFile(path)
		if normErr != nil {
			return summary, fmt.Errorf("normalize %s: %w", path, normErr)
		}

		outPath, writeErr := exporter.WriteNormalized(outDir, system, records)
		if writeErr != nil {
			return summary, writeErr
		}
		log.Info("normalized", "records", len(records), "path", outPath)

		for _, rec := range records {
			combined = append(combined, mapping.Combined{System: system, Record: rec})
		}
		summary.Systems++
		summary.Records += len(records)
	}

	combinedPath, err := exporter.WriteCombined(outDir, combined)
	if err != nil {
		return summary, err
	}
	summary.CombinedPath = combinedPath

	return summary, nil
}

// normalizeFile converts one scraped CSV into records: drop the
// redundant system column, resolve column roles, repair mojibake, keep
// unrecognized columns as extras.
func (s *Service) normalizeFile(path string) ([]mapping.Record, error) {
	headers, rows, err := exporter.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	headers, rows = mapping.DropSystemColumn(headers, rows)
	return mapping.Normalize(headers, rows), nil
}

// listCSVs returns the CSV files in dir sorted by name.
func listCSVs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
