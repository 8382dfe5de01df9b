// Package exporter writes extraction results to disk: one CSV and one
// JSON snapshot per scraped system, and the normalized per-system plus
// combined CSVs produced by the normalization stage.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/rommap/internal/mapping"
	"github.com/jonesrussell/rommap/internal/sources"
)

// NormalizedHeaders is the canonical column order of normalized CSVs.
var NormalizedHeaders = []string{"english_name", "chinese_name", "source_id", "extra_json"}

// CombinedHeaders prefixes the normalized columns with the system key.
var CombinedHeaders = []string{"system", "english_name", "chinese_name", "source_id", "extra_json"}

// dirPerm is the mode for created output directories.
const dirPerm = 0o755

// Snapshot is the JSON emitted alongside each scraped CSV for
// programmatic use.
type Snapshot struct {
	System  string     `json:"system"`
	Title   string     `json:"title"`
	Source  string     `json:"source"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// WriteScraped writes the raw extraction for one system: {key}.csv with a
// leading system column, and {key}.json with the full snapshot. Returns
// the CSV path.
func WriteScraped(outDir string, sys sources.System, headers []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(outDir, sys.Key+".csv")
	csvRows := make([][]string, 0, len(rows)+1)
	csvRows = append(csvRows, append([]string{"system"}, headers...))
	for _, r := range rows {
		csvRows = append(csvRows, append([]string{sys.Key}, r...))
	}
	if err := writeCSV(csvPath, csvRows); err != nil {
		return "", err
	}

	jsonPath := filepath.Join(outDir, sys.Key+".json")
	if err := writeJSON(jsonPath, Snapshot{
		System:  sys.Key,
		Title:   sys.Title,
		Source:  sys.URL,
		Headers: headers,
		Rows:    rows,
	}); err != nil {
		return "", err
	}

	return csvPath, nil
}

// WriteNormalized writes one system's normalized records as
// {system}.csv under outDir.
func WriteNormalized(outDir, system string, records []mapping.Record) (string, error) {
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, NormalizedHeaders)
	for _, rec := range records {
		row, err := normalizedRow(rec)
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}

	path := filepath.Join(outDir, system+".csv")
	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCombined writes the multi-source dataset as all.csv, with each row
// tagged by its system key. Callers supply records already in system-key
// sort order with per-system row order preserved.
func WriteCombined(outDir string, records []mapping.Combined) (string, error) {
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, CombinedHeaders)
	for _, rec := range records {
		row, err := normalizedRow(rec.Record)
		if err != nil {
			return "", err
		}
		rows = append(rows, append([]string{rec.System}, row...))
	}

	path := filepath.Join(outDir, "all.csv")
	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// ReadCSV loads a previously written CSV as (headers, rows). An empty
// file yields empty results rather than an error.
func ReadCSV(path string) (headers []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func normalizedRow(rec mapping.Record) ([]string, error) {
	extras, err := rec.ExtrasJSON()
	if err != nil {
		return nil, err
	}
	return []string{rec.EnglishName, rec.ChineseName, rec.SourceID, extras}, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if writeErr := w.Write(row); writeErr != nil {
			return fmt.Errorf("write %s: %w", path, writeErr)
		}
	}
	w.Flush()
	if flushErr := w.Error(); flushErr != nil {
		return fmt.Errorf("flush %s: %w", path, flushErr)
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(v); encErr != nil {
		return fmt.Errorf("write %s: %w", path, encErr)
	}
	return f.Close()
}
