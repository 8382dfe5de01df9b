// Package structured reads machine-readable source payloads: a JSON array
// of flat objects, preferred over markup parsing when a source exposes one.
package structured

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrNotStructured signals that the payload is not a non-empty JSON array
// of objects. The caller falls back to the markup table parser.
var ErrNotStructured = errors.New("payload is not a structured record array")

// preferredHeaders is the fixed leading column order for well-known keys.
// Remaining observed keys follow in lexicographic order.
var preferredHeaders = []string{"game_id", "game_name", "ch_name", "UMD_ID", "date"}

// Read converts decoded JSON text into the (headers, rows) table shape.
// Missing keys become empty strings, list values are pipe-joined, null
// values become empty strings, and everything else is stringified.
func Read(text string) (headers []string, rows [][]string, err error) {
	var records []map[string]any
	if jsonErr := json.Unmarshal([]byte(text), &records); jsonErr != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotStructured, jsonErr)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty array", ErrNotStructured)
	}
	if records[0] == nil {
		return nil, nil, fmt.Errorf("%w: first element is not an object", ErrNotStructured)
	}

	headers = headerOrder(records)

	rows = make([][]string, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		row := make([]string, len(headers))
		for i, k := range headers {
			row[i] = stringify(rec[k])
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// headerOrder builds the stable header list: preferred keys present in the
// data first, then the rest sorted.
func headerOrder(records []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}

	headers := make([]string, 0, len(seen))
	for _, k := range preferredHeaders {
		if _, ok := seen[k]; ok {
			headers = append(headers, k)
			delete(seen, k)
		}
	}

	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	return append(headers, rest...)
}

// stringify renders a decoded JSON leaf value as cell text.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, el := range val {
			parts[i] = stringify(el)
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprintf("%v", val)
	}
}
