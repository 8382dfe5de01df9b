package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the canonical normalized unit: one name mapping from one
// source row. Extras preserves every non-empty cell whose column did not
// resolve to a canonical role, keyed by the original header text, so no
// information is silently dropped.
type Record struct {
	EnglishName string
	ChineseName string
	SourceID    string
	Extras      map[string]string
}

// Combined is a Record tagged with the system key it came from.
type Combined struct {
	System string
	Record
}

// Normalize converts one source's (headers, rows) into records. Column
// roles are resolved once for the whole table; the Chinese field of every
// row goes through mojibake repair. Rows that end up entirely empty are
// still emitted: suppressing records is not this function's job.
func Normalize(headers []string, rows [][]string) []Record {
	roles := ResolveRoles(headers)

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		rr := r
		if len(rr) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, rr)
			rr = padded
		}

		rec := Record{
			EnglishName: cellAt(rr, roles.English),
			ChineseName: Repair(cellAt(rr, roles.Chinese)),
			SourceID:    cellAt(rr, roles.ID),
		}

		for i, h := range headers {
			if roles.IsRoleColumn(i) {
				continue
			}
			if v := strings.TrimSpace(rr[i]); v != "" {
				if rec.Extras == nil {
					rec.Extras = make(map[string]string)
				}
				rec.Extras[h] = v
			}
		}

		records = append(records, rec)
	}

	return records
}

// DropSystemColumn removes a leading "system" column from scraped tables;
// the system key is carried by the file name instead. No-op when the
// first header is anything else.
func DropSystemColumn(headers []string, rows [][]string) ([]string, [][]string) {
	if len(headers) == 0 || strings.ToLower(strings.TrimSpace(headers[0])) != "system" {
		return headers, rows
	}

	outRows := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) > 0 {
			outRows[i] = r[1:]
		} else {
			outRows[i] = nil
		}
	}
	return headers[1:], outRows
}

// ExtrasJSON renders the extras map as a compact JSON object string, or
// an empty string when there are no extras.
func (r Record) ExtrasJSON() (string, error) {
	if len(r.Extras) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Extras); err != nil {
		return "", fmt.Errorf("encode extras: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
