package htmltable

import (
	"fmt"
	"strings"
)

// Normalize splits a table into its header row and data rows, repairing
// ragged input: short rows are padded with empty strings and columns
// beyond the named headers get synthetic col_N names, so every returned
// row has exactly len(headers) cells.
func Normalize(t Table) (headers []string, rows [][]string) {
	if len(t.Rows) == 0 {
		return nil, nil
	}

	headers = append(headers, t.Rows[0]...)
	body := t.Rows[1:]

	maxCols := len(headers)
	for _, r := range body {
		if len(r) > maxCols {
			maxCols = len(r)
		}
	}
	for i := len(headers); i < maxCols; i++ {
		headers = append(headers, fmt.Sprintf("col_%d", i+1))
	}

	for _, r := range body {
		rr := make([]string, maxCols)
		copy(rr, r)
		if rowHasContent(rr) {
			rows = append(rows, rr)
		}
	}

	return headers, rows
}

// headerKeywords mark a header row as belonging to the actual data table
// rather than navigation or page chrome. The site labels its columns in
// Chinese (英文名/中文名/中英对照/编号) with the occasional "ROM".
var headerKeywords = []string{"英文", "中文", "rom", "对照", "编号"}

const keywordScore = 10

// SelectMain picks the main data table out of all tables parsed from one
// page. Each keyword occurrence in the lowercased header row scores 10
// points; ties break toward the table with more rows. Returns false when
// no tables were found.
func SelectMain(tables []Table) (Table, bool) {
	if len(tables) == 0 {
		return Table{}, false
	}

	best := 0
	bestScore, bestRows := scoreTable(tables[0])
	for i := 1; i < len(tables); i++ {
		score, nrows := scoreTable(tables[i])
		if score > bestScore || (score == bestScore && nrows > bestRows) {
			best, bestScore, bestRows = i, score, nrows
		}
	}

	return tables[best], true
}

func scoreTable(t Table) (score, nrows int) {
	if len(t.Rows) == 0 {
		return 0, 0
	}
	header := strings.ToLower(strings.Join(t.Rows[0], " "))
	for _, kw := range headerKeywords {
		score += keywordScore * strings.Count(header, kw)
	}
	return score, len(t.Rows)
}
