// Package reshape repairs tables whose logical records were collapsed by
// the source markup: either many records packed into one cell with line
// breaks, or two parallel columns each holding a line-broken list in a
// single row. Each repair is a heuristic that degrades to a no-op when
// its trigger condition does not hold.
package reshape

import "strings"

// minPackedListLines is the smallest number of non-empty lines a lone
// cell must contain before single-cell expansion treats it as a packed
// record list. Shorter cells are ambiguous and left unchanged.
const minPackedListLines = 10

// Strategy is a named row transformation. Apply returns the transformed
// rows and whether the strategy actually fired; when it did not fire the
// input rows are returned unchanged.
type Strategy struct {
	Name  string
	Apply func(headers []string, rows [][]string) (out [][]string, applied bool)
}

// Strategies returns the reshaping passes in their required order:
// two-column pairing expansion first, then single-cell list expansion.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "two_column_pairing", Apply: expandTwoColumnPaired},
		{Name: "single_cell_list", Apply: expandSingleCellList},
	}
}

// Expand runs every strategy in order over the rows.
func Expand(headers []string, rows [][]string) [][]string {
	for _, s := range Strategies() {
		rows, _ = s.Apply(headers, rows)
	}
	return rows
}

// expandTwoColumnPaired handles rows where the first two cells each pack a
// line-broken list. Every such row becomes max(len(left), len(right))
// rows, pairing the i-th line of each list and inheriting the remaining
// columns unchanged; the shorter list pads with empty strings.
func expandTwoColumnPaired(headers []string, rows [][]string) ([][]string, bool) {
	if len(headers) < 2 || len(rows) == 0 {
		return rows, false
	}

	expanded := make([][]string, 0, len(rows))
	changed := false

	for _, r := range rows {
		rr := padRow(r, len(headers))
		left := splitLines(rr[0])
		right := splitLines(rr[1])

		if len(left) <= 1 && len(right) <= 1 {
			expanded = append(expanded, rr)
			continue
		}

		changed = true
		n := max(len(left), len(right))
		for i := 0; i < n; i++ {
			out := make([]string, len(rr))
			copy(out, rr)
			out[0] = lineAt(left, i)
			out[1] = lineAt(right, i)
			expanded = append(expanded, out)
		}
	}

	if !changed {
		return rows, false
	}
	return expanded, true
}

// expandSingleCellList handles the case where the whole table collapsed
// into one row whose first cell holds every record on its own line.
func expandSingleCellList(headers []string, rows [][]string) ([][]string, bool) {
	if len(rows) != 1 || len(headers) == 0 || len(rows[0]) == 0 {
		return rows, false
	}

	cell := rows[0][0]
	if !strings.Contains(cell, "\n") {
		return rows, false
	}

	lines := splitLines(cell)
	if len(lines) < minPackedListLines {
		return rows, false
	}

	expanded := make([][]string, 0, len(lines))
	for _, ln := range lines {
		row := make([]string, len(headers))
		row[0] = ln
		expanded = append(expanded, row)
	}
	return expanded, true
}

// splitLines breaks a cell into stripped, non-empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, ln := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func padRow(r []string, n int) []string {
	if len(r) >= n {
		return r
	}
	rr := make([]string, n)
	copy(rr, r)
	return rr
}
