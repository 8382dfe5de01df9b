package htmltable_test

import (
	"testing"

	"github.com/jonesrussell/rommap/internal/htmltable"
)

// mappingPageHTML mimics the site's per-platform page: navigation chrome
// around a data table whose header row is in Chinese.
const mappingPageHTML = `<html><body>
<table><tr><td><a href="/dz/">首页</a></td><td><a href="/dz/md/">MD</a></td></tr></table>
<table>
  <tr><th>编号</th><th>英文名</th><th>中文名</th></tr>
  <tr><td>1</td><td>Light Crusader</td><td>光之十字军战士</td></tr>
  <tr><td>2</td><td>Shining Force</td><td>光明力量</td></tr>
</table>
</body></html>`

func TestParse_TablesAndCells(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(mappingPageHTML)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	data := tables[1]
	if len(data.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(data.Rows))
	}

	assertRow(t, data.Rows[0], "编号", "英文名", "中文名")
	assertRow(t, data.Rows[1], "1", "Light Crusader", "光之十字军战士")
	assertRow(t, data.Rows[2], "2", "Shining Force", "光明力量")
}

func TestParse_BrPreservedAsNewline(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(`<table><tr><td>A<br>B<br>C</td><td>X</td></tr></table>`)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	assertRow(t, tables[0].Rows[0], "A\nB\nC", "X")
}

func TestParse_ParagraphsBecomeLineBreaks(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(`<table><tr><td><p>one</p><p>two</p><p>three</p></td></tr></table>`)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	// Paragraph boundaries insert a single break each; no doubled
	// separators from the close/open adjacency.
	assertRow(t, tables[0].Rows[0], "one\ntwo\nthree")
}

func TestParse_WhitespaceCollapsedInsideCells(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse("<table><tr><td>  Light\t  Crusader </td></tr></table>")
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	assertRow(t, tables[0].Rows[0], "Light Crusader")
}

func TestParse_IndentedMultilineCell(t *testing.T) {
	t.Parallel()

	// Source markup indents each entry line; the indentation must not
	// survive into the cell text.
	tables := htmltable.Parse("<table><tr><td>A<br>\n    B<br>\n    C</td></tr></table>")
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	assertRow(t, tables[0].Rows[0], "A\nB\nC")
}

func TestParse_EmptyRowsDropped(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(`<table>
		<tr><td>data</td></tr>
		<tr><td> </td><td></td></tr>
	</table>`)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 1 {
		t.Fatalf("expected spacer row to be dropped, got %d rows", len(tables[0].Rows))
	}
}

func TestParse_EmptyTableNotEmitted(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(`<table></table><table><tr><td>x</td></tr></table>`)
	if len(tables) != 1 {
		t.Fatalf("expected only the non-empty table, got %d", len(tables))
	}
}

func TestParse_NestedTableFlattenedIntoOuterCell(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(
		`<table><tr><td>outer <table><tr><td>inner</td></tr></table></td></tr></table>`)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	assertRow(t, tables[0].Rows[0], "outer inner")
}

func TestParse_TruncatedInputFlushes(t *testing.T) {
	t.Parallel()

	tables := htmltable.Parse(`<table><tr><td>abc`)
	if len(tables) != 1 {
		t.Fatalf("expected truncated table to flush, got %d tables", len(tables))
	}

	assertRow(t, tables[0].Rows[0], "abc")
}

func TestParse_NoTables(t *testing.T) {
	t.Parallel()

	if tables := htmltable.Parse(`<html><body><p>nothing here</p></body></html>`); len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}

func assertRow(t *testing.T, row []string, want ...string) {
	t.Helper()

	if len(row) != len(want) {
		t.Fatalf("expected %d cells, got %d: %q", len(want), len(row), row)
	}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("cell %d: expected %q, got %q", i, w, row[i])
		}
	}
}
