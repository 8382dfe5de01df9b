// Package htmltable extracts data tables from HTML documents.
//
// The source pages pack many logical records into single cells using <br>
// and <p> tags, so the parser preserves intra-cell line breaks as embedded
// newlines instead of flattening cell text to a single line.
package htmltable

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is an ordered sequence of rows of cell strings.
// Row 0 is the header row when the table has one.
type Table struct {
	Rows [][]string
}

var (
	// Runs of horizontal whitespace collapse to a single space; newlines survive.
	horizontalSpaceRe = regexp.MustCompile(`[ \t\f\v]+`)
	// Per-line indentation after a break collapses into the break itself.
	lineIndentRe = regexp.MustCompile(`\n\s+`)
)

// parser is a single-pass tag-event state machine over the token stream.
//
// tableDepth tracks nesting: only the 0->1 and 1->0 transitions open and
// close a table under consideration. Markup nested deeper than one table
// level is flattened into the text of whatever outer cell is open.
type parser struct {
	tableDepth int
	inRow      bool
	inCell     bool

	cellParts    []string
	currentRow   []string
	currentTable [][]string
	tables       []Table
}

// Parse converts an HTML document into the list of tables it contains.
// Truncated or malformed markup never fails: unterminated tags at
// end-of-input simply flush whatever state has accumulated.
func Parse(doc string) []Table {
	p := &parser{}
	z := html.NewTokenizer(strings.NewReader(doc))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// End of input (or unparsable garbage): flush open state.
			p.flush()
			return p.tables
		}

		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			p.handleStartTag(tok.DataAtom)
			if tt == html.SelfClosingTagToken {
				p.handleEndTag(tok.DataAtom)
			}
		case html.EndTagToken:
			p.handleEndTag(tok.DataAtom)
		case html.TextToken:
			if p.inCell {
				p.cellParts = append(p.cellParts, tok.Data)
			}
		}
	}
}

func (p *parser) handleStartTag(tag atom.Atom) {
	switch tag {
	case atom.Table:
		p.tableDepth++
		if p.tableDepth == 1 {
			p.currentTable = nil
		}
	case atom.Tr:
		if p.tableDepth == 1 {
			p.inRow = true
			p.currentRow = nil
		}
	case atom.Td, atom.Th:
		if p.tableDepth == 1 && p.inRow {
			p.inCell = true
			p.cellParts = nil
		}
	case atom.Br:
		if p.inCell {
			p.cellParts = append(p.cellParts, "\n")
		}
	case atom.P:
		// Paragraph blocks separate entries; avoid doubling an existing break.
		p.appendBreak()
	}
}

func (p *parser) handleEndTag(tag atom.Atom) {
	switch tag {
	case atom.P:
		p.appendBreak()
	case atom.Td, atom.Th:
		if p.tableDepth == 1 && p.inRow && p.inCell {
			p.closeCell()
		}
	case atom.Tr:
		if p.tableDepth == 1 {
			p.closeRow()
		}
	case atom.Table:
		if p.tableDepth > 0 {
			p.tableDepth--
			if p.tableDepth == 0 {
				p.closeTable()
			}
		}
	}
}

// appendBreak inserts a line break into the open cell unless the
// accumulated text already ends with one.
func (p *parser) appendBreak() {
	if !p.inCell || len(p.cellParts) == 0 {
		return
	}
	if !strings.HasSuffix(p.cellParts[len(p.cellParts)-1], "\n") {
		p.cellParts = append(p.cellParts, "\n")
	}
}

func (p *parser) closeCell() {
	p.inCell = false
	p.currentRow = append(p.currentRow, cleanCell(strings.Join(p.cellParts, "")))
	p.cellParts = nil
}

func (p *parser) closeRow() {
	p.inRow = false
	if rowHasContent(p.currentRow) {
		p.currentTable = append(p.currentTable, p.currentRow)
	}
	p.currentRow = nil
}

func (p *parser) closeTable() {
	if len(p.currentTable) > 0 {
		p.tables = append(p.tables, Table{Rows: p.currentTable})
	}
	p.currentTable = nil
}

// flush closes any cell, row, and table left open by truncated input.
func (p *parser) flush() {
	if p.inCell {
		p.closeCell()
	}
	if p.inRow {
		p.closeRow()
	}
	if p.tableDepth > 0 {
		p.tableDepth = 0
		p.closeTable()
	}
}

// cleanCell normalizes a cell's accumulated text: CRLF/CR become LF,
// horizontal whitespace collapses to single spaces, indentation after a
// break is dropped, and the result is trimmed.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = horizontalSpaceRe.ReplaceAllString(s, " ")
	s = lineIndentRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// rowHasContent reports whether any cell survives stripping. Decorative
// spacer rows fail this check and are dropped.
func rowHasContent(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}
