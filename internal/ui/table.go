package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"unifiedlist/internal/api"
	"unifiedlist/internal/config"
)

const noDataText = "No data."

// tableCell is one rendered column value. Link cells open the detail view of
// their row when activated.
type tableCell struct {
	Text string
	Link bool
}

// tableRow is a checkbox cell carrying the record id followed by one cell per
// configured column. An empty-state row has no checkbox and spans Colspan.
type tableRow struct {
	ID      string
	Cells   []tableCell
	Colspan int
}

func (r tableRow) isEmptyState() bool { return r.Colspan > 0 }

// renderRows turns a page of records into rows following the column schema.
func renderRows(records []api.Record, cols []config.Column) []tableRow {
	if len(records) == 0 {
		return []tableRow{{
			Cells:   []tableCell{{Text: noDataText}},
			Colspan: len(cols) + 1,
		}}
	}
	rows := make([]tableRow, 0, len(records))
	for _, rec := range records {
		row := tableRow{
			ID:    sanitizeCell(rec.Text("id")),
			Cells: make([]tableCell, 0, len(cols)),
		}
		for _, col := range cols {
			row.Cells = append(row.Cells, tableCell{
				Text: sanitizeCell(rec.Text(col.Key)),
				Link: col.DetailLink,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// sanitizeCell makes server text inert for the terminal: escape sequences
// are stripped and remaining control characters become spaces.
func sanitizeCell(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

// rowIDs lists the checkbox values of data rows.
func rowIDs(rows []tableRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.isEmptyState() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// hasDetailLink reports whether any column opens the detail view.
func hasDetailLink(cols []config.Column) bool {
	for _, c := range cols {
		if c.DetailLink {
			return true
		}
	}
	return false
}
