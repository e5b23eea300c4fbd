package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"

	"unifiedlist/internal/api"
	"unifiedlist/internal/config"
)

var testColumns = []config.Column{
	{Key: "id", Label: "ID"},
	{Key: "title", Label: "Title", DetailLink: true},
	{Key: "owner", Label: "Owner"},
}

func TestRenderRowsEmptyState(t *testing.T) {
	for _, recs := range [][]api.Record{nil, {}} {
		rows := renderRows(recs, testColumns)
		if len(rows) != 1 {
			t.Fatalf("expected one row, got %d", len(rows))
		}
		if !rows[0].isEmptyState() || rows[0].Colspan != len(testColumns)+1 {
			t.Fatalf("empty row: %+v", rows[0])
		}
		if rows[0].Cells[0].Text != noDataText {
			t.Fatalf("text %q", rows[0].Cells[0].Text)
		}
		if ids := rowIDs(rows); len(ids) != 0 {
			t.Fatalf("empty state has no checkbox: %v", ids)
		}
	}
}

func TestRenderRowsFollowColumns(t *testing.T) {
	recs := []api.Record{
		{"id": json.Number("1"), "title": "a", "owner": "kim"},
		{"id": json.Number("2"), "title": "b"},
	}
	rows := renderRows(recs, testColumns)
	want := []tableRow{
		{ID: "1", Cells: []tableCell{{Text: "1"}, {Text: "a", Link: true}, {Text: "kim"}}},
		{ID: "2", Cells: []tableCell{{Text: "2"}, {Text: "b", Link: true}, {Text: ""}}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2"}, rowIDs(rows)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
}

func TestSanitizeCellStripsControlSequences(t *testing.T) {
	got := sanitizeCell("\x1b[31mred\x1b[0m\tline\nnext")
	if got != "red line next" {
		t.Fatalf("got %q", got)
	}
	if sanitizeCell("<b>kept</b>") != "<b>kept</b>" {
		t.Fatalf("markup is plain text")
	}
}

func TestHasDetailLink(t *testing.T) {
	if !hasDetailLink(testColumns) {
		t.Fatalf("title column is a link")
	}
	if hasDetailLink([]config.Column{{Key: "id"}}) {
		t.Fatalf("no link columns")
	}
}

func TestFitCellUsesDisplayWidth(t *testing.T) {
	got := fitCell("삼성전자", 6)
	if w := runewidth.StringWidth(got); w != 6 {
		t.Fatalf("width %d for %q", w, got)
	}
	if !strings.Contains(got, "…") {
		t.Fatalf("expected truncation marker in %q", got)
	}
	if got := fitCell("ab", 4); got != "ab  " {
		t.Fatalf("padding: %q", got)
	}
}

func TestColumnWidthsRespectTerminal(t *testing.T) {
	rows := renderRows([]api.Record{{"id": "1", "title": strings.Repeat("x", 80), "owner": "o"}}, testColumns)
	w := columnWidths(testColumns, rows, 60)
	for i, n := range w {
		if n < minColumnWidth || n > maxColumnWidth {
			t.Fatalf("column %d width %d", i, n)
		}
	}
	if w[1] >= 80 {
		t.Fatalf("long column not capped: %d", w[1])
	}
}

func TestRenderPager(t *testing.T) {
	if renderPager(nil) != "" {
		t.Fatalf("no buttons, no strip")
	}
	s := renderPager(paginate(0, 3))
	for _, l := range []string{"<<", "1", "2", "3", ">>"} {
		if !strings.Contains(s, l) {
			t.Fatalf("strip %q misses %q", s, l)
		}
	}
}
