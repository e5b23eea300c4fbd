package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"unifiedlist/internal/config"
)

const (
	maxColumnWidth = 32
	minColumnWidth = 4
	columnGap      = "  "
)

func (m Model) viewList() string {
	var b strings.Builder
	if m.cfg.Features.Search {
		if m.state == stateSearch {
			b.WriteString(m.searchInput.View())
		} else if q := m.searchInput.Value(); q != "" {
			b.WriteString(subtleStyle.Render("search: " + q))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderTable())
	if strip := renderPager(m.page.pager); strip != "" {
		b.WriteString("\n" + strip)
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell, capped so the table
// fits the terminal when the width is known.
func columnWidths(cols []config.Column, rows []tableRow, termWidth int) []int {
	w := make([]int, len(cols))
	for i, c := range cols {
		w[i] = runewidth.StringWidth(c.Label)
	}
	for _, r := range rows {
		if r.isEmptyState() {
			continue
		}
		for i, cell := range r.Cells {
			if i < len(w) {
				w[i] = max(w[i], runewidth.StringWidth(cell.Text))
			}
		}
	}
	limit := maxColumnWidth
	if termWidth > 0 && len(cols) > 0 {
		// cursor bar + checkbox take 6 cells
		avail := termWidth - 6 - len(columnGap)*len(cols)
		limit = min(limit, max(minColumnWidth, avail/len(cols)))
	}
	for i := range w {
		w[i] = min(max(w[i], minColumnWidth), limit)
	}
	return w
}

func fitCell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func (m Model) renderTable() string {
	cols := m.cfg.Columns
	widths := columnWidths(cols, m.page.rows, m.width)
	query := m.searchText()

	var b strings.Builder
	head := "  "
	if m.cfg.Features.SelectAll {
		head += checkbox(m.sel.all)
	} else {
		head += "   "
	}
	for i, c := range cols {
		head += columnGap + tableHeaderStyle.Render(fitCell(c.Label, widths[i]))
	}
	b.WriteString(head + "\n")

	for i, row := range m.page.rows {
		if row.isEmptyState() {
			total := 5
			for _, w := range widths {
				total += w + len(columnGap)
			}
			b.WriteString("  " + subtleStyle.Render(fitCell(row.Cells[0].Text, total)) + "\n")
			continue
		}
		bar := "  "
		if i == m.page.cursor {
			bar = cursorBarStyle.Render(" ") + " "
		}
		line := checkbox(m.sel.isChecked(row.ID))
		for j, cell := range row.Cells {
			if j >= len(widths) {
				break
			}
			text := fitCell(cell.Text, widths[j])
			if cell.Link {
				text = linkStyle.Render(text)
			} else {
				text = highlightMatches(text, query)
			}
			line += columnGap + text
		}
		if i == m.page.cursor {
			line = cursorLineStyle.Render(line)
		}
		b.WriteString(bar + line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func checkbox(on bool) string {
	if on {
		return markStyle.Render("[x]")
	}
	return "[ ]"
}

// renderPager draws the pagination strip; nil buttons draw nothing.
func renderPager(btns []pageButton) string {
	if len(btns) == 0 {
		return ""
	}
	parts := make([]string, 0, len(btns))
	for _, btn := range btns {
		switch {
		case btn.Disabled:
			parts = append(parts, pageDisabledStyle.Render(btn.Label))
		case btn.Active:
			parts = append(parts, pageActiveStyle.Render(btn.Label))
		default:
			parts = append(parts, pageStyle.Render(btn.Label))
		}
	}
	return strings.Join(parts, "")
}
