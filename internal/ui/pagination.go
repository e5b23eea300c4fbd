package ui

import "strconv"

// pageGroupSize is the number of numbered buttons shown at once. Windows are
// aligned to fixed groups rather than centred on the current page.
const pageGroupSize = 5

type pageButtonKind int

const (
	pageFirst pageButtonKind = iota
	pagePrev
	pageNumber
	pageNext
	pageLast
)

// pageButton is one entry of the pagination strip. A disabled button has no
// action: activating it does nothing.
type pageButton struct {
	Kind     pageButtonKind
	Label    string
	Target   int
	Disabled bool
	Active   bool
}

// pageWindow returns the half-open range of page indices shown for page.
func pageWindow(page, totalPages int) (start, end int) {
	start = (page / pageGroupSize) * pageGroupSize
	end = min(start+pageGroupSize, totalPages)
	return start, end
}

// paginate renders the strip for a 0-based page out of totalPages.
// An empty result means nothing is drawn.
func paginate(page, totalPages int) []pageButton {
	if totalPages <= 0 {
		return nil
	}
	if page < 0 {
		page = 0
	}
	start, end := pageWindow(page, totalPages)
	atStart := page == 0
	atEnd := page >= totalPages-1

	btns := make([]pageButton, 0, end-start+4)
	btns = append(btns,
		pageButton{Kind: pageFirst, Label: "<<", Target: 0, Disabled: atStart},
		pageButton{Kind: pagePrev, Label: "<", Target: page - 1, Disabled: atStart},
	)
	for i := start; i < end; i++ {
		btns = append(btns, pageButton{
			Kind:   pageNumber,
			Label:  strconv.Itoa(i + 1),
			Target: i,
			Active: i == page,
		})
	}
	btns = append(btns,
		pageButton{Kind: pageNext, Label: ">", Target: page + 1, Disabled: atEnd},
		pageButton{Kind: pageLast, Label: ">>", Target: totalPages - 1, Disabled: atEnd},
	)
	return btns
}

// findButton returns the first button of kind, or the n-th numbered button
// (1-based) when kind is pageNumber.
func findButton(btns []pageButton, kind pageButtonKind, n int) (pageButton, bool) {
	seen := 0
	for _, b := range btns {
		if b.Kind != kind {
			continue
		}
		if kind != pageNumber {
			return b, true
		}
		seen++
		if seen == n {
			return b, true
		}
	}
	return pageButton{}, false
}
