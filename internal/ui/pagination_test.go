package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func labels(btns []pageButton) []string {
	out := make([]string, 0, len(btns))
	for _, b := range btns {
		out = append(out, b.Label)
	}
	return out
}

func TestPaginateNothingWithoutPages(t *testing.T) {
	for _, total := range []int{0, -1} {
		if got := paginate(0, total); got != nil {
			t.Fatalf("total=%d: expected no buttons, got %v", total, got)
		}
	}
}

func TestPaginateWindows(t *testing.T) {
	tests := []struct {
		page, total int
		want        []string
		active      string
	}{
		{0, 12, []string{"<<", "<", "1", "2", "3", "4", "5", ">", ">>"}, "1"},
		{7, 12, []string{"<<", "<", "6", "7", "8", "9", "10", ">", ">>"}, "8"},
		{11, 12, []string{"<<", "<", "11", "12", ">", ">>"}, "12"},
		{0, 1, []string{"<<", "<", "1", ">", ">>"}, "1"},
		{4, 5, []string{"<<", "<", "1", "2", "3", "4", "5", ">", ">>"}, "5"},
	}
	for _, tt := range tests {
		btns := paginate(tt.page, tt.total)
		if diff := cmp.Diff(tt.want, labels(btns)); diff != "" {
			t.Fatalf("page=%d total=%d labels (-want +got):\n%s", tt.page, tt.total, diff)
		}
		active := 0
		for _, b := range btns {
			if b.Active {
				active++
				if b.Label != tt.active {
					t.Fatalf("page=%d: active %q, want %q", tt.page, b.Label, tt.active)
				}
			}
		}
		if active != 1 {
			t.Fatalf("page=%d: %d active buttons", tt.page, active)
		}
	}
}

func TestPaginateDisabledEnds(t *testing.T) {
	type state struct {
		Label    string
		Target   int
		Disabled bool
	}
	ends := func(btns []pageButton) []state {
		n := len(btns)
		var out []state
		for _, b := range []pageButton{btns[0], btns[1], btns[n-2], btns[n-1]} {
			out = append(out, state{b.Label, b.Target, b.Disabled})
		}
		return out
	}

	first := ends(paginate(0, 3))
	want := []state{{"<<", 0, true}, {"<", -1, true}, {">", 1, false}, {">>", 2, false}}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("first page (-want +got):\n%s", diff)
	}

	last := ends(paginate(2, 3))
	want = []state{{"<<", 0, false}, {"<", 1, false}, {">", 3, true}, {">>", 2, true}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("last page (-want +got):\n%s", diff)
	}

	single := ends(paginate(0, 1))
	for _, s := range single {
		if !s.Disabled {
			t.Fatalf("single page: %q should be disabled", s.Label)
		}
	}
}

func TestPageWindowAlignsToGroups(t *testing.T) {
	for page := 0; page < 23; page++ {
		start, end := pageWindow(page, 23)
		if start%pageGroupSize != 0 || page < start || page >= end || end-start > pageGroupSize {
			t.Fatalf("page %d: window [%d,%d)", page, start, end)
		}
	}
}

func TestFindButton(t *testing.T) {
	btns := paginate(6, 12)
	b, ok := findButton(btns, pageNumber, 2)
	if !ok || b.Target != 6 || !b.Active {
		t.Fatalf("second numbered button: %+v ok=%v", b, ok)
	}
	if _, ok := findButton(btns, pageNumber, 6); ok {
		t.Fatalf("only five numbered buttons exist")
	}
	if b, ok := findButton(btns, pageLast, 0); !ok || b.Target != 11 {
		t.Fatalf("last: %+v", b)
	}
	if _, ok := findButton(nil, pageFirst, 0); ok {
		t.Fatalf("no buttons, nothing found")
	}
}
