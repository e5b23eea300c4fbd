package ui

// selectionSet tracks the row checkboxes and the select-all control of the
// current page. Rows are identified by record id.
type selectionSet struct {
	ids     []string
	checked map[string]bool
	all     bool
}

// reset replaces the rows after a render; nothing is checked afterwards.
func (s *selectionSet) reset(ids []string) {
	s.ids = append(s.ids[:0:0], ids...)
	s.checked = make(map[string]bool, len(ids))
	s.all = false
}

// setAll mirrors the select-all control onto every row.
func (s *selectionSet) setAll(v bool) {
	s.all = v
	if s.checked == nil {
		s.checked = make(map[string]bool, len(s.ids))
	}
	for _, id := range s.ids {
		s.checked[id] = v
	}
}

// toggle flips one row and re-derives select-all from the rows.
func (s *selectionSet) toggle(id string) {
	if s.checked == nil {
		s.checked = make(map[string]bool, len(s.ids))
	}
	s.checked[id] = !s.checked[id]
	s.all = s.everyChecked()
}

func (s *selectionSet) everyChecked() bool {
	if len(s.ids) == 0 {
		return false
	}
	for _, id := range s.ids {
		if !s.checked[id] {
			return false
		}
	}
	return true
}

func (s selectionSet) isChecked(id string) bool { return s.checked[id] }

// selected returns checked ids in row order.
func (s selectionSet) selected() []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if s.checked[id] {
			out = append(out, id)
		}
	}
	return out
}
