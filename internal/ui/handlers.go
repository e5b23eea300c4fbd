package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"unifiedlist/internal/api"
	"unifiedlist/internal/infra/logx"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.state = stateQuit
		return m, tea.Quit
	}
	switch m.state {
	case stateList:
		return m.handleListKey(msg)
	case stateSearch:
		return m.handleSearchKey(msg)
	case stateCreate:
		return m.handleCreateKey(msg)
	case stateDetail:
		return m.handleDetailKey(msg)
	case stateConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case stateAlert:
		return m.handleAlertKey(msg)
	case stateLogin:
		return m.handleLoginKey(msg)
	}
	return m, nil
}

// ---------- list ----------

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.state = stateQuit
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.page.cursor > 0 {
			m.page.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.page.cursor < len(m.page.rows)-1 {
			m.page.cursor++
		}
	case key.Matches(msg, k.Toggle):
		if row, ok := m.cursorRow(); ok {
			m.sel.toggle(row.ID)
		}
	case key.Matches(msg, k.SelectAll):
		m.sel.setAll(!m.sel.all)
	case key.Matches(msg, k.Open):
		row, ok := m.cursorRow()
		if !ok || !hasDetailLink(m.cfg.Columns) {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.detailCmd(row.ID))
	case key.Matches(msg, k.Search):
		m.state = stateSearch
		cmd := m.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, k.Create):
		m.create = newForm(false)
		m.state = stateCreate
		return m, nil
	case key.Matches(msg, k.Delete):
		return m.requestDelete()
	case key.Matches(msg, k.Export):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.exportCmd())
	case key.Matches(msg, k.Copy):
		if row, ok := m.cursorRow(); ok {
			return m, m.copyCmd(row.ID)
		}
	case key.Matches(msg, k.Refresh):
		cmd := m.load(m.page.current)
		return m, cmd
	case key.Matches(msg, k.First):
		return m.activatePage(pageFirst, 0)
	case key.Matches(msg, k.Prev):
		return m.activatePage(pagePrev, 0)
	case key.Matches(msg, k.Next):
		return m.activatePage(pageNext, 0)
	case key.Matches(msg, k.Last):
		return m.activatePage(pageLast, 0)
	case key.Matches(msg, k.Jump):
		n, _ := strconv.Atoi(msg.String())
		return m.activatePage(pageNumber, n)
	}
	return m, nil
}

// cursorRow returns the data row under the cursor; the empty-state row does
// not count.
func (m Model) cursorRow() (tableRow, bool) {
	if m.page.cursor < 0 || m.page.cursor >= len(m.page.rows) {
		return tableRow{}, false
	}
	row := m.page.rows[m.page.cursor]
	if row.isEmptyState() {
		return tableRow{}, false
	}
	return row, true
}

// activatePage presses a pagination button. Missing and disabled buttons do
// nothing.
func (m Model) activatePage(kind pageButtonKind, n int) (tea.Model, tea.Cmd) {
	btn, ok := findButton(m.page.pager, kind, n)
	if !ok || btn.Disabled {
		return m, nil
	}
	m.page.cursor = 0
	cmd := m.load(btn.Target)
	return m, cmd
}

// requestDelete asks for confirmation of the checked rows. Nothing checked
// means a notice and no request.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	var ids []int64
	for _, s := range m.sel.selected() {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			logx.Warnf("skipping non-numeric id %q", s)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		m.showAlert("Select the records to delete.", true)
		return m, nil
	}
	m.pendingDelete = ids
	m.state = stateConfirmDelete
	return m, nil
}

// ---------- search ----------

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchInput.Blur()
		m.state = stateList
		m.page.cursor = 0
		m.page.current = 0
		cmd := m.load(0)
		return m, cmd
	case "esc":
		m.searchInput.Blur()
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// ---------- create / detail ----------

func (f *formState) focusField(i int, editable bool) {
	f.focus = i
	for j := range f.inputs {
		if j == i && editable {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f formState) record() api.Record {
	return api.Record{
		"title": f.inputs[fieldTitle].Value(),
		"owner": f.inputs[fieldOwner].Value(),
	}
}

// handleFormKey covers the keys shared by both forms. done reports that the
// key was consumed; submit that the form should be sent.
func (m Model) handleFormKey(f *formState, msg tea.KeyMsg, editable bool) (submit, done bool, cmd tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Close):
		return false, true, nil
	case key.Matches(msg, k.Save):
		return editable, true, nil
	case msg.String() == "enter":
		if f.focus == len(f.inputs)-1 {
			return editable, true, nil
		}
		f.focusField(f.focus+1, editable)
		return false, false, nil
	case key.Matches(msg, k.NextField):
		f.focusField((f.focus+1)%len(f.inputs), editable)
		return false, false, nil
	case key.Matches(msg, k.PrevField):
		f.focusField((f.focus+len(f.inputs)-1)%len(f.inputs), editable)
		return false, false, nil
	}
	if editable {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return false, false, cmd
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit, done, cmd := m.handleFormKey(&m.create, msg, true)
	if !done {
		return m, cmd
	}
	if !submit {
		m.state = stateList
		return m, nil
	}
	if strings.TrimSpace(m.create.inputs[fieldTitle].Value()) == "" {
		m.showAlert("Title is required.", true)
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.createCmd(m.create.record()))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editable := m.cfg.Features.Update
	submit, done, cmd := m.handleFormKey(&m.detail, msg, editable)
	if !done {
		return m, cmd
	}
	if !submit {
		m.state = stateList
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.updateCmd(m.detail.id, m.detail.record()))
}

// ---------- confirm / alert ----------

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		ids := m.pendingDelete
		m.state = stateList
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.deleteCmd(ids))
	case key.Matches(msg, m.keys.Cancel):
		m.pendingDelete = nil
		m.state = stateList
	}
	return m, nil
}

func (m Model) deletePrompt() string {
	return fmt.Sprintf("Delete %d record(s)?", len(m.pendingDelete))
}

func (m Model) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "q":
	default:
		return m, nil
	}
	next := m.alert.next
	m.alert = alertState{}
	if next == stateLogin {
		m.enterLogin(sessionExpiredText)
		return m, textinput.Blink
	}
	m.state = next
	return m, nil
}

// ---------- login ----------

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateQuit
		return m, tea.Quit
	case "enter":
		tok := strings.TrimSpace(m.loginInput.Value())
		if tok == "" {
			m.statusMsg = "A token is required."
			return m, nil
		}
		if err := m.store.Save(tok); err != nil {
			logx.Errorf("store token: %v", err)
			m.statusMsg = "Could not store the token: " + err.Error()
			return m, nil
		}
		m.loginInput.Reset()
		m.loginInput.Blur()
		m.refreshClaims()
		m.statusMsg = ""
		m.state = stateList
		m.page.cursor = 0
		cmd := m.load(0)
		return m, cmd
	}
	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}
