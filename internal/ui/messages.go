package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"unifiedlist/internal/api"
	"unifiedlist/internal/infra/logx"
)

// ---------- Messages / Cmds ----------

// listLoadedMsg answers the list load of generation gen for page.
type listLoadedMsg struct {
	gen  uint64
	page int
	resp api.ListResponse
	err  error
}

type detailLoadedMsg struct {
	session uint64
	id      string
	rec     api.Record
	err     error
}

type mutationDoneMsg struct {
	session uint64
	op      api.Op
	res     api.MutationResult
	err     error
}

type exportDoneMsg struct {
	session uint64
	path    string
	err     error
}

type copiedMsg struct {
	id  string
	err error
}

func (m Model) timeout() time.Duration {
	if m.cfg.Timeout > 0 {
		return m.cfg.Timeout
	}
	return 10 * time.Second
}

// load starts a list load for page and makes it the newest generation.
func (m *Model) load(page int) tea.Cmd {
	m.listGen++
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.listCmd(m.listGen, page))
}

func (m Model) searchText() string {
	if !m.cfg.Features.Search {
		return ""
	}
	return m.searchInput.Value()
}

func (m Model) listCmd(gen uint64, page int) tea.Cmd {
	search := m.searchText()
	backend, d := m.api, m.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		resp, err := backend.List(ctx, page, search)
		return listLoadedMsg{gen: gen, page: page, resp: resp, err: err}
	}
}

func (m Model) detailCmd(id string) tea.Cmd {
	backend, d, session := m.api, m.timeout(), m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		rec, err := backend.Get(ctx, id)
		return detailLoadedMsg{session: session, id: id, rec: rec, err: err}
	}
}

func (m Model) createCmd(rec api.Record) tea.Cmd {
	backend, d, session := m.api, m.timeout(), m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		res, err := backend.Create(ctx, rec)
		return mutationDoneMsg{session: session, op: api.OpCreate, res: res, err: err}
	}
}

func (m Model) updateCmd(id string, rec api.Record) tea.Cmd {
	backend, d, session := m.api, m.timeout(), m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		res, err := backend.Update(ctx, id, rec)
		return mutationDoneMsg{session: session, op: api.OpUpdate, res: res, err: err}
	}
}

func (m Model) deleteCmd(ids []int64) tea.Cmd {
	backend, d, session := m.api, m.timeout(), m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		res, err := backend.Delete(ctx, ids)
		return mutationDoneMsg{session: session, op: api.OpDelete, res: res, err: err}
	}
}

// exportCmd downloads the spreadsheet for the current search and stores it
// in the export directory. Save releases the body and the temp file.
func (m Model) exportCmd() tea.Cmd {
	search := m.searchText()
	backend, d, session := m.api, m.timeout(), m.session
	dir, name := m.cfg.Export.Dir, m.cfg.Export.DefaultName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		dl, err := backend.Export(ctx, search, name)
		if err != nil {
			return exportDoneMsg{session: session, err: err}
		}
		path, err := dl.Save(dir)
		if err != nil {
			logx.Errorf("export save: %v", err)
		}
		return exportDoneMsg{session: session, path: path, err: err}
	}
}

func (m Model) copyCmd(id string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return copiedMsg{id: id, err: write(id)}
	}
}
