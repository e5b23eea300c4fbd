package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"unifiedlist/internal/api"
	"unifiedlist/internal/infra/logx"
)

const sessionExpiredText = "Your session has expired. Please log in again."

var failureText = map[api.Op]string{
	api.OpList:   "Failed to load the list.",
	api.OpDetail: "Failed to load the record.",
	api.OpCreate: "Failed to create the record.",
	api.OpUpdate: "Failed to update the record.",
	api.OpDelete: "Failed to delete the records.",
	api.OpExport: "Failed to export the list.",
}

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		return m.handleListLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case exportDoneMsg:
		if m.ended(msg.session) {
			logx.Debugf("dropping export answer of an ended session")
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.fail(api.OpExport, msg.err)
		}
		logx.Infof("export saved to %s", msg.path)
		m.showAlert(fmt.Sprintf("Saved %s", msg.path), false)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.statusMsg = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.statusMsg = "Copied id " + msg.id
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.listGen {
		logx.Debugf("dropping list answer gen=%d (latest %d)", msg.gen, m.listGen)
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(api.OpList, msg.err)
	}
	content := msg.resp.Content
	if content == nil {
		content = []api.Record{}
	}
	m.page.current = msg.page
	m.page.records = content
	m.page.rows = renderRows(content, m.cfg.Columns)
	m.page.pager = paginate(msg.resp.Page, msg.resp.TotalPages)
	m.page.total = msg.resp.TotalElements
	m.page.cursor = min(m.page.cursor, max(0, len(m.page.rows)-1))
	m.sel.reset(rowIDs(m.page.rows))
	for _, l := range m.listeners {
		l(m.page.total)
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if m.ended(msg.session) {
		logx.Debugf("dropping detail answer for %s of an ended session", msg.id)
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(api.OpDetail, msg.err)
	}
	if msg.rec == nil {
		m.showAlert("Record not found.", true)
		return m, nil
	}
	df := m.cfg.DetailFields
	m.detail.id = msg.rec.Text(df.ID)
	if m.detail.id == "" {
		m.detail.id = msg.id
	}
	m.detail.regDate = msg.rec.Text(df.RegDate)
	m.detail.inputs[fieldTitle].SetValue(msg.rec.Text(df.Title))
	m.detail.inputs[fieldOwner].SetValue(msg.rec.Text(df.Owner))
	m.detail.focusField(fieldTitle, m.cfg.Features.Update)
	m.moveTo(stateDetail)
	return m, nil
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if m.ended(msg.session) {
		logx.Debugf("dropping %s answer of an ended session", msg.op)
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(msg.op, msg.err)
	}
	switch msg.op {
	case api.OpCreate:
		m.moveTo(stateList)
		if msg.res.Created() {
			m.showAlert("Record created.", false)
		} else {
			m.showAlert("The record could not be created.", true)
		}
		cmd := m.load(0)
		return m, cmd
	case api.OpUpdate:
		m.moveTo(stateList)
		if msg.res.Updated() {
			m.showAlert("Record updated.", false)
		} else {
			m.showAlert("The record could not be updated.", true)
		}
		cmd := m.load(m.page.current)
		return m, cmd
	case api.OpDelete:
		m.pendingDelete = nil
		text := msg.res.Message
		if text == "" {
			text = "Records deleted."
		}
		m.moveTo(stateList)
		m.showAlert(text, false)
		cmd := m.load(m.page.current)
		return m, cmd
	}
	return m, nil
}

// fail routes an operation error: a 401 ends the session, anything else is
// logged and reported without touching the data on screen.
func (m Model) fail(op api.Op, err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrSessionExpired) {
		m.expireSession()
		return m, nil
	}
	logx.Errorf("%s failed: %v", op, err)
	text, ok := failureText[op]
	if !ok {
		text = "The request failed."
	}
	m.showAlert(text, true)
	return m, nil
}

// expireSession clears stored credentials and heads to the login screen once
// the notice is dismissed. Later 401s of requests already in flight are
// absorbed.
func (m *Model) expireSession() {
	m.loading = false
	if m.state == stateLogin || (m.state == stateAlert && m.alert.next == stateLogin) {
		return
	}
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			logx.Errorf("clear token storage: %v", err)
		}
	}
	logx.Warnf("session expired, token storage cleared")
	m.refreshClaims()
	m.listGen++
	m.session++
	m.pendingDelete = nil
	m.alert = alertState{msg: sessionExpiredText, isErr: true, next: stateLogin}
	m.state = stateAlert
}

// ended reports whether an answer belongs to a session that has expired
// since, or arrives while the login screen is pending.
func (m Model) ended(session uint64) bool {
	return session != m.session || m.state == stateLogin ||
		(m.state == stateAlert && m.alert.next == stateLogin)
}

// moveTo switches to s, or queues s behind an open notice.
func (m *Model) moveTo(s state) {
	if m.state == stateAlert {
		m.alert.next = s
		return
	}
	m.state = s
}

// showAlert blocks the screen with a notice. Dismissing it returns to the
// state that was active underneath; notices raised while one is open are
// appended.
func (m *Model) showAlert(text string, isErr bool) {
	if m.state == stateAlert {
		m.alert.msg += "\n" + text
		m.alert.isErr = m.alert.isErr || isErr
		return
	}
	m.alert = alertState{msg: text, isErr: isErr, next: m.state}
	m.state = stateAlert
}
