package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"unifiedlist/internal/auth"
	"unifiedlist/internal/config"
)

// New builds the list controller for cfg. Nothing is fetched until Init.
func New(cfg config.Config, backend Backend, store auth.Store, opts Options) Model {
	m := Model{
		state:     stateList,
		cfg:       cfg,
		api:       backend,
		store:     store,
		metrics:   opts.Metrics,
		listeners: append([]CountListener(nil), opts.OnCount...),
		clipboard: opts.Clipboard,
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}

	m.keys = defaultKeyMap()
	f := cfg.Features
	m.keys.applyFeatures(f.Search, f.Create, f.Delete, f.Export, f.SelectAll, f.Update)
	m.help = help.New()

	si := textinput.New()
	si.Placeholder = "Search…"
	si.Prompt = "/ "
	si.CharLimit = 200
	si.Width = 40
	m.searchInput = si

	m.create = newForm(false)
	m.detail = newForm(true)

	li := textinput.New()
	li.Placeholder = "Bearer token"
	li.EchoMode = textinput.EchoPassword
	li.CharLimit = 4096
	li.Width = 60
	m.loginInput = li

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle
	m.spinner = sp

	m.refreshClaims()
	if m.store == nil || m.store.Token() == "" {
		m.enterLogin("No stored session. Paste a token to continue.")
		return m
	}
	// the initial load is generation 1; Init issues it
	m.listGen = 1
	m.loading = true
	return m
}

func newForm(detail bool) formState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 40
	owner := textinput.New()
	owner.Placeholder = "Owner"
	owner.CharLimit = 200
	owner.Width = 40
	if !detail {
		title.Focus()
	}
	return formState{inputs: []textinput.Model{title, owner}}
}

// Init performs the initial load, or waits at the login prompt when no
// token is stored.
func (m Model) Init() tea.Cmd {
	if m.state == stateLogin {
		return textinput.Blink
	}
	return tea.Batch(m.spinner.Tick, m.listCmd(m.listGen, 0))
}

func (m *Model) refreshClaims() {
	m.claims, m.hasClaims = auth.Claims{}, false
	if m.store == nil {
		return
	}
	m.claims, m.hasClaims = auth.Inspect(m.store.Token())
}

func (m *Model) enterLogin(status string) {
	m.loginInput.Reset()
	m.loginInput.Focus()
	m.statusMsg = status
	m.state = stateLogin
}
