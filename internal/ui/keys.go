package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Open      key.Binding
	Search    key.Binding
	Create    key.Binding
	Delete    key.Binding
	Export    key.Binding
	Copy      key.Binding
	Refresh   key.Binding
	First     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Last      key.Binding
	Jump      key.Binding
	Quit      key.Binding

	// form keys
	Save      key.Binding
	Close     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete marked")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		First:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Last:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "page in window")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// ShortHelp implements help.KeyMap for the list screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Open, k.Search, k.Create, k.Delete, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.SelectAll, k.Open, k.Copy},
		{k.First, k.Prev, k.Next, k.Last, k.Jump, k.Refresh},
		{k.Search, k.Create, k.Delete, k.Export, k.Quit},
	}
}

// applyFeatures disables bindings whose feature is switched off so neither
// the handlers nor the help line offer them.
func (k *keyMap) applyFeatures(search, create, del, export, selectAll, update bool) {
	k.Search.SetEnabled(search)
	k.Create.SetEnabled(create)
	k.Delete.SetEnabled(del)
	k.Export.SetEnabled(export)
	k.SelectAll.SetEnabled(selectAll)
	k.Save.SetEnabled(update || create)
}
