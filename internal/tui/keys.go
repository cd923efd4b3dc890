package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	ClearDone  key.Binding
	ClearAll   key.Binding
	MarkAll    key.Binding
	FilterAll  key.Binding
	FilterOpen key.Binding
	FilterDone key.Binding
	NextFilter key.Binding
	Quit       key.Binding

	Submit key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		ClearDone:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		ClearAll:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		MarkAll:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark all done")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterOpen: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "open")),
		FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Edit, k.NextFilter}
}

func (k keyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Add, k.Toggle, k.Delete, k.Edit,
		k.ClearDone, k.ClearAll, k.MarkAll,
		k.FilterAll, k.FilterOpen, k.FilterDone, k.NextFilter,
	}
}
