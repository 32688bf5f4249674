package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Card  key.Binding
	Op    key.Binding
	Paren key.Binding
	Undo  key.Binding
	Check key.Binding
	Reset key.Binding
	Lang  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Card:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "place card")),
		Op:    key.NewBinding(key.WithKeys("+", "-", "*", "x", "/"), key.WithHelp("+ - * /", "operator")),
		Paren: key.NewBinding(key.WithKeys("(", ")"), key.WithHelp("( )", "parenthesis")),
		Undo:  key.NewBinding(key.WithKeys("backspace", "u"), key.WithHelp("⌫/u", "undo")),
		Check: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new deal")),
		Lang:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Card, k.Op, k.Check, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Card, k.Op, k.Paren},
		{k.Check, k.Undo, k.Reset},
		{k.Lang, k.Help, k.Quit},
	}
}
