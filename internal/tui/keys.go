package tui

import "github.com/charmbracelet/bubbles/key"

// boardKeys are the board bindings shown by the help view.
type boardKeys struct {
	Up, Down            key.Binding
	PrevCol, NextCol    key.Binding
	MoveLeft, MoveRight key.Binding
	Toggle, Cancel      key.Binding
	Refresh             key.Binding
	Help, Quit          key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevCol:   key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev column")),
		NextCol:   key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next column")),
		MoveLeft:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "move left")),
		MoveRight: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "move right")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Cancel:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel timer")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.Toggle, k.Cancel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevCol, k.NextCol},
		{k.MoveLeft, k.MoveRight, k.Toggle, k.Cancel},
		{k.Refresh, k.Help, k.Quit},
	}
}

// timerKeys are the bindings of the single-task timer view.
type timerKeys struct {
	Finish, Toggle, Cancel, Quit key.Binding
}

func newTimerKeys() timerKeys {
	return timerKeys{
		Finish: key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter/p", "pause and record")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}
