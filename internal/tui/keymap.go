package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// keyMap holds the launcher bindings. The help overlay is generated from it.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Select  key.Binding
	Details key.Binding
	Log     key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "go to top")),
	Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "go to bottom")),
	Select:  key.NewBinding(key.WithKeys(keyEnter), key.WithHelp(keyEnter, "run module")),
	Details: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "environment details")),
	Log:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "activity log")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show / hide help")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "go back")),
	Quit:    key.NewBinding(key.WithKeys("q", keyCtrlC), key.WithHelp("q", "quit")),
}

// launcherBindings lists the bindings shown on the help screen, in order.
func (k keyMap) launcherBindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Select, k.Details, k.Log, k.Help, k.Quit}
}

// IsQuit returns true if the key message is a quit key (q or ctrl+c).
func IsQuit(msg tea.KeyPressMsg) bool {
	return key.Matches(msg, keys.Quit)
}

// IsBack returns true if the key message is a back key (esc).
func IsBack(msg tea.KeyPressMsg) bool {
	return key.Matches(msg, keys.Back)
}
