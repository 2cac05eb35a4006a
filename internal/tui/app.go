package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zenik/zenik/internal/feature"
)

// Options configures one launcher session.
type Options struct {
	Version string
	// Status is shown below the menu, usually the last selection's outcome.
	Status string
	// LogPath enables the activity log viewer when set.
	LogPath string
}

// appModel is the root model that manages the navigation stack.
type appModel struct {
	stack    []tea.Model
	width    int
	height   int
	theme    Theme
	selected string // module chosen before quitting
}

func newApp(set feature.EnabledSet, opts Options) *appModel {
	app := &appModel{theme: DefaultTheme()}
	app.stack = []tea.Model{newLauncher(set, opts, &app.theme)}
	return app
}

// Run shows the launcher for set and returns the identifier the user
// picked, or "" when they quit. The terminal is restored before Run
// returns, so the caller can invoke the module with normal I/O.
func Run(set feature.EnabledSet, opts Options) (string, error) {
	p := tea.NewProgram(newApp(set, opts))
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := result.(*appModel); ok {
		return m.selected, nil
	}
	return "", nil
}

func (m *appModel) top() tea.Model { return m.stack[len(m.stack)-1] }

func (m *appModel) Init() tea.Cmd {
	return m.top().Init()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case PushViewMsg:
		m.stack = append(m.stack, msg.Model)
		initCmd := msg.Model.Init()
		// Forward current window size to newly pushed view.
		var sizeCmd tea.Cmd
		if m.width > 0 && m.height > 0 {
			updated, cmd := msg.Model.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			m.stack[len(m.stack)-1] = updated
			sizeCmd = cmd
		}
		return m, tea.Batch(initCmd, sizeCmd)

	case PopViewMsg:
		if len(m.stack) == 1 {
			return m, tea.Quit
		}
		m.stack = m.stack[:len(m.stack)-1]
		return m, nil

	case selectMsg:
		m.selected = msg.id
		return m, tea.Quit
	}

	updated, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = updated
	return m, cmd
}

// renderer is implemented by every view on the stack.
type renderer interface{ render() string }

// render returns the content of the top view.
func (m *appModel) render() string {
	if r, ok := m.top().(renderer); ok {
		return r.render()
	}
	return m.top().View().Content
}

func (m *appModel) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.Content = m.render()
	return v
}
