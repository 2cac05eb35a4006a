package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// HelpModel shows a keybinding reference overlay.
type HelpModel struct {
	theme *Theme
}

// NewHelp creates a new help overlay.
func NewHelp(theme *Theme) *HelpModel {
	return &HelpModel{theme: theme}
}

func (m *HelpModel) Init() tea.Cmd { return nil }

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		if IsQuit(msg) || IsBack(msg) || key.Matches(msg, keys.Help) {
			return m, popView
		}
	}
	return m, nil
}

func (m *HelpModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *HelpModel) render() string {
	var b strings.Builder

	b.WriteString(m.theme.SectionBanner("Keyboard Shortcuts"))
	b.WriteString("\n")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Secondary)

	b.WriteString(headStyle.Render("Menu"))
	b.WriteString("\n")
	for _, bind := range keys.launcherBindings() {
		h := bind.Help()
		b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
	}
	b.WriteString("  " + keyStyle.Render("number") + descStyle.Render("run the numbered module (enter confirms a prefix)") + "\n")

	b.WriteString("\n")
	b.WriteString(headStyle.Render("Viewers"))
	b.WriteString("\n")
	for _, bind := range [][2]string{
		{"j / k", "scroll"},
		{"g / G", "top / bottom"},
		{"y", "copy to clipboard"},
		{"esc", "close"},
	} {
		b.WriteString("  " + keyStyle.Render(bind[0]) + descStyle.Render(bind[1]) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.footer("esc / q / ?", "close"))
	return b.String()
}
