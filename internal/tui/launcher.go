package tui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

// launcherItem is one enabled module.
type launcherItem struct {
	id   string
	name string
	desc string
}

// launcherGroup is a non-empty category of the enabled set.
type launcherGroup struct {
	title string
	items []launcherItem
}

// launcherModel lists the enabled set grouped by category. Items are
// numbered in the same order as the line-mode menu.
type launcherModel struct {
	groups   []launcherGroup
	env      platform.Environment
	cursor   int // flat index across all items
	total    int
	width    int
	height   int
	theme    *Theme
	opts     Options
	quitting bool
	// digits holds a typed number that could still grow, e.g. "1" when
	// there are more than nine items.
	digits string
}

func newLauncher(set feature.EnabledSet, opts Options, theme *Theme) *launcherModel {
	var groups []launcherGroup
	total := 0
	for _, c := range set.Categories() {
		g := launcherGroup{title: c.Title()}
		for _, m := range set.InCategory(c) {
			g.items = append(g.items, launcherItem{id: m.ID, name: m.Name, desc: m.Description})
		}
		total += len(g.items)
		groups = append(groups, g)
	}

	return &launcherModel{
		groups: groups,
		env:    set.Environment(),
		total:  total,
		theme:  theme,
		opts:   opts,
	}
}

// itemAt returns the item at flat index i.
func (m *launcherModel) itemAt(i int) (launcherItem, bool) {
	for _, g := range m.groups {
		if i < len(g.items) {
			return g.items[i], true
		}
		i -= len(g.items)
	}
	return launcherItem{}, false
}

func (m *launcherModel) Init() tea.Cmd {
	return nil
}

func (m *launcherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if d := msg.String(); len(d) == 1 && d[0] >= '0' && d[0] <= '9' {
			return m, m.typeDigit(d)
		}
		pending := m.digits != ""
		m.digits = ""

		switch {
		case pending && key.Matches(msg, keys.Back):
			return m, nil
		case IsQuit(msg):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.total-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Top):
			m.cursor = 0
		case key.Matches(msg, keys.Bottom):
			m.cursor = max(0, m.total-1)
		case key.Matches(msg, keys.Select):
			return m, m.choose(m.cursor)
		case key.Matches(msg, keys.Details):
			return m, pushView(newPager("Environment", environmentDetails(m.env), m.theme))
		case key.Matches(msg, keys.Log):
			if m.opts.LogPath != "" {
				return m, pushView(newLogPager(m.opts.LogPath, m.theme))
			}
		case key.Matches(msg, keys.Help):
			return m, pushView(NewHelp(m.theme))
		}
	}
	return m, nil
}

// typeDigit numbers items like the line-mode menu. A number is picked as
// soon as no further digit could extend it; otherwise the cursor moves to
// it and enter confirms.
func (m *launcherModel) typeDigit(d string) tea.Cmd {
	buf := m.digits + d
	n, _ := strconv.Atoi(buf)
	if n > m.total {
		buf = d
		n, _ = strconv.Atoi(d)
	}
	if n < 1 || n > m.total {
		m.digits = ""
		return nil
	}

	m.cursor = n - 1
	if n*10 > m.total {
		m.digits = ""
		return m.choose(m.cursor)
	}
	m.digits = buf
	return nil
}

func (m *launcherModel) choose(i int) tea.Cmd {
	item, ok := m.itemAt(i)
	if !ok {
		return nil
	}
	return func() tea.Msg { return selectMsg{id: item.id} }
}

func (m *launcherModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m *launcherModel) render() string {
	var b strings.Builder

	title := m.theme.Title.Render(fmt.Sprintf("ZENIK TOOL  %s", m.opts.Version))
	subtitle := m.theme.Subtitle.Render("terminal multi-tool") + "  " + m.theme.modeBadge(m.env)
	caps := m.theme.capabilityLine(m.env)
	b.WriteString(m.theme.Banner.Render(title + "\n" + subtitle + "\n" + caps))
	b.WriteString("\n")

	maxName := 0
	for _, g := range m.groups {
		for _, item := range g.items {
			maxName = max(maxName, len(item.name))
		}
	}

	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	active := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)

	flatIdx := 0
	for _, g := range m.groups {
		b.WriteString("\n")
		b.WriteString(m.theme.SectionHead.Render(g.title))
		b.WriteString("\n")

		for _, item := range g.items {
			num := fmt.Sprintf("%2d", flatIdx+1)
			name := fmt.Sprintf("%-*s", maxName, item.name)

			cursor := "  "
			if flatIdx == m.cursor {
				cursor = active.Render("> ")
				num = active.Render(num)
				name = active.Render(name)
			} else {
				num = muted.Render(num)
			}
			fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, num, name, muted.Render(item.desc))
			flatIdx++
		}
	}

	if m.total == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.BadgeWarn.Render("No modules are available on this platform."))
		b.WriteString("\n")
	}

	if m.opts.Status != "" {
		b.WriteString("\n")
		b.WriteString(m.opts.Status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.footer("↑/↓", "navigate", keyEnter, "select", "i", "environment", "?", "help", "q", "quit"))
	b.WriteString("\n")
	return b.String()
}

// environmentDetails renders the environment for the details pager.
func environmentDetails(env platform.Environment) string {
	r := env.Report()
	var b strings.Builder
	fmt.Fprintf(&b, "Platform      %s\n", r.Platform)
	fmt.Fprintf(&b, "Constrained   %t\n", r.Constrained)
	fmt.Fprintf(&b, "OS / Arch     %s / %s\n", r.OS, r.Arch)
	if r.Kernel != "" {
		fmt.Fprintf(&b, "Kernel        %s\n", r.Kernel)
	}
	b.WriteString("\nCapabilities\n")
	for _, c := range platform.AllCapabilities() {
		mark := "no"
		if env.Has(c) {
			mark = "yes"
		}
		fmt.Fprintf(&b, "  %-16s %s\n", c.String(), mark)
	}
	return b.String()
}
