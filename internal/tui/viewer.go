package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zenik/zenik/internal/platform"
)

// scrollbarWidth is the space reserved for the scrollbar column (space + char).
const scrollbarWidth = 2

const (
	pagerHeaderLines = 4 // blank + rule + title + blank
	pagerFooterLines = 2 // blank + help text
	logPagerLines    = 200
)

// renderScrollbar returns a single-column track with a proportional thumb,
// or "" when everything fits.
func renderScrollbar(trackHeight, totalLines, visibleLines int, scrollPercent float64, theme *Theme) string {
	if totalLines <= visibleLines || trackHeight < 1 {
		return ""
	}
	thumbSize := max(1, trackHeight*visibleLines/totalLines)
	thumbStart := min(max(0, int(scrollPercent*float64(trackHeight-thumbSize))), trackHeight-thumbSize)

	track := lipgloss.NewStyle().Foreground(theme.Muted)
	thumb := lipgloss.NewStyle().Foreground(theme.Secondary)

	lines := make([]string, trackHeight)
	for i := range lines {
		if i >= thumbStart && i < thumbStart+thumbSize {
			lines[i] = thumb.Render("┃")
		} else {
			lines[i] = track.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// pagerLoadedMsg carries content produced by a pager's loader.
type pagerLoadedMsg struct {
	content string
	err     error
}

// pagerCopiedMsg clears the "Copied!" flash.
type pagerCopiedMsg struct{}

// pagerModel shows read-only text in a scrollable viewport. Content is
// either given up front or produced by load when the view is pushed.
type pagerModel struct {
	title    string
	content  string
	load     func() (string, error)
	err      error
	viewport viewport.Model
	theme    *Theme
	ready    bool
	copied   bool
}

func newPager(title, content string, theme *Theme) *pagerModel {
	return &pagerModel{title: title, content: content, theme: theme}
}

// newLogPager shows the tail of the activity log.
func newLogPager(path string, theme *Theme) *pagerModel {
	return &pagerModel{
		title: "Activity log",
		theme: theme,
		load: func() (string, error) {
			lines, err := platform.TailLines(path, logPagerLines)
			if errors.Is(err, fs.ErrNotExist) || (err == nil && len(lines) == 0) {
				return "No activity logged yet.", nil
			}
			if err != nil {
				return "", err
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}

func (m *pagerModel) loading() bool { return m.load != nil }

// SetSize sizes the viewport synchronously.
func (m *pagerModel) SetSize(width, height int) {
	m.viewport = viewport.New(
		viewport.WithWidth(max(1, width-scrollbarWidth)),
		viewport.WithHeight(max(1, height-pagerHeaderLines-pagerFooterLines)),
	)
	m.viewport.SoftWrap = true
	m.viewport.SetContent(m.content)
	m.ready = true
}

func (m *pagerModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		content, err := load()
		return pagerLoadedMsg{content: content, err: err}
	}
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.SetSize(msg.Width, msg.Height)
			return m, nil
		}
		m.viewport.SetWidth(max(1, msg.Width-scrollbarWidth))
		m.viewport.SetHeight(max(1, msg.Height-pagerHeaderLines-pagerFooterLines))
		return m, nil

	case pagerLoadedMsg:
		m.load = nil
		m.err = msg.err
		m.content = msg.content
		if m.ready {
			m.viewport.SetContent(m.content)
			m.viewport.GotoBottom()
		}
		return m, nil

	case pagerCopiedMsg:
		m.copied = false
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case IsQuit(msg), IsBack(msg):
			return m, popView
		}
		switch msg.String() {
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "y":
			m.copied = true
			return m, tea.Batch(
				tea.SetClipboard(m.content),
				tea.Tick(2*time.Second, func(time.Time) tea.Msg { return pagerCopiedMsg{} }),
			)
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *pagerModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *pagerModel) render() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionBanner(m.title))
	b.WriteString("\n")

	switch {
	case m.loading():
		b.WriteString("  Loading...\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()))
		b.WriteString("\n\n  Press esc to go back.\n")
		return b.String()
	}

	if m.ready {
		body := m.viewport.View()
		total := strings.Count(m.content, "\n") + 1
		height := m.viewport.Height()
		if bar := renderScrollbar(height, total, height, m.viewport.ScrollPercent(), m.theme); bar != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", bar)
		}
		b.WriteString(body)
	} else {
		b.WriteString(m.content)
	}
	b.WriteString("\n\n")

	trail := m.theme.HelpKey.Render(fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100)))
	if m.copied {
		trail = lipgloss.NewStyle().Foreground(m.theme.Success).Bold(true).Render("Copied!")
	}
	b.WriteString(m.theme.footer("j/k", "scroll", "g/G", "top/bottom", "y", "copy", "esc", "back"))
	b.WriteString("  " + trail)
	return b.String()
}
