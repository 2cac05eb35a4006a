// Package tui provides the Bubble Tea launcher for the zenik menu.
//
// The launcher only chooses; it never invokes a module. Run returns the
// chosen identifier and the caller dispatches it with the terminal restored.
package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme holds the lipgloss styles used throughout the TUI.
type Theme struct {
	Primary   color.Color
	Secondary color.Color

	Success color.Color
	Warning color.Color
	Error   color.Color
	Muted   color.Color

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	SectionHead lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style

	BadgeOK   lipgloss.Style
	BadgeWarn lipgloss.Style
	BadgeFail lipgloss.Style

	Banner lipgloss.Style
}

// DefaultTheme returns the standard zenik theme.
func DefaultTheme() Theme {
	primary := lipgloss.Color("#22D3EE")   // cyan
	secondary := lipgloss.Color("#A78BFA") // violet

	success := lipgloss.Color("#10B981")  // emerald
	warning := lipgloss.Color("#F59E0B")  // amber
	errColor := lipgloss.Color("#EF4444") // red
	muted := lipgloss.Color("#6B7280")    // gray

	return Theme{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errColor,
		Muted:     muted,

		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle:    lipgloss.NewStyle().Foreground(muted),
		SectionHead: lipgloss.NewStyle().Bold(true).Foreground(secondary),
		HelpKey:     lipgloss.NewStyle().Bold(true).Foreground(muted),
		HelpDesc:    lipgloss.NewStyle().Foreground(muted),

		BadgeOK:   lipgloss.NewStyle().Bold(true).Foreground(success),
		BadgeWarn: lipgloss.NewStyle().Bold(true).Foreground(warning),
		BadgeFail: lipgloss.NewStyle().Bold(true).Foreground(errColor),

		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 2),
	}
}
