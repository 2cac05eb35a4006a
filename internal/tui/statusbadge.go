package tui

import (
	"github.com/zenik/zenik/internal/platform"
)

// modeBadge renders the platform mode: green for an unconstrained desktop,
// amber for anything constrained.
func (t Theme) modeBadge(env platform.Environment) string {
	switch env.Kind() {
	case platform.KindDesktop:
		return t.BadgeOK.Render("[DESKTOP]")
	case platform.KindMobileConstrained:
		return t.BadgeWarn.Render("[MOBILE · constrained]")
	default:
		return t.BadgeWarn.Render("[UNKNOWN · constrained]")
	}
}

// capabilityLine lists every capability with a check or cross.
func (t Theme) capabilityLine(env platform.Environment) string {
	var out string
	for i, c := range platform.AllCapabilities() {
		if i > 0 {
			out += "  "
		}
		out += t.statusIcon(env.Has(c)) + " " + c.String()
	}
	return out
}

func (t Theme) statusIcon(ok bool) string {
	if ok {
		return t.BadgeOK.Render("✓")
	}
	return t.BadgeFail.Render("✗")
}
