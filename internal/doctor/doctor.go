// Package doctor implements the health check, which reports the detected
// platform, revoked capabilities, the settings and log files, and the host
// binaries the modules shell out to.
package doctor

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/zenik/zenik/internal/platform"
	"github.com/zenik/zenik/internal/tools"
)

// Inputs is what the health check inspects.
type Inputs struct {
	// Probed is the environment found at startup.
	Probed platform.Environment
	// Effective is the environment after configured revocations.
	Effective platform.Environment
	// ConfigPath is the settings file in use, or "" when defaults apply.
	ConfigPath string
	LogPath    string
	// GOOS selects the host tools to check. Defaults to runtime.GOOS.
	GOOS string
	// PackageManager is used for install hints. Zero means detect.
	PackageManager platform.PackageManager
}

// Summary counts what the checks found.
type Summary struct {
	Issues   int
	Warnings int
}

// Healthy reports whether every check passed.
func (s Summary) Healthy() bool { return s.Issues == 0 && s.Warnings == 0 }

func (s *Summary) add(issues, warnings int) {
	s.Issues += issues
	s.Warnings += warnings
}

// RunTo runs every check, writing all output to w.
func RunTo(w io.Writer, in Inputs) Summary {
	if in.GOOS == "" {
		in.GOOS = runtime.GOOS
	}
	if in.PackageManager == platform.PMNone {
		in.PackageManager = platform.DetectPackageManager()
	}

	platform.PrintBanner(w, "Health Check")

	var sum Summary
	sum.add(checkPlatform(w, in.Probed))
	sum.add(checkCapabilities(w, in.Probed, in.Effective))
	sum.add(checkConfig(w, in.ConfigPath))
	sum.add(checkLog(w, in.LogPath))
	sum.add(checkTools(w, in.GOOS, in.PackageManager))

	platform.PrintBanner(w, "Summary")
	if sum.Healthy() {
		fmt.Fprintln(w, platform.BoldGreen("All checks passed."))
	} else {
		if sum.Issues > 0 {
			fmt.Fprintln(w, platform.Red(fmt.Sprintf("Issues: %d (must fix)", sum.Issues)))
		}
		if sum.Warnings > 0 {
			fmt.Fprintln(w, platform.Yellow(fmt.Sprintf("Warnings: %d (optional)", sum.Warnings)))
		}
	}
	fmt.Fprintln(w)

	return sum
}

func checkPlatform(w io.Writer, env platform.Environment) (int, int) {
	platform.PrintSection(w, "Platform")
	platform.PrintKV(w, "OS/Arch", env.OS()+"/"+env.Arch())
	if env.Kernel() != "" {
		platform.PrintKV(w, "Kernel", env.Kernel())
	}

	switch env.Kind() {
	case platform.KindDesktop:
		pass(w, "Classified as desktop")
	case platform.KindMobileConstrained:
		pass(w, "Classified as mobile (constrained)")
	default:
		warn(w, "Platform could not be classified; running constrained")
		fmt.Fprintln(w, "    Set ZENIK_PLATFORM=desktop or mobile to override")
		return 0, 1
	}
	return 0, 0
}

func checkCapabilities(w io.Writer, probed, effective platform.Environment) (int, int) {
	warnings := 0

	platform.PrintSection(w, "Capabilities")
	for _, c := range platform.AllCapabilities() {
		switch {
		case effective.Has(c):
			pass(w, c.String())
		case probed.Has(c):
			warn(w, c.String()+" detected but revoked by settings")
			warnings++
		default:
			platform.PrintInfo(w, c.String()+" not detected")
		}
	}
	return 0, warnings
}

func checkConfig(w io.Writer, path string) (int, int) {
	platform.PrintSection(w, "Settings")
	if path == "" {
		platform.PrintInfo(w, "No settings file; using defaults")
		return 0, 0
	}
	if !platform.FileExists(path) {
		fail(w, "Settings file disappeared: "+path)
		return 1, 0
	}
	pass(w, "Settings file: "+path)
	return 0, 0
}

func checkLog(w io.Writer, path string) (int, int) {
	platform.PrintSection(w, "Activity log")
	if path == "" {
		warn(w, "Activity log disabled")
		return 0, 1
	}
	info, err := os.Stat(path)
	if err != nil {
		warn(w, "Activity log not created yet: "+path)
		return 0, 1
	}
	pass(w, fmt.Sprintf("Activity log: %s (%d bytes)", path, info.Size()))
	return 0, 0
}

// checkTools counts missing host binaries as warnings; the modules using
// them fall back to library code or report the missing tool.
func checkTools(w io.Writer, goos string, pm platform.PackageManager) (int, int) {
	platform.PrintSection(w, "Host tools")
	platform.PrintKV(w, "Package manager", pm.String())
	missing := tools.ReportTo(w, tools.For(goos), pm)
	return 0, missing
}

func pass(w io.Writer, msg string) {
	platform.PrintOK(w, msg)
}

func fail(w io.Writer, msg string) {
	platform.PrintFail(w, msg)
}

func warn(w io.Writer, msg string) {
	platform.PrintWarn(w, msg)
}
