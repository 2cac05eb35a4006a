// Package tools describes the host binaries that some modules drive, with
// detection and install hints. Nothing here installs software.
package tools

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/zenik/zenik/internal/platform"
)

// Tool is a host binary, or a set of interchangeable binaries, a module
// shells out to.
type Tool struct {
	Name string
	// Alternatives are checked after Name; any one of them satisfies the tool.
	Alternatives []string
	Purpose      string
	// Modules lists the module identifiers that use the tool.
	Modules []string
	// OS limits the tool to these GOOS values. Empty means every OS.
	OS []string
	// Packages maps a package manager to the package providing the tool.
	// Missing entries default to Name.
	Packages map[platform.PackageManager]string
}

// AppliesTo reports whether the tool is relevant on goos.
func (t Tool) AppliesTo(goos string) bool {
	return len(t.OS) == 0 || slices.Contains(t.OS, goos)
}

// Resolve returns the first binary of the tool found on PATH, or "".
func (t Tool) Resolve() string {
	return platform.FirstExisting(append([]string{t.Name}, t.Alternatives...)...)
}

// IsInstalled reports whether any binary of the tool is available.
func (t Tool) IsInstalled() bool {
	return t.Resolve() != ""
}

// InstallHint returns the manual install command for this tool.
func (t Tool) InstallHint(pm platform.PackageManager) string {
	pkg := t.Name
	if p, ok := t.Packages[pm]; ok {
		pkg = p
	}
	return platform.InstallHint(pm, pkg)
}

// Partition splits toolList into installed and missing tools.
func Partition(toolList []Tool) (found, missing []Tool) {
	for _, t := range toolList {
		if t.IsInstalled() {
			found = append(found, t)
		} else {
			missing = append(missing, t)
		}
	}
	return found, missing
}

// ReportTo prints which tools are available and how to install the rest.
// It returns the number of missing tools.
func ReportTo(w io.Writer, toolList []Tool, pm platform.PackageManager) int {
	found, missing := Partition(toolList)

	for _, t := range found {
		platform.PrintOK(w, fmt.Sprintf("%s (%s) found as %s", t.Name, t.Purpose, t.Resolve()))
	}
	for _, t := range missing {
		platform.PrintWarn(w, fmt.Sprintf("%s not found; used by %s", t.Name, strings.Join(t.Modules, ", ")))
		fmt.Fprintf(w, "         %s\n", platform.Dim(t.InstallHint(pm)))
	}
	return len(missing)
}
