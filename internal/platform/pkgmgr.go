package platform

import (
	"fmt"
	"runtime"
)

// PackageManager represents a system package manager.
type PackageManager int

const (
	PMNone   PackageManager = iota
	PMBrew                  // macOS (Homebrew)
	PMApt                   // Debian, Ubuntu, Termux-like
	PMDnf                   // Fedora, RHEL, CentOS Stream
	PMPacman                // Arch, Manjaro
	PMApk                   // Alpine, iSH
	PMWinget                // Windows
)

// DetectPackageManager returns the detected system package manager.
func DetectPackageManager() PackageManager {
	switch {
	case runtime.GOOS == "darwin" && Exists("brew"):
		return PMBrew
	case runtime.GOOS == "windows" && Exists("winget"):
		return PMWinget
	case Exists("apk"):
		return PMApk
	case Exists("apt-get"):
		return PMApt
	case Exists("dnf"):
		return PMDnf
	case Exists("pacman"):
		return PMPacman
	}
	return PMNone
}

// InstallHint returns the command a user would run to install pkg.
func InstallHint(pm PackageManager, pkg string) string {
	sudo := ""
	if Exists("sudo") {
		sudo = "sudo "
	}
	switch pm {
	case PMBrew:
		return "brew install " + pkg
	case PMApt:
		return sudo + "apt-get install -y " + pkg
	case PMDnf:
		return sudo + "dnf install -y " + pkg
	case PMPacman:
		return sudo + "pacman -S --noconfirm " + pkg
	case PMApk:
		return "apk add " + pkg
	case PMWinget:
		return "winget install " + pkg
	default:
		return "install " + pkg + " with your system package manager"
	}
}

// String returns the package manager name.
func (pm PackageManager) String() string {
	names := []string{"none", "brew", "apt", "dnf", "pacman", "apk", "winget"}
	if int(pm) >= 0 && int(pm) < len(names) {
		return names[pm]
	}
	return fmt.Sprintf("PackageManager(%d)", pm)
}
