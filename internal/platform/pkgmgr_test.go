package platform

import (
	"strings"
	"testing"
)

func TestInstallHint(t *testing.T) {
	tests := []struct {
		pm   PackageManager
		want string
	}{
		{PMBrew, "brew install traceroute"},
		{PMApk, "apk add traceroute"},
		{PMWinget, "winget install traceroute"},
		{PMApt, "apt-get install -y traceroute"},
		{PMNone, "install traceroute with your system package manager"},
	}
	for _, tt := range tests {
		if got := InstallHint(tt.pm, "traceroute"); !strings.HasSuffix(got, tt.want) {
			t.Errorf("InstallHint(%v) = %q, want suffix %q", tt.pm, got, tt.want)
		}
	}
}

func TestPackageManagerString(t *testing.T) {
	if got := PMApk.String(); got != "apk" {
		t.Errorf("PMApk.String() = %q, want apk", got)
	}
	if got := PackageManager(42).String(); got != "PackageManager(42)" {
		t.Errorf("String() = %q", got)
	}
}
