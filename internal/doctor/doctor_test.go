package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zenik/zenik/internal/platform"
)

func TestCheckPlatform(t *testing.T) {
	tests := []struct {
		name     string
		env      platform.Environment
		warnings int
		want     string
	}{
		{"desktop", platform.NewEnvironment(platform.KindDesktop, false), 0, "Classified as desktop"},
		{"mobile", platform.NewEnvironment(platform.KindMobileConstrained, true), 0, "mobile (constrained)"},
		{"unknown", platform.NewEnvironment(platform.KindUnknown, true), 1, "ZENIK_PLATFORM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			issues, warnings := checkPlatform(&buf, tt.env)
			if issues != 0 || warnings != tt.warnings {
				t.Errorf("checkPlatform() = (%d, %d), want (0, %d)", issues, warnings, tt.warnings)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestCheckCapabilities_Revoked(t *testing.T) {
	probed := platform.NewEnvironment(platform.KindDesktop, false, platform.CapGPUAccess, platform.CapNativeShell)
	effective := probed.Without(platform.CapGPUAccess)

	var buf bytes.Buffer
	_, warnings := checkCapabilities(&buf, probed, effective)
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
	out := buf.String()
	if !strings.Contains(out, platform.CapGPUAccess.String()+" detected but revoked") {
		t.Errorf("expected revoked GPU line, got:\n%s", out)
	}
	if !strings.Contains(out, platform.CapGameController.String()+" not detected") {
		t.Errorf("expected undetected controller line, got:\n%s", out)
	}
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		issues int
	}{
		{"defaults", "", 0},
		{"present", path, 0},
		{"vanished", filepath.Join(dir, "gone.json"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, _ := checkConfig(&bytes.Buffer{}, tt.path)
			if issues != tt.issues {
				t.Errorf("issues = %d, want %d", issues, tt.issues)
			}
		})
	}
}

func TestCheckLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zenik.log")
	if err := os.WriteFile(path, []byte("line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, w := checkLog(&bytes.Buffer{}, path); w != 0 {
		t.Errorf("existing log: warnings = %d, want 0", w)
	}
	if _, w := checkLog(&bytes.Buffer{}, filepath.Join(dir, "missing.log")); w != 1 {
		t.Errorf("missing log: warnings = %d, want 1", w)
	}
	if _, w := checkLog(&bytes.Buffer{}, ""); w != 1 {
		t.Errorf("disabled log: warnings = %d, want 1", w)
	}
}

func TestRunTo_Summary(t *testing.T) {
	env := platform.NewEnvironment(platform.KindUnknown, true)

	var buf bytes.Buffer
	sum := RunTo(&buf, Inputs{
		Probed:         env,
		Effective:      env,
		GOOS:           "plan9",
		PackageManager: platform.PMBrew,
	})

	if sum.Healthy() {
		t.Error("expected warnings for unknown platform and disabled log")
	}
	if sum.Issues != 0 {
		t.Errorf("Issues = %d, want 0", sum.Issues)
	}
	out := buf.String()
	for _, want := range []string{"Health Check", "Summary", "Warnings:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
