package modules

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenik/zenik/internal/config"
	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

var (
	desktopEnv     = platform.NewEnvironment(platform.KindDesktop, false, platform.CapGPUAccess, platform.CapGameController, platform.CapNativeShell)
	mobileShellEnv = platform.NewEnvironment(platform.KindMobileConstrained, true, platform.CapNativeShell)
	mobileBareEnv  = platform.NewEnvironment(platform.KindMobileConstrained, true)
)

// testDeps returns Deps reading input and writing into the returned buffer.
func testDeps(t *testing.T, input string) (Deps, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	dir := t.TempDir()
	return Deps{
		In:        bufio.NewReader(strings.NewReader(input)),
		Out:       &out,
		Env:       func() platform.Environment { return desktopEnv },
		LogPath:   filepath.Join(dir, "zenik.log"),
		NotesPath: filepath.Join(dir, NotesFile),
	}, &out
}

func TestRegister_NoConflicts(t *testing.T) {
	reg := feature.NewRegistry()
	d, _ := testDeps(t, "")
	require.NoError(t, Register(reg, d))

	want := []string{
		"password", "hash", "localip", "ping", "nslookup", "traceroute", "netconfig",
		"controller", "gpu",
		"sysinfo", "environment", "notes", "settings", "doctor", "logs",
	}
	if diff := cmp.Diff(want, reg.IDs()); diff != "" {
		t.Errorf("registered IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltin_Eligibility(t *testing.T) {
	reg := feature.NewRegistry()
	d, _ := testDeps(t, "")
	require.NoError(t, Register(reg, d))

	tests := []struct {
		name string
		env  platform.Environment
		want []string
	}{
		{
			name: "desktop",
			env:  desktopEnv,
			want: []string{"password", "hash", "localip", "ping", "nslookup", "traceroute", "netconfig", "controller", "gpu", "sysinfo", "environment", "notes", "settings", "doctor", "logs"},
		},
		{
			name: "mobile with shell",
			env:  mobileShellEnv,
			want: []string{"password", "hash", "localip", "ping", "sysinfo", "environment", "notes", "settings", "doctor", "logs"},
		},
		{
			name: "mobile without shell",
			env:  mobileBareEnv,
			want: []string{"password", "hash", "localip", "sysinfo", "environment", "notes", "settings", "doctor", "logs"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := feature.Resolve(tt.env, reg)
			if diff := cmp.Diff(tt.want, set.IDs()); diff != "" {
				t.Errorf("enabled IDs mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, set.HasCategory(feature.CategoryGaming) && tt.env.Constrained(),
				"constrained environments never show gaming modules")
		})
	}
}

func TestAsk_EmptyCancels(t *testing.T) {
	d, _ := testDeps(t, "\n")
	_, err := d.withDefaults().ask("Host")
	assert.ErrorIs(t, err, feature.ErrCancelled)
}

func TestAsk_EOFCancels(t *testing.T) {
	d, _ := testDeps(t, "")
	_, err := d.withDefaults().askDefault("Length", "16")
	assert.ErrorIs(t, err, feature.ErrCancelled)
}

func TestAskDefault(t *testing.T) {
	d, out := testDeps(t, "\n 24 \n")
	d = d.withDefaults()

	got, err := d.askDefault("Length", "16")
	require.NoError(t, err)
	assert.Equal(t, "16", got)

	got, err = d.askDefault("Length", "16")
	require.NoError(t, err)
	assert.Equal(t, "24", got)
	assert.Contains(t, out.String(), "Length (default 16): ")
}

func TestEnvironmentTool(t *testing.T) {
	d, out := testDeps(t, "")
	require.NoError(t, environmentTool(d.withDefaults()))

	assert.Contains(t, out.String(), "platform: desktop")
	assert.Contains(t, out.String(), "constrained: false")
	assert.Contains(t, out.String(), "- gpu_access")
}

func TestNotesTool(t *testing.T) {
	d, out := testDeps(t, "buy milk\n")
	d = d.withDefaults()
	require.NoError(t, notesTool(d))

	data, err := os.ReadFile(d.NotesPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "] buy milk\n"))
	assert.Contains(t, out.String(), "[OK] Saved")
}

func TestNotesTool_EmptyCancels(t *testing.T) {
	d, _ := testDeps(t, "\n")
	d = d.withDefaults()
	assert.ErrorIs(t, notesTool(d), feature.ErrCancelled)
	_, err := os.Stat(d.NotesPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLogsTool(t *testing.T) {
	d, out := testDeps(t, "")
	d = d.withDefaults()

	require.NoError(t, logsTool(d))
	assert.Contains(t, out.String(), "No activity logged yet.")

	out.Reset()
	require.NoError(t, os.WriteFile(d.LogPath, []byte(`{"msg":"start"}`+"\n"+`{"msg":"invoking module"}`+"\n"), 0o644))
	require.NoError(t, logsTool(d))
	assert.Contains(t, out.String(), `{"msg":"invoking module"}`)
}

func TestSysinfoTool(t *testing.T) {
	d, out := testDeps(t, "")
	require.NoError(t, sysinfoTool(d.withDefaults()))
	assert.Contains(t, out.String(), "CPUs:")
	assert.Contains(t, out.String(), "Go:")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{8 << 30, "8.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultsUseConfig(t *testing.T) {
	d := Deps{}.withDefaults()
	assert.Equal(t, config.Default(), d.Settings())
	assert.NotNil(t, d.Log)
}

func TestDoctorTool_ShowsRevocation(t *testing.T) {
	d, out := testDeps(t, "")
	d.Probed = desktopEnv
	d.Env = func() platform.Environment { return desktopEnv.Without(platform.CapGameController) }

	require.NoError(t, doctorTool(d.withDefaults()))
	assert.Contains(t, out.String(), "Health Check")
	assert.Contains(t, out.String(), platform.CapGameController.String()+" detected but revoked")
}

func TestSettingsTool_SavesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	store, err := config.Open(path)
	require.NoError(t, err)

	d, out := testDeps(t, "100\nn\n")
	d.Settings = store.Current
	d.SavePassword = store.SavePassword

	require.NoError(t, settingsTool(d.withDefaults()))
	assert.Contains(t, out.String(), "Saved: length 64, symbols false")

	reopened, err := config.Open(path)
	require.NoError(t, err)
	assert.Equal(t, config.MaxPasswordLength, reopened.Current().PasswordLength)
	assert.False(t, reopened.Current().PasswordSymbols)
}

func TestSettingsTool(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantOut string
		saved   bool
	}{
		{"defaults keep settings", "\n\n", nil, "No changes", false},
		{"bad length", "abc\n", nil, "", false},
		{"bad answer", "20\nmaybe\n", nil, "", false},
		{"cancelled", "", feature.ErrCancelled, "", false},
		{"change", "20\n\n", nil, "Saved: length 20, symbols true", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, out := testDeps(t, tt.input)
			saved := false
			d.SavePassword = func(length int, symbols bool) (config.Config, error) {
				saved = true
				return config.Config{PasswordLength: length, PasswordSymbols: symbols}, nil
			}

			err := settingsTool(d.withDefaults())
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantOut == "":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Contains(t, out.String(), tt.wantOut)
			}
			assert.Equal(t, tt.saved, saved)
		})
	}
}

func TestSettingsTool_ReadOnly(t *testing.T) {
	d, _ := testDeps(t, "20\ny\n")
	assert.ErrorIs(t, settingsTool(d.withDefaults()), ErrReadOnlySettings)
}
