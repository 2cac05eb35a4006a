// Package modules holds the built-in feature modules shown in the menu.
//
// Every module is a plain feature.Module whose handler closes over Deps.
// Handlers prompt on Deps.In, print to Deps.Out and return
// feature.ErrCancelled when the user leaves a required prompt empty.
package modules

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/config"
	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

// NotesFile is the default notes file name.
const NotesFile = "notes.txt"

// Deps is what module handlers need from the outside world.
type Deps struct {
	In  *bufio.Reader
	Out io.Writer
	Log *zap.Logger
	// Settings returns the current user settings.
	Settings func() config.Config
	// SavePassword persists password defaults. Nil makes settings read-only.
	SavePassword func(length int, symbols bool) (config.Config, error)
	// Env returns the environment the menu is resolving against.
	Env func() platform.Environment
	// Probed is the environment found at startup, before revocations.
	Probed     platform.Environment
	// ConfigPath returns the settings file in use, or "" for defaults.
	ConfigPath func() string
	LogPath    string
	NotesPath  string
}

func (d Deps) withDefaults() Deps {
	if d.In == nil {
		d.In = bufio.NewReader(os.Stdin)
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Settings == nil {
		d.Settings = config.Default
	}
	if d.Env == nil {
		d.Env = platform.Detect
	}
	if d.ConfigPath == nil {
		d.ConfigPath = func() string { return "" }
	}
	if d.Probed == (platform.Environment{}) {
		d.Probed = d.Env()
	}
	if d.NotesPath == "" {
		d.NotesPath = filepath.Join(config.Dir(), NotesFile)
	}
	return d
}

// Builtin returns the built-in modules in menu order.
func Builtin(d Deps) []feature.Module {
	d = d.withDefaults()
	return []feature.Module{
		{
			ID: "password", Name: "Password Generator", Description: "random password with strength rating",
			Category: feature.CategoryTools, Eligible: feature.Always,
			Run: func() error { return passwordTool(d) },
		},
		{
			ID: "hash", Name: "File Hash", Description: "SHA256 or MD5 of a file",
			Category: feature.CategoryTools, Eligible: feature.Always,
			Run: func() error { return hashTool(d) },
		},
		{
			ID: "localip", Name: "Local IP", Description: "address of the outbound interface",
			Category: feature.CategoryTools, Eligible: feature.Always,
			Run: func() error { return localIPTool(d) },
		},
		{
			ID: "ping", Name: "Ping", Description: "reachability of a host",
			Category: feature.CategoryTools, Eligible: feature.RequiresCapability(platform.CapNativeShell),
			Run: func() error { return pingTool(d) },
		},
		{
			ID: "nslookup", Name: "DNS Lookup", Description: "resolve a hostname",
			Category: feature.CategoryTools, Eligible: shellTool,
			Run: func() error { return nslookupTool(d) },
		},
		{
			ID: "traceroute", Name: "Traceroute", Description: "route to a host",
			Category: feature.CategoryTools, Eligible: shellTool,
			Run: func() error { return tracerouteTool(d) },
		},
		{
			ID: "netconfig", Name: "Network Config", Description: "interfaces and addresses",
			Category: feature.CategoryTools, Eligible: feature.RequiresKind(platform.KindDesktop),
			Run: func() error { return netconfigTool(d) },
		},
		{
			ID: "controller", Name: "Game Controllers", Description: "connected gamepads and joysticks",
			Category: feature.CategoryGaming, Eligible: feature.RequiresCapability(platform.CapGameController),
			Run: func() error { return controllerTool(d) },
		},
		{
			ID: "gpu", Name: "GPU Info", Description: "graphics adapters",
			Category: feature.CategoryGaming, Eligible: feature.RequiresCapability(platform.CapGPUAccess),
			Run: func() error { return gpuTool(d) },
		},
		{
			ID: "sysinfo", Name: "System Info", Description: "OS, kernel, CPU and memory",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return sysinfoTool(d) },
		},
		{
			ID: "environment", Name: "Environment", Description: "detected platform and capabilities",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return environmentTool(d) },
		},
		{
			ID: "notes", Name: "Notes", Description: "append a timestamped note",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return notesTool(d) },
		},
		{
			ID: "settings", Name: "Settings", Description: "password defaults saved to config.json",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return settingsTool(d) },
		},
		{
			ID: "doctor", Name: "Health Check", Description: "platform, settings and host tools",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return doctorTool(d) },
		},
		{
			ID: "logs", Name: "Activity Log", Description: "recent log entries",
			Category: feature.CategorySystem, Eligible: feature.Always,
			Run: func() error { return logsTool(d) },
		},
	}
}

// shellTool gates modules that drive host networking binaries.
var shellTool = feature.All(feature.Unconstrained, feature.RequiresCapability(platform.CapNativeShell))

// Register adds the built-in modules to reg.
func Register(reg *feature.Registry, d Deps) error {
	if err := reg.RegisterAll(Builtin(d)...); err != nil {
		return fmt.Errorf("register builtin modules: %w", err)
	}
	return nil
}

// ask prompts for a required value. Empty input or end of input cancels.
func (d Deps) ask(label string) (string, error) {
	platform.PrintPrompt(d.Out, label+": ")
	line, err := platform.ReadLine(d.In)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", feature.ErrCancelled
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	if line == "" {
		return "", feature.ErrCancelled
	}
	return line, nil
}

// askDefault prompts for an optional value; empty input yields def.
func (d Deps) askDefault(label, def string) (string, error) {
	platform.PrintPrompt(d.Out, fmt.Sprintf("%s (default %s): ", label, def))
	line, err := platform.ReadLine(d.In)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", feature.ErrCancelled
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// printBlock writes multi-line tool output indented under a blank line.
func printBlock(w io.Writer, text string) {
	fmt.Fprintln(w)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
