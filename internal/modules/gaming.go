package modules

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/platform"
)

const gpuTimeout = 20 * time.Second

// controllerPatterns match Linux joystick and gamepad device nodes.
var controllerPatterns = []string{
	"/dev/input/js*",
	"/dev/input/by-id/*-joystick",
	"/dev/input/by-id/*-event-joystick",
}

// drmCardPatterns match DRM render cards.
var drmCardPatterns = []string{"/sys/class/drm/card[0-9]", "/sys/class/drm/card[0-9][0-9]"}

// globAll returns the sorted, de-duplicated matches of patterns.
func globAll(patterns ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out
}

func controllerTool(d Deps) error {
	if runtime.GOOS != "linux" {
		platform.PrintInfo(d.Out, fmt.Sprintf("Controllers on %s are managed by the OS; open its game controller settings to test them.", runtime.GOOS))
		return nil
	}

	devices := globAll(controllerPatterns...)
	d.Log.Info("controller scan", zap.Int("found", len(devices)))
	fmt.Fprintln(d.Out)
	if len(devices) == 0 {
		platform.PrintInfo(d.Out, "No game controllers detected.")
		return nil
	}
	for _, dev := range devices {
		platform.PrintOK(d.Out, dev)
	}
	return nil
}

// gpuCommand returns the adapter listing command for goos, if any.
func gpuCommand(goos string) (string, []string) {
	switch goos {
	case "windows":
		return "powershell", []string{"-NoProfile", "-Command", "Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty Name"}
	case "darwin":
		return "system_profiler", []string{"SPDisplaysDataType"}
	default:
		if platform.Exists("lspci") {
			return "lspci", []string{"-mm"}
		}
		return "", nil
	}
}

func gpuTool(d Deps) error {
	d.Log.Info("viewed gpu info")

	if runtime.GOOS == "linux" {
		cards := globAll(drmCardPatterns...)
		fmt.Fprintln(d.Out)
		for _, c := range cards {
			platform.PrintKV(d.Out, "DRM card", filepath.Base(c))
		}
		if len(cards) == 0 {
			platform.PrintInfo(d.Out, "No DRM cards found.")
		}
	}

	name, args := gpuCommand(runtime.GOOS)
	if name == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), gpuTimeout)
	defer cancel()

	out, err := platform.OutputContext(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if name == "lspci" {
		out = filterDisplayDevices(out)
	}
	if out != "" {
		printBlock(d.Out, out)
	}
	return nil
}

// filterDisplayDevices keeps the lspci lines describing display
// controllers.
func filterDisplayDevices(out string) string {
	var keep []string
	for _, line := range strings.Split(out, "\n") {
		l := strings.ToLower(line)
		if strings.Contains(l, "vga") || strings.Contains(l, "3d controller") || strings.Contains(l, "display controller") {
			keep = append(keep, strings.TrimSpace(line))
		}
	}
	return strings.Join(keep, "\n")
}
