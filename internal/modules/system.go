package modules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zenik/zenik/internal/platform"
)

// logTailLines is how many activity log lines the log viewer shows.
const logTailLines = 40

func sysinfoTool(d Deps) error {
	env := d.Env()
	host, _ := os.Hostname()
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}

	fmt.Fprintln(d.Out)
	platform.PrintKV(d.Out, "OS", env.OS())
	platform.PrintKV(d.Out, "Arch", env.Arch())
	if env.Kernel() != "" {
		platform.PrintKV(d.Out, "Kernel", env.Kernel())
	}
	platform.PrintKV(d.Out, "Host", valueOr(host, "unknown"))
	platform.PrintKV(d.Out, "User", valueOr(user, "unknown"))
	platform.PrintKV(d.Out, "CPUs", fmt.Sprint(runtime.NumCPU()))
	platform.PrintKV(d.Out, "Go", runtime.Version())
	if m, ok := readMemory(); ok {
		platform.PrintKV(d.Out, "Memory", fmt.Sprintf("%s free of %s", formatBytes(m.free), formatBytes(m.total)))
		platform.PrintKV(d.Out, "Uptime", m.uptime.Round(time.Minute).String())
	}

	d.Log.Info("viewed system info")
	return nil
}

// memory is a snapshot of host memory and uptime.
type memory struct {
	total, free uint64
	uptime      time.Duration
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func environmentTool(d Deps) error {
	out, err := yaml.Marshal(d.Env().Report())
	if err != nil {
		return fmt.Errorf("encode environment: %w", err)
	}
	printBlock(d.Out, string(out))
	return nil
}

func notesTool(d Deps) error {
	note, err := d.ask("Note")
	if err != nil {
		return err
	}
	if err := AppendNote(d.NotesPath, time.Now(), note); err != nil {
		return err
	}
	platform.PrintOK(d.Out, "Saved to "+d.NotesPath)
	d.Log.Info("saved note")
	return nil
}

// AppendNote appends a timestamped note line to the file at path.
func AppendNote(path string, at time.Time, note string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open notes: %w", err)
	}
	_, werr := fmt.Fprintf(f, "[%s] %s\n", at.Format(time.DateTime), strings.TrimSpace(note))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

func logsTool(d Deps) error {
	if d.LogPath == "" {
		platform.PrintInfo(d.Out, "Activity logging is disabled.")
		return nil
	}
	lines, err := platform.TailLines(d.LogPath, logTailLines)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(lines) == 0) {
		platform.PrintInfo(d.Out, "No activity logged yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read activity log: %w", err)
	}

	fmt.Fprintln(d.Out)
	for _, l := range lines {
		fmt.Fprintln(d.Out, platform.Dim(l))
	}
	d.Log.Debug("viewed activity log", zap.Int("lines", len(lines)))
	return nil
}
