package platform

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// Stream runs a command, copying its stdout and stderr to w as they are
// produced. Long-running tools such as traceroute show progress this way.
func Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}

// Output executes a command and returns its stdout as a trimmed string.
func Output(name string, args ...string) (string, error) {
	return OutputContext(context.Background(), name, args...)
}

// OutputContext is like Output but kills the command when ctx is done.
// When stdout is empty, stderr is returned instead so callers can show
// the tool's own diagnostics.
func OutputContext(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	if out.Len() == 0 {
		return strings.TrimSpace(errOut.String()), err
	}
	return strings.TrimSpace(out.String()), err
}

// Exists checks if a command exists in PATH.
func Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// FirstExisting returns the first command name found in PATH, or "".
func FirstExisting(names ...string) string {
	for _, n := range names {
		if Exists(n) {
			return n
		}
	}
	return ""
}
