package platform

import (
	"bytes"
	"os"
	"testing"
)

func withColor(t *testing.T, on bool) {
	t.Helper()
	prev := colorEnabled
	SetColor(on)
	t.Cleanup(func() { SetColor(prev) })
}

func TestPaint(t *testing.T) {
	withColor(t, true)
	if got, want := paint("hello", sgrRed), "\033[31mhello\033[0m"; got != want {
		t.Errorf("paint(red) = %q, want %q", got, want)
	}
	if got := paint("hello"); got != "hello" {
		t.Errorf("paint with no codes = %q, want plain", got)
	}

	SetColor(false)
	if got := paint("hello", sgrRed); got != "hello" {
		t.Errorf("paint with colour off = %q, want plain", got)
	}
}

func TestColorFunctions(t *testing.T) {
	withColor(t, true)

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"Bold", Bold, "\033[1mtext\033[0m"},
		{"Dim", Dim, "\033[2mtext\033[0m"},
		{"Green", Green, "\033[32mtext\033[0m"},
		{"Yellow", Yellow, "\033[33mtext\033[0m"},
		{"BoldRed", BoldRed, "\033[1m\033[31mtext\033[0m"},
		{"BoldCyan", BoldCyan, "\033[1m\033[36mtext\033[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn("text"); got != tt.want {
				t.Errorf("%s(text) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestColorWanted(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name     string
		noColor  string
		termName string
	}{
		{"no color", "1", "xterm-256color"},
		{"dumb terminal", "", "dumb"},
		{"regular file", "", "xterm-256color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ColorWanted(f, tt.noColor, tt.termName) {
				t.Error("expected colour off")
			}
		})
	}
}

func TestPrintHelpersPlain(t *testing.T) {
	withColor(t, false)

	tests := []struct {
		name string
		fn   func(*bytes.Buffer)
		want string
	}{
		{"banner", func(b *bytes.Buffer) { PrintBanner(b, "ZENIK") }, "\n=== ZENIK ===\n"},
		{"section", func(b *bytes.Buffer) { PrintSection(b, "Tools") }, "\n--- Tools ---\n"},
		{"ok", func(b *bytes.Buffer) { PrintOK(b, "done") }, "  [OK] done\n"},
		{"fail", func(b *bytes.Buffer) { PrintFail(b, "boom") }, "  [FAIL] boom\n"},
		{"warn", func(b *bytes.Buffer) { PrintWarn(b, "careful") }, "  [WARN] careful\n"},
		{"info", func(b *bytes.Buffer) { PrintInfo(b, "fyi") }, "  [INFO] fyi\n"},
		{"prompt", func(b *bytes.Buffer) { PrintPrompt(b, "> ") }, "> "},
		{"item no desc", func(b *bytes.Buffer) { PrintMenuItem(b, 0, "Exit", "") }, "  [0] Exit\n"},
		{"kv", func(b *bytes.Buffer) { PrintKV(b, "OS", "linux") }, "  OS:            linux\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fn(&buf)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusTagsColored(t *testing.T) {
	withColor(t, true)

	var buf bytes.Buffer
	PrintOK(&buf, "ready")
	PrintInfo(&buf, "note")
	want := "  \033[1m\033[32m[OK]\033[0m ready\n  [INFO] note\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
