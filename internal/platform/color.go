package platform

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// colorEnabled controls whether ANSI escape codes are emitted.
var colorEnabled bool

// ColorWanted reports whether escape codes suit out. NO_COLOR
// (https://no-color.org/) and TERM=dumb turn colour off, as does any
// output that is not a terminal.
func ColorWanted(out *os.File, noColor, termName string) bool {
	if noColor != "" || termName == "dumb" {
		return false
	}
	return IsTerminal(out)
}

// SetColor turns escape codes on or off for every helper in this file.
func SetColor(on bool) { colorEnabled = on }

// InitColor decides colour for stdout from the process environment.
func InitColor() {
	SetColor(ColorWanted(os.Stdout, os.Getenv("NO_COLOR"), os.Getenv("TERM")))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type sgr string

const (
	sgrReset  sgr = "\033[0m"
	sgrBold   sgr = "\033[1m"
	sgrDim    sgr = "\033[2m"
	sgrRed    sgr = "\033[31m"
	sgrGreen  sgr = "\033[32m"
	sgrYellow sgr = "\033[33m"
	sgrCyan   sgr = "\033[36m"
)

// paint wraps s in the given codes when colour is on.
func paint(s string, codes ...sgr) string {
	if !colorEnabled || len(codes) == 0 {
		return s
	}
	var prefix string
	for _, c := range codes {
		prefix += string(c)
	}
	return prefix + s + string(sgrReset)
}

func Bold(s string) string      { return paint(s, sgrBold) }
func Dim(s string) string       { return paint(s, sgrDim) }
func Red(s string) string       { return paint(s, sgrRed) }
func Green(s string) string     { return paint(s, sgrGreen) }
func Yellow(s string) string    { return paint(s, sgrYellow) }
func Cyan(s string) string      { return paint(s, sgrCyan) }
func BoldRed(s string) string   { return paint(s, sgrBold, sgrRed) }
func BoldGreen(s string) string { return paint(s, sgrBold, sgrGreen) }
func BoldCyan(s string) string  { return paint(s, sgrBold, sgrCyan) }

// statusTag is the bracketed prefix of a one-line outcome.
type statusTag struct {
	label string
	codes []sgr
}

var (
	tagOK   = statusTag{"[OK]", []sgr{sgrBold, sgrGreen}}
	tagFail = statusTag{"[FAIL]", []sgr{sgrBold, sgrRed}}
	tagWarn = statusTag{"[WARN]", []sgr{sgrYellow}}
	tagInfo = statusTag{"[INFO]", nil}
)

func (t statusTag) println(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", paint(t.label, t.codes...), msg)
}

// PrintBanner prints "\n=== title ===\n".
func PrintBanner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", BoldCyan("=== "+title+" ==="))
}

// PrintSection prints "\n--- title ---\n".
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", Cyan("--- "+title+" ---"))
}

// PrintMenuItem prints a numbered menu entry.
func PrintMenuItem(w io.Writer, n int, name, desc string) {
	num := Bold(fmt.Sprintf("[%d]", n))
	if desc == "" {
		fmt.Fprintf(w, "  %s %s\n", num, name)
		return
	}
	fmt.Fprintf(w, "  %s %-22s %s\n", num, name, Dim(desc))
}

// PrintKV prints an aligned "  key: value" line.
func PrintKV(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %-14s %s\n", Bold(key+":"), value)
}

func PrintOK(w io.Writer, msg string)   { tagOK.println(w, msg) }
func PrintFail(w io.Writer, msg string) { tagFail.println(w, msg) }
func PrintWarn(w io.Writer, msg string) { tagWarn.println(w, msg) }
func PrintInfo(w io.Writer, msg string) { tagInfo.println(w, msg) }

// PrintPrompt prints a bold prompt without a trailing newline.
func PrintPrompt(w io.Writer, prompt string) {
	fmt.Fprint(w, Bold(prompt))
}
