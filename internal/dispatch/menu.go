package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

// Title is printed at the top of the line-mode menu.
var Title = "ZENIK TOOL"

// Present writes the menu for the current enabled set and returns that set.
// Items are numbered in the order of [feature.EnabledSet.Ordered]; empty
// categories get no heading.
func (d *Dispatcher) Present(w io.Writer) feature.EnabledSet {
	set := d.Enabled()
	Render(w, set)
	return set
}

// Render writes the numbered menu for set.
func Render(w io.Writer, set feature.EnabledSet) {
	env := set.Environment()
	platform.PrintBanner(w, Title)
	fmt.Fprintf(w, "  %s\n", platform.Dim(fmt.Sprintf("mode: %s", modeLabel(env))))

	n := 1
	for _, c := range set.Categories() {
		platform.PrintSection(w, c.Title())
		for _, m := range set.InCategory(c) {
			platform.PrintMenuItem(w, n, m.Name, m.Description)
			n++
		}
	}
	if set.Len() == 0 {
		fmt.Fprintln(w)
		platform.PrintWarn(w, "No modules are available on this platform.")
	}
	fmt.Fprintln(w)
	platform.PrintMenuItem(w, 0, "Exit", "")
}

func modeLabel(env platform.Environment) string {
	switch env.Kind() {
	case platform.KindDesktop:
		return "DESKTOP"
	case platform.KindMobileConstrained:
		return "MOBILE (constrained)"
	default:
		return "UNKNOWN (constrained)"
	}
}

// Report writes the outcome of a Select call for the user.
func Report(w io.Writer, res Result, err error) {
	var serr *SelectionError
	switch {
	case errors.As(err, &serr):
		msg := fmt.Sprintf("Selection not available: %s", serr.ID)
		if serr.Registered {
			msg += " (not supported on this platform)"
		}
		if len(serr.Suggestions) > 0 {
			msg += fmt.Sprintf(". Did you mean %s?", strings.Join(serr.Suggestions, ", "))
		}
		platform.PrintWarn(w, msg)
	case err != nil:
		platform.PrintFail(w, err.Error())
	case res.Status == feature.StatusSuccess:
		platform.PrintOK(w, fmt.Sprintf("%s completed", res.Name))
	case res.Status == feature.StatusCancelled:
		platform.PrintInfo(w, fmt.Sprintf("%s cancelled", res.Name))
	default:
		platform.PrintFail(w, fmt.Sprintf("%s failed: %v", res.Name, res.Err))
	}
}

var (
	// quitWords end the loop.
	quitWords = map[string]bool{"0": true, "q": true, "quit": true, "exit": true}
	// cancelWords abandon the pending selection without invoking anything.
	cancelWords = map[string]bool{"c": true, "cancel": true}
)

// Loop runs the line-mode menu until the user quits, in is exhausted, or
// ctx is done. Each turn re-renders the menu so environment changes show up
// immediately. An empty line, "c" or "cancel" is a no-op.
//
// If in is a *bufio.Reader it is used directly, so modules prompting on the
// same reader see every byte the menu did not consume.
func (d *Dispatcher) Loop(ctx context.Context, in io.Reader, out io.Writer) error {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	for {
		if err := ctx.Err(); err != nil {
			d.Exit()
			return err
		}

		set := d.Present(out)
		platform.PrintPrompt(out, "\n> ")
		input, err := platform.ReadLine(br)
		if err != nil {
			d.Exit()
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		word := strings.ToLower(input)
		if input == "" || cancelWords[word] {
			continue
		}
		if quitWords[word] {
			d.Exit()
			return nil
		}

		res, err := d.Select(ResolveInput(set, input))
		Report(out, res, err)
	}
}

// ResolveInput maps what the user typed to a module identifier. A number
// picks the n-th item of the rendered menu; anything else is taken as an
// identifier. Out-of-range numbers are returned unchanged and fail
// selection.
func ResolveInput(set feature.EnabledSet, input string) string {
	n, err := strconv.Atoi(input)
	if err != nil {
		return strings.ToLower(input)
	}
	ordered := set.Ordered()
	if n < 1 || n > len(ordered) {
		return input
	}
	return ordered[n-1].ID
}
