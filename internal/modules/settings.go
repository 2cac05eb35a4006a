package modules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/config"
	"github.com/zenik/zenik/internal/platform"
)

// ErrReadOnlySettings means no settings file can be written.
var ErrReadOnlySettings = errors.New("settings cannot be saved")

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func settingsTool(d Deps) error {
	cur := d.Settings()

	platform.PrintSection(d.Out, "Password defaults")
	platform.PrintKV(d.Out, "Length", strconv.Itoa(cur.PasswordLength))
	platform.PrintKV(d.Out, "Symbols", strconv.FormatBool(cur.PasswordSymbols))
	fmt.Fprintln(d.Out)

	raw, err := d.askDefault(fmt.Sprintf("Length (%d-%d)", config.MinPasswordLength, config.MaxPasswordLength), strconv.Itoa(cur.PasswordLength))
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(raw)
	if err != nil || length < 0 {
		return fmt.Errorf("invalid length %q", raw)
	}
	length = config.ClampPasswordLength(length)

	raw, err = d.askDefault("Include symbols? (y/n)", yesNo(cur.PasswordSymbols))
	if err != nil {
		return err
	}
	var symbols bool
	switch strings.ToLower(raw) {
	case "y", "yes":
		symbols = true
	case "n", "no":
		symbols = false
	default:
		return fmt.Errorf("invalid answer %q", raw)
	}

	if length == cur.PasswordLength && symbols == cur.PasswordSymbols {
		platform.PrintInfo(d.Out, "No changes")
		return nil
	}
	if d.SavePassword == nil {
		return ErrReadOnlySettings
	}

	saved, err := d.SavePassword(length, symbols)
	if err != nil {
		return err
	}
	d.Log.Info("settings changed",
		zap.Int("password_length", saved.PasswordLength),
		zap.Bool("password_symbols", saved.PasswordSymbols),
		zap.Int("previous_length", cur.PasswordLength),
		zap.Bool("previous_symbols", cur.PasswordSymbols))
	platform.PrintOK(d.Out, fmt.Sprintf("Saved: length %d, symbols %t", saved.PasswordLength, saved.PasswordSymbols))
	return nil
}
