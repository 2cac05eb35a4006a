package modules

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/config"
	"github.com/zenik/zenik/internal/platform"
)

const (
	alphanumeric    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordSymbols = "!@#$%^&*-_+="
)

// GeneratePassword returns a password of length characters drawn uniformly
// from letters and digits, plus symbols when withSymbols is set.
func GeneratePassword(length int, withSymbols bool) (string, error) {
	charset := alphanumeric
	if withSymbols {
		charset += passwordSymbols
	}
	limit := big.NewInt(int64(len(charset)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}

// Entropy estimates password strength in bits from the character classes
// present: lowercase 26, uppercase 26, digits 10, anything else 32.
func Entropy(pw string) float64 {
	if pw == "" {
		return 0
	}
	var lower, upper, digit, other bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			other = true
		}
	}

	pool := 0
	if lower {
		pool += 26
	}
	if upper {
		pool += 26
	}
	if digit {
		pool += 10
	}
	if other {
		pool += 32
	}
	pool = max(pool, 1)
	return float64(len([]rune(pw))) * math.Log2(float64(pool))
}

// Strength labels an entropy estimate.
func Strength(bits float64) string {
	switch {
	case bits < 40:
		return "WEAK"
	case bits < 60:
		return "OK"
	case bits < 80:
		return "STRONG"
	default:
		return "VERY STRONG"
	}
}

func strengthColor(label string) string {
	switch label {
	case "WEAK":
		return platform.BoldRed(label)
	case "OK":
		return platform.Yellow(label)
	case "STRONG":
		return platform.Green(label)
	default:
		return platform.BoldGreen(label)
	}
}

func passwordTool(d Deps) error {
	settings := d.Settings()

	raw, err := d.askDefault("Length", strconv.Itoa(settings.PasswordLength))
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(raw)
	if err != nil {
		length = settings.PasswordLength
	}
	length = config.ClampPasswordLength(length)

	def := "n"
	if settings.PasswordSymbols {
		def = "y"
	}
	raw, err = d.askDefault("Include symbols? (y/n)", def)
	if err != nil {
		return err
	}
	symbols := settings.PasswordSymbols
	switch strings.ToLower(raw) {
	case "y", "yes":
		symbols = true
	case "n", "no":
		symbols = false
	}

	pw, err := GeneratePassword(length, symbols)
	if err != nil {
		return err
	}
	bits := Entropy(pw)
	label := Strength(bits)

	fmt.Fprintf(d.Out, "\n  %s\n\n", platform.Bold(pw))
	platform.PrintKV(d.Out, "Strength", strengthColor(label))
	platform.PrintKV(d.Out, "Entropy", fmt.Sprintf("%.1f bits", bits))

	d.Log.Info("password generated",
		zap.Int("length", length),
		zap.Bool("symbols", symbols),
		zap.String("strength", label))
	return nil
}
