package modules

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/platform"
)

// HashAlgorithm selects the digest computed by HashFile.
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "SHA256"
	MD5    HashAlgorithm = "MD5"
)

func (a HashAlgorithm) new() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", string(a))
	}
}

// HashFile returns the hex digest of the file at path.
func HashFile(path string, algo HashAlgorithm) (string, error) {
	h, err := algo.new()
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashTool(d Deps) error {
	path, err := d.ask("File path")
	if err != nil {
		return err
	}
	path = strings.Trim(path, `"'`)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("file not found: %s", path)
	}

	choice, err := d.askDefault("Algorithm (1=SHA256, 2=MD5)", "1")
	if err != nil {
		return err
	}
	algo := SHA256
	if choice == "2" || strings.EqualFold(choice, "md5") {
		algo = MD5
	}

	sum, err := HashFile(path, algo)
	if err != nil {
		d.Log.Warn("file hash failed", zap.String("path", path), zap.Error(err))
		return err
	}

	fmt.Fprintln(d.Out)
	platform.PrintKV(d.Out, string(algo), sum)
	d.Log.Info("file hash computed", zap.String("algorithm", string(algo)), zap.String("path", path))
	return nil
}
