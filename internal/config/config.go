// Package config loads user settings from config.json and keeps the
// capability revocation list current while the menu runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/platform"
)

const (
	// AppDir is the directory name under the user config dir.
	AppDir = "zenik"
	// FileName is the settings file looked up in the config dir.
	FileName = "config.json"

	DefaultPasswordLength = 16
	MinPasswordLength     = 8
	MaxPasswordLength     = 64
)

// Config holds user settings.
type Config struct {
	PasswordLength  int    `mapstructure:"password_length"`
	PasswordSymbols bool   `mapstructure:"password_symbols"`
	LogFile         string `mapstructure:"log_file"`
	// RevokeCapabilities names capabilities the menu must treat as absent,
	// e.g. "gpu_access". Unknown names are ignored.
	RevokeCapabilities []string `mapstructure:"revoke_capabilities"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PasswordLength:  DefaultPasswordLength,
		PasswordSymbols: true,
	}
}

// Dir returns the per-user config directory, falling back to the working
// directory when the OS does not report one.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, AppDir)
}

// Revoked parses RevokeCapabilities, dropping names that are not
// capabilities.
func (c Config) Revoked() []platform.Capability {
	var caps []platform.Capability
	for _, name := range c.RevokeCapabilities {
		if cp, err := platform.ParseCapability(name); err == nil {
			caps = append(caps, cp)
		}
	}
	return caps
}

// Store holds the current settings. Reads are safe from any goroutine.
type Store struct {
	v     *viper.Viper
	path  string
	found bool
	log   *zap.Logger
	cur   atomic.Pointer[Config]
}

// Open reads settings from path, or from FileName in Dir when path is
// empty. A missing file is not an error; defaults apply. Settings can also
// come from ZENIK_* variables (ZENIK_PASSWORD_LENGTH and so on).
func Open(path string) (*Store, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("password_length", def.PasswordLength)
	v.SetDefault("password_symbols", def.PasswordSymbols)
	v.SetDefault("log_file", "")
	v.SetDefault("revoke_capabilities", []string{})

	v.SetConfigType("json")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	}

	v.SetEnvPrefix("ZENIK")
	v.AutomaticEnv()

	s := &Store{v: v, path: path, log: zap.NewNop()}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		s.found = true
		s.path = v.ConfigFileUsed()
	}

	cfg, err := s.decode()
	if err != nil {
		return nil, err
	}
	s.cur.Store(&cfg)
	return s, nil
}

// Path returns the settings file in use, or "" when defaults apply.
func (s *Store) Path() string {
	if !s.found {
		return ""
	}
	return s.path
}

// Current returns the latest settings.
func (s *Store) Current() Config {
	return *s.cur.Load()
}

// Watch reloads settings whenever the file changes, reporting reloads to
// log. It does nothing when no file was found.
func (s *Store) Watch(log *zap.Logger) {
	if log != nil {
		s.log = log
	}
	if !s.found {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		s.reload()
	})
	s.v.WatchConfig()
}

// reload swaps in freshly decoded settings. A file that fails to decode
// keeps the previous settings.
func (s *Store) reload() {
	cfg, err := s.decode()
	if err != nil {
		s.log.Warn("config reload failed", zap.Error(err))
		return
	}
	s.cur.Store(&cfg)
	s.log.Info("config reloaded",
		zap.String("path", s.path),
		zap.Strings("revoke_capabilities", cfg.RevokeCapabilities))
}

func (s *Store) decode() (Config, error) {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.PasswordLength = ClampPasswordLength(cfg.PasswordLength)
	return cfg, nil
}

// SavePassword writes the password defaults to the settings file and
// returns the updated settings. Other keys already in the file are kept.
// With no file yet, it creates FileName in Dir (or the path given to Open).
func (s *Store) SavePassword(length int, symbols bool) (Config, error) {
	target := s.path
	if target == "" {
		target = filepath.Join(Dir(), FileName)
	}

	out := viper.New()
	out.SetConfigType("json")
	if s.found {
		out.SetConfigFile(target)
		if err := out.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	out.Set("password_length", ClampPasswordLength(length))
	out.Set("password_symbols", symbols)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Config{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := out.WriteConfigAs(target); err != nil {
		return Config{}, fmt.Errorf("write config: %w", err)
	}

	s.v.SetConfigFile(target)
	if err := s.v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	s.path, s.found = target, true

	cfg, err := s.decode()
	if err != nil {
		return Config{}, err
	}
	s.cur.Store(&cfg)
	s.log.Info("settings saved",
		zap.String("path", target),
		zap.Int("password_length", cfg.PasswordLength),
		zap.Bool("password_symbols", cfg.PasswordSymbols))
	return cfg, nil
}

// ClampPasswordLength bounds n to the supported password lengths.
func ClampPasswordLength(n int) int {
	return max(MinPasswordLength, min(n, MaxPasswordLength))
}

// EnvSource returns a function yielding base minus the currently revoked
// capabilities. Revocation only ever removes capabilities.
func (s *Store) EnvSource(base platform.Environment) func() platform.Environment {
	return func() platform.Environment {
		revoked := s.Current().Revoked()
		if len(revoked) == 0 {
			return base
		}
		return base.Without(revoked...)
	}
}
