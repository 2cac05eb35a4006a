package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the process environment overrides.
type Env struct {
	// Platform forces the detected platform kind (desktop, mobile, unknown).
	Platform   string `env:"ZENIK_PLATFORM"`
	ConfigPath string `env:"ZENIK_CONFIG"`
	LogFile    string `env:"ZENIK_LOG_FILE"`
	LogLevel   string `env:"ZENIK_LOG_LEVEL" envDefault:"info"`
	// NoColor and Accessible only check presence; any value counts.
	NoColor    string `env:"NO_COLOR"`
	Accessible string `env:"ACCESSIBLE"`
}

// Plain reports whether the environment asks for plain line-mode output.
func (e Env) Plain() bool {
	return e.NoColor != "" || e.Accessible != ""
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
