package util

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText    string `env:"TRAIL_SEED"`
	DSN         string `env:"DATABASE_URL"`
	SQLitePath  string `env:"TRAIL_SQLITE_PATH" envDefault:"trail.db"`
	TuningPath  string `env:"TRAIL_TUNING"`
	Theme       string `env:"TRAIL_THEME" envDefault:"catppuccin"`
	TextDensity string `env:"TRAIL_DENSITY" envDefault:"standard"` // concise|standard|rich
	Mode        string `env:"TRAIL_MODE" envDefault:"standard"`
	Policy      string `env:"TRAIL_POLICY" envDefault:"moderate"`
}

// FromEnv builds a Config from the process environment. Flags may overwrite
// individual fields afterwards.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}
