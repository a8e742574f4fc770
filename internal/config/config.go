// Package config resolves the simulation tuning tables. The built-in
// defaults in the engine package are authoritative; an optional JSON
// document can override individual tables for balancing experiments.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/DaanHessen/trail-tui/internal/engine"
)

// Load returns the tuning bundle. With an empty path the built-in defaults
// are used as-is. A present but unreadable or unparsable document fails soft
// back to the defaults; a document that parses but leaves an enum uncovered
// is a hard error, because the kernel assumes complete tables.
func Load(path string) (engine.Tuning, error) {
	tuning := engine.DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("tuning document unreadable, using built-in defaults", "path", path, "err", err)
		return engine.DefaultTuning(), nil
	}
	if err := json.Unmarshal(data, &tuning); err != nil {
		slog.Warn("tuning document malformed, using built-in defaults", "path", path, "err", err)
		return engine.DefaultTuning(), nil
	}
	if err := tuning.Validate(); err != nil {
		return engine.Tuning{}, errors.Wrapf(err, "tuning document %s", path)
	}
	slog.Info("tuning document loaded", "path", path)
	return tuning, nil
}
