package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/trail-tui/internal/engine"
	"github.com/DaanHessen/trail-tui/internal/store"
	"github.com/DaanHessen/trail-tui/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, db *store.DB, tuning engine.Tuning, cfg util.Config, version string) error {
	m, err := initialModel(ctx, db, tuning, cfg, version)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
