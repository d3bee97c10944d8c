//go:build !ebiten

package app

import "log/slog"

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// NewGame reports that the ebiten build tag is required for GUI support.
func NewGame(Config, *slog.Logger) (*Game, error) { return nil, ErrNoGUI }

// WatchConfig is a no-op placeholder.
func (g *Game) WatchConfig(<-chan Config) {}

// Run always reports that the GUI build tag is missing.
func (g *Game) Run() error { return ErrNoGUI }
