package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunescout/internal/shared"
	"github.com/desertthunder/tunescout/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and rating songs.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	if r.catalog == nil {
		return fmt.Errorf("%w: add Spotify credentials to %s", shared.ErrMissingCredentials, r.configPath)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunescout-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, r.store, r.session.UserID())
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
