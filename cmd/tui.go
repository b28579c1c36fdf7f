package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okhester/ludex/internal/repositories"
	"github.com/okhester/ludex/internal/shared"
	"github.com/okhester/ludex/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for catalog consolidation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ludex-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	legacy := repositories.NewLegacyGameRepository(db)
	engine := r.buildEngine(db)

	model := ui.NewModel(ctx, legacy, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
