package cli

import (
	"context"

	"todo-sync/internal/ui"
)

// UICommand opens the interactive screen
type UICommand struct {
	app *App
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app}
}

// Execute runs the screen and saves the state it leaves behind.
// Failures are shown on screen, so they do not fail the command.
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	err := c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		return ui.Run(ctx, s.sync, c.app.in, c.app.out)
	})

	if c.app.errorHandler.IsOperationError(err) {
		return nil
	}
	return err
}
