package cli

import (
	"context"
)

// StatusCommand prints the saved view state without contacting the API
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	state, err := c.app.repo.LoadState(ctx, c.app.config.Store.Profile)
	if err != nil {
		return err
	}
	printStatus(c.app.out, state)
	return nil
}

// ClearErrorCommand removes the saved error message
type ClearErrorCommand struct {
	app *App
}

// NewClearErrorCommand creates a new clear-error command handler
func NewClearErrorCommand(app *App) *ClearErrorCommand {
	return &ClearErrorCommand{app: app}
}

// Execute runs the clear-error command
func (c *ClearErrorCommand) Execute(ctx context.Context, args []string) error {
	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		s.sync.ClearError()
		return nil
	})
}
