package cli

import (
	"context"

	"todo-sync/internal/errors"
)

// SelectCommand handles the select command
type SelectCommand struct {
	app *App
}

// NewSelectCommand creates a new select command handler
func NewSelectCommand(app *App) *SelectCommand {
	return &SelectCommand{app: app}
}

// Execute selects a user and loads their tasks
func (c *SelectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("user", args, "exactly one user name is required")
	}
	name := args[0]
	if err := c.app.userValidator.ValidateUserName(name); err != nil {
		return err
	}

	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		s.sync.SelectUser(ctx, name)
		printTasks(c.app.out, s.state())
		return nil
	})
}
