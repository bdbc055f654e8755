package cli

import (
	"context"

	"todo-sync/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes one task of the selected user
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("task_id", args, "exactly one task id is required")
	}
	id, err := c.app.taskValidator.ParseTaskID(args[0])
	if err != nil {
		return err
	}

	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		if _, err := s.requireSelection(); err != nil {
			return err
		}
		s.sync.DeleteTask(ctx, id)
		printTasks(c.app.out, s.state())
		return nil
	})
}
