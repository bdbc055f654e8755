package cli

import (
	"context"
	"fmt"

	"todo-sync/internal/errors"
)

// ClearCommand handles the clear command, which deletes every task of the selected user
type ClearCommand struct {
	app *App
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{app: app}
}

// Execute deletes all tasks and reports each delete that failed
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		if _, err := s.requireSelection(); err != nil {
			return err
		}

		results := s.sync.DeleteAllTasks(ctx)
		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
				fmt.Fprintf(c.app.errOut, "could not delete %d (%s): %s\n", result.Task.ID, result.Task.Label, errors.GetUserMessage(result.Err))
			}
		}
		if len(results) > 0 {
			fmt.Fprintf(c.app.out, "Deleted %d of %d tasks\n", len(results)-failed, len(results))
		}
		printTasks(c.app.out, s.state())
		return nil
	})
}
