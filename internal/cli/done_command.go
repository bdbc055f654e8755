package cli

import (
	"context"
	"strconv"

	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
)

// DoneCommand handles the done and undo commands
type DoneCommand struct {
	app  *App
	done bool
}

// NewDoneCommand creates a handler that marks a task as done
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app, done: true}
}

// NewUndoCommand creates a handler that marks a task as not done
func NewUndoCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app, done: false}
}

// Execute sets the done flag of one task and saves the whole list
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
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

		tasks, found := domain.SetTaskDone(s.state().Tasks, id, c.done)
		if !found {
			return errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
		}
		s.sync.SaveAllTasks(ctx, tasks)
		printTasks(c.app.out, s.state())
		return nil
	})
}
