package cli

import (
	"context"
)

// TasksCommand handles the tasks command
type TasksCommand struct {
	app *App
}

// NewTasksCommand creates a new tasks command handler
func NewTasksCommand(app *App) *TasksCommand {
	return &TasksCommand{app: app}
}

// Execute reloads and prints the selected user's tasks
func (c *TasksCommand) Execute(ctx context.Context, args []string) error {
	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		user, err := s.requireSelection()
		if err != nil {
			return err
		}
		s.sync.LoadTasks(ctx, user)
		printTasks(c.app.out, s.state())
		return nil
	})
}
