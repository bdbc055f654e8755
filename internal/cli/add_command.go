package cli

import (
	"context"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute adds a task for the selected user. The arguments are joined into one label.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	label := strings.Join(args, " ")
	if err := c.app.taskValidator.ValidateLabel(label); err != nil {
		return err
	}

	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		if _, err := s.requireSelection(); err != nil {
			return err
		}
		s.sync.SetCandidate(label)
		s.sync.SubmitCandidate(ctx)
		printTasks(c.app.out, s.state())
		return nil
	})
}
