package cli

import (
	"context"
)

// UsersCommand handles the users command
type UsersCommand struct {
	app *App
}

// NewUsersCommand creates a new users command handler
func NewUsersCommand(app *App) *UsersCommand {
	return &UsersCommand{app: app}
}

// Execute fetches and prints the known users
func (c *UsersCommand) Execute(ctx context.Context, args []string) error {
	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		s.sync.ListUsers(ctx)
		printUsers(c.app.out, s.state())
		return nil
	})
}
