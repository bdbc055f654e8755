package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
)

// taskFileEntry is one task in a file given to the save command
type taskFileEntry struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

// SaveCommand handles the save command, which replaces the selected user's list with a file's tasks
type SaveCommand struct {
	app *App
}

// NewSaveCommand creates a new save command handler
func NewSaveCommand(app *App) *SaveCommand {
	return &SaveCommand{app: app}
}

// Execute reads a JSON array of tasks from the file in args[0] ("-" for stdin) and saves it
func (c *SaveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.NewInvalidInputError("file", args, "a JSON file of tasks is required")
	}

	tasks, err := c.readTasks(args[0])
	if err != nil {
		return err
	}
	if err := c.app.taskValidator.ValidateTasks(tasks); err != nil {
		return err
	}

	return c.app.withSession(ctx, func(ctx context.Context, s *session) error {
		if _, err := s.requireSelection(); err != nil {
			return err
		}
		s.sync.SaveAllTasks(ctx, tasks)
		printTasks(c.app.out, s.state())
		return nil
	})
}

func (c *SaveCommand) readTasks(path string) ([]domain.Task, error) {
	var r io.Reader = c.app.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewInvalidInputError("file", path, err.Error())
		}
		defer f.Close()
		r = f
	}

	var entries []taskFileEntry
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&entries); err != nil {
		return nil, errors.NewInvalidInputError("file", path, fmt.Sprintf("not a JSON array of tasks: %v", err))
	}

	tasks := make([]domain.Task, 0, len(entries))
	for _, entry := range entries {
		tasks = append(tasks, domain.Task{ID: entry.ID, Label: entry.Label, IsDone: entry.IsDone})
	}
	return tasks, nil
}
