package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-sync/internal/errors"
)

func TestNewCommandRegistry(t *testing.T) {
	env := setupTestApp(t)

	registry := NewCommandRegistry(env.app)

	assert.NotNil(t, registry)
	assert.Equal(t, []string{
		"add", "clear", "clear-error", "delete", "done", "save",
		"select", "status", "tasks", "ui", "undo", "users",
	}, registry.Names())
}

func TestCommandRegistry_Execute(t *testing.T) {
	env := setupTestApp(t)
	env.api.Seed("ana", "a")
	registry := NewCommandRegistry(env.app)
	ctx := context.Background()

	t.Run("executes users command", func(t *testing.T) {
		assert.NoError(t, registry.Execute(ctx, "users", nil))
	})

	t.Run("executes select command", func(t *testing.T) {
		require.NoError(t, registry.Execute(ctx, "select", []string{"ana"}))
		assert.Equal(t, "ana", env.saved(t).SelectedUser)
	})

	t.Run("unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "start", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

type recordingCommand struct {
	args []string
}

func (c *recordingCommand) Execute(ctx context.Context, args []string) error {
	c.args = args
	return nil
}

func TestCommandRegistry_Register(t *testing.T) {
	registry := &CommandRegistry{commands: make(map[string]Command)}
	cmd := &recordingCommand{}

	registry.Register("echo", cmd)
	require.NoError(t, registry.Execute(context.Background(), "echo", []string{"a", "b"}))

	assert.Equal(t, []string{"a", "b"}, cmd.args)
	assert.Equal(t, "usage: todo <echo> [args]", registry.GetUsage())
}
