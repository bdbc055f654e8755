package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "todo-sync/internal/errors"
)

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.NotNil(t, result)
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
}

func TestHandleNoRowsError(t *testing.T) {
	err := HandleNoRowsError(sql.ErrNoRows, "view state", "default")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	other := errors.New("other")
	assert.Equal(t, other, HandleNoRowsError(other, "view state", "default"))
}

func TestQuerySingle_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := QuerySingle(context.Background(), repo.db,
		`SELECT profile, selected_user, candidate, last_error, updated_at FROM view_states WHERE profile = ?`,
		ScanViewState, "view state", "missing", "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "view state not found: missing")
}

func TestQueryMultiple_BadQuery(t *testing.T) {
	repo := setupTestDB(t)

	_, err := QueryMultiple(context.Background(), repo.db, `SELECT nope FROM nowhere`, ScanUsers, "known users")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestExecute_WrapsFailure(t *testing.T) {
	repo := setupTestDB(t)

	err := Execute(context.Background(), repo.db, "broken statement", `INSERT INTO nowhere VALUES (1)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken statement")
}
