package sqlite

import (
	"context"
	"database/sql"
	"time"

	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
	"todo-sync/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// SQLiteRepository stores view states in a SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance and applies pending migrations
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// LoadState returns the saved view state for a profile
func (r *SQLiteRepository) LoadState(ctx context.Context, profile string) (domain.ViewState, error) {
	row, err := QuerySingle(ctx, r.db, `
	SELECT profile, selected_user, candidate, last_error, updated_at
	FROM view_states
	WHERE profile = ?`, ScanViewState, "view state", profile, profile)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return toDomainState(nil, nil, nil), nil
		}
		return domain.ViewState{}, err
	}

	users, err := QueryMultiple(ctx, r.db, `
	SELECT position, name
	FROM known_users
	WHERE profile = ?
	ORDER BY position ASC`, ScanUsers, "known users", profile)
	if err != nil {
		return domain.ViewState{}, err
	}

	tasks, err := QueryMultiple(ctx, r.db, `
	SELECT position, task_id, label, is_done
	FROM mirrored_tasks
	WHERE profile = ?
	ORDER BY position ASC`, ScanTasks, "mirrored tasks", profile)
	if err != nil {
		return domain.ViewState{}, err
	}

	return toDomainState(row, users, tasks), nil
}

// SaveState replaces the saved view state for a profile in a single transaction
func (r *SQLiteRepository) SaveState(ctx context.Context, profile string, state domain.ViewState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := Execute(ctx, tx, "save view state", `
	INSERT INTO view_states (profile, selected_user, candidate, last_error, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(profile) DO UPDATE SET
		selected_user = excluded.selected_user,
		candidate = excluded.candidate,
		last_error = excluded.last_error,
		updated_at = excluded.updated_at`,
		profile, state.SelectedUser, state.Candidate, state.Error, FormatTimeForDB(timeNow())); err != nil {
		return err
	}

	if err := Execute(ctx, tx, "clear known users", `DELETE FROM known_users WHERE profile = ?`, profile); err != nil {
		return err
	}
	for _, u := range fromDomainUsers(state.Users) {
		if err := Execute(ctx, tx, "insert known user",
			`INSERT INTO known_users (profile, position, name) VALUES (?, ?, ?)`,
			profile, u.Position, u.Name); err != nil {
			return err
		}
	}

	if err := Execute(ctx, tx, "clear mirrored tasks", `DELETE FROM mirrored_tasks WHERE profile = ?`, profile); err != nil {
		return err
	}
	for _, t := range fromDomainTasks(state.Tasks) {
		if err := Execute(ctx, tx, "insert mirrored task",
			`INSERT INTO mirrored_tasks (profile, position, task_id, label, is_done) VALUES (?, ?, ?, ?, ?)`,
			profile, t.Position, t.TaskID, t.Label, BoolToDB(t.IsDone)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
