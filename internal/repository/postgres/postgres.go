// Package postgres stores view states in PostgreSQL so several machines can share one profile.
package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS view_states (
		profile TEXT PRIMARY KEY,
		selected_user TEXT NOT NULL DEFAULT '',
		candidate TEXT NOT NULL DEFAULT '',
		last_error TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS known_users (
		profile TEXT NOT NULL REFERENCES view_states(profile) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (profile, position)
	)`,
	`CREATE TABLE IF NOT EXISTS mirrored_tasks (
		profile TEXT NOT NULL REFERENCES view_states(profile) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		task_id BIGINT NOT NULL,
		label TEXT NOT NULL,
		is_done BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (profile, position)
	)`,
}

// Storage is a pgx connection pool holding view states.
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to the database described by constr and creates the schema if needed.
func New(ctx context.Context, constr string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, constr)
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}
	s := &Storage{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return errors.NewDatabaseError("create schema", err)
		}
	}
	return nil
}

// Close closes the pool.
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// LoadState returns the saved state for profile, or a zero state.
func (s *Storage) LoadState(ctx context.Context, profile string) (domain.ViewState, error) {
	state := domain.ViewState{
		Users: []domain.User{},
		Tasks: []domain.Task{},
	}

	err := s.pool.QueryRow(ctx, `
		SELECT selected_user, candidate, last_error
		FROM view_states
		WHERE profile = $1`, profile).Scan(&state.SelectedUser, &state.Candidate, &state.Error)
	if err == pgx.ErrNoRows {
		return state, nil
	}
	if err != nil {
		return domain.ViewState{}, errors.NewDatabaseError("load view state", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT name FROM known_users
		WHERE profile = $1
		ORDER BY position`, profile)
	if err != nil {
		return domain.ViewState{}, errors.NewDatabaseError("load known users", err)
	}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Name); err != nil {
			rows.Close()
			return domain.ViewState{}, errors.NewDatabaseError("scan known user", err)
		}
		state.Users = append(state.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.ViewState{}, errors.NewDatabaseError("load known users", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT task_id, label, is_done FROM mirrored_tasks
		WHERE profile = $1
		ORDER BY position`, profile)
	if err != nil {
		return domain.ViewState{}, errors.NewDatabaseError("load mirrored tasks", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Label, &t.IsDone); err != nil {
			return domain.ViewState{}, errors.NewDatabaseError("scan mirrored task", err)
		}
		state.Tasks = append(state.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return domain.ViewState{}, errors.NewDatabaseError("load mirrored tasks", err)
	}

	return state, nil
}

// SaveState replaces the saved state for profile in one transaction.
func (s *Storage) SaveState(ctx context.Context, profile string, state domain.ViewState) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.NewDatabaseError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO view_states (profile, selected_user, candidate, last_error, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile) DO UPDATE SET
			selected_user = EXCLUDED.selected_user,
			candidate = EXCLUDED.candidate,
			last_error = EXCLUDED.last_error,
			updated_at = EXCLUDED.updated_at`,
		profile, state.SelectedUser, state.Candidate, state.Error, time.Now().UTC())
	if err != nil {
		return errors.NewDatabaseError("save view state", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM known_users WHERE profile = $1`, profile); err != nil {
		return errors.NewDatabaseError("clear known users", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM mirrored_tasks WHERE profile = $1`, profile); err != nil {
		return errors.NewDatabaseError("clear mirrored tasks", err)
	}

	batch := &pgx.Batch{}
	for i, u := range state.Users {
		batch.Queue(`INSERT INTO known_users (profile, position, name) VALUES ($1, $2, $3)`, profile, i, u.Name)
	}
	for i, t := range state.Tasks {
		batch.Queue(`INSERT INTO mirrored_tasks (profile, position, task_id, label, is_done) VALUES ($1, $2, $3, $4, $5)`,
			profile, i, t.ID, t.Label, t.IsDone)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return errors.NewDatabaseError("insert snapshot rows", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.NewDatabaseError("commit transaction", err)
	}
	return nil
}

// RedactDSN hides the password of a connection string for logging.
func RedactDSN(constr string) string {
	cfg, err := pgx.ParseConfig(constr)
	if err != nil {
		return "<invalid dsn>"
	}
	var b strings.Builder
	b.WriteString("postgres://")
	if cfg.User != "" {
		b.WriteString(cfg.User)
		if cfg.Password != "" {
			b.WriteString(":***")
		}
		b.WriteString("@")
	}
	b.WriteString(cfg.Host)
	if cfg.Port != 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(int(cfg.Port)))
	}
	b.WriteString("/")
	b.WriteString(cfg.Database)
	return b.String()
}
