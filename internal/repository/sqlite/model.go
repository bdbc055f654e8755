package sqlite

import "time"

// ViewStateRow is a row of the view_states table
type ViewStateRow struct {
	Profile      string
	SelectedUser string
	Candidate    string
	LastError    string
	UpdatedAt    time.Time
}

// UserRow is a row of the known_users table
type UserRow struct {
	Position int
	Name     string
}

// TaskRow is a row of the mirrored_tasks table
type TaskRow struct {
	Position int
	TaskID   int64
	Label    string
	IsDone   bool
}
