package sqlite

import (
	"todo-sync/internal/domain"
)

// toDomainState assembles a domain view state from its stored rows.
func toDomainState(row *ViewStateRow, users []*UserRow, tasks []*TaskRow) domain.ViewState {
	state := domain.ViewState{
		Users: make([]domain.User, 0, len(users)),
		Tasks: make([]domain.Task, 0, len(tasks)),
	}
	if row != nil {
		state.SelectedUser = row.SelectedUser
		state.Candidate = row.Candidate
		state.Error = row.LastError
	}
	for _, u := range users {
		state.Users = append(state.Users, domain.User{Name: u.Name})
	}
	for _, t := range tasks {
		state.Tasks = append(state.Tasks, domain.Task{ID: t.TaskID, Label: t.Label, IsDone: t.IsDone})
	}
	return state
}

// fromDomainUsers converts users to rows numbered by list position.
func fromDomainUsers(users []domain.User) []UserRow {
	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{Position: i, Name: u.Name}
	}
	return rows
}

// fromDomainTasks converts tasks to rows numbered by list position.
func fromDomainTasks(tasks []domain.Task) []TaskRow {
	rows := make([]TaskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = TaskRow{Position: i, TaskID: t.ID, Label: t.Label, IsDone: t.IsDone}
	}
	return rows
}
