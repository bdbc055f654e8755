package domain

import "fmt"

// ViewState is a snapshot of everything the to-do screen shows.
type ViewState struct {
	// Candidate is the text typed into the new-task input.
	Candidate string
	// Tasks mirrors the selected user's tasks as last returned by the server.
	Tasks []Task
	// Users is the set of known user names.
	Users []User
	// SelectedUser is empty until a user is selected.
	SelectedUser string
	// Error is the most recent failure message, empty if none.
	Error string
}

// HasSelection reports whether a user is selected.
func (s ViewState) HasSelection() bool {
	return s.SelectedUser != ""
}

// HasError reports whether an error message is set.
func (s ViewState) HasError() bool {
	return s.Error != ""
}

// Clone returns a deep copy of the state.
func (s ViewState) Clone() ViewState {
	s.Tasks = CloneTasks(s.Tasks)
	s.Users = CloneUsers(s.Users)
	return s
}

// ItemsLeft returns the footer text for the task list.
func (s ViewState) ItemsLeft() string {
	return ItemsLeft(len(s.Tasks))
}

// ItemsLeft formats a task count the way the list footer shows it.
func ItemsLeft(n int) string {
	if n == 1 {
		return fmt.Sprintf("%d item left", n)
	}
	return fmt.Sprintf("%d items left", n)
}
