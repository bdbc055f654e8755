package cli

import (
	"fmt"
	"io"

	"todo-sync/internal/domain"
)

// printTasks prints the selected user's task list followed by the footer
func printTasks(w io.Writer, state domain.ViewState) {
	if !state.HasSelection() {
		fmt.Fprintln(w, "No user selected")
		return
	}

	fmt.Fprintln(w, state.SelectedUser)
	if len(state.Tasks) == 0 {
		fmt.Fprintln(w, "  No tasks, add one with: todo add <label>")
	}
	for _, task := range state.Tasks {
		mark := " "
		if task.IsDone {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %4d  %s\n", mark, task.ID, task.Label)
	}
	fmt.Fprintln(w, state.ItemsLeft())
}

// printUsers prints the known users, marking the selected one
func printUsers(w io.Writer, state domain.ViewState) {
	if len(state.Users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}
	for _, user := range state.Users {
		marker := " "
		if user.Name == state.SelectedUser {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, user.Name)
	}
}

// printStatus prints the whole view state, error banner first
func printStatus(w io.Writer, state domain.ViewState) {
	if state.HasError() {
		fmt.Fprintf(w, "Error: %s\n", state.Error)
	}
	fmt.Fprintf(w, "Users: %d known\n", len(state.Users))
	if state.Candidate != "" {
		fmt.Fprintf(w, "Draft: %s\n", state.Candidate)
	}
	printTasks(w, state)
}
