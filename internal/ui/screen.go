// Package ui is the interactive to-do screen.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todo-sync/internal/domain"
	"todo-sync/internal/viewmodel"
)

type pane int

const (
	paneUsers pane = iota
	paneTasks
	paneInput
)

// opDoneMsg is sent when a synchronizer operation started by the screen has finished
type opDoneMsg struct {
	op string
}

// Run shows the screen until the user quits. in and out must be a terminal.
func Run(ctx context.Context, sync *viewmodel.Synchronizer, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return fmt.Errorf("ui requires a TTY")
	}
	program := tea.NewProgram(newModel(ctx, sync), tea.WithAltScreen(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	_, err := program.Run()
	return err
}

// IsTTY reports whether w is a character device
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

type model struct {
	ctx        context.Context
	sync       *viewmodel.Synchronizer
	focus      pane
	userCursor int
	taskCursor int
	pending    int
	quitting   bool
}

func newModel(ctx context.Context, sync *viewmodel.Synchronizer) *model {
	return &model{ctx: ctx, sync: sync, focus: paneUsers}
}

// Init loads the user list, as the page does when it first opens
func (m *model) Init() tea.Cmd {
	return m.run("users", func(ctx context.Context) { m.sync.ListUsers(ctx) })
}

// run wraps a synchronizer operation in a command so the screen keeps responding while it blocks
func (m *model) run(op string, fn func(ctx context.Context)) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return opDoneMsg{op: op}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.clampCursors(m.sync.State())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil
	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		return m, nil
	}

	if m.focus == paneInput {
		return m.handleInputKey(msg)
	}

	state := m.sync.State()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "e":
		m.sync.ClearError()
		return m, nil
	case "r":
		return m, m.run("users", func(ctx context.Context) { m.sync.ListUsers(ctx) })
	case "i", "a":
		m.focus = paneInput
		return m, nil
	}

	if m.focus == paneUsers {
		return m.handleUsersKey(msg, state)
	}
	return m.handleTasksKey(msg, state)
}

func (m *model) handleUsersKey(msg tea.KeyMsg, state domain.ViewState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.userCursor < len(state.Users)-1 {
			m.userCursor++
		}
	case "enter":
		if m.userCursor < len(state.Users) {
			name := state.Users[m.userCursor].Name
			m.taskCursor = 0
			m.focus = paneTasks
			return m, m.run("select", func(ctx context.Context) { m.sync.SelectUser(ctx, name) })
		}
	}
	return m, nil
}

func (m *model) handleTasksKey(msg tea.KeyMsg, state domain.ViewState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(state.Tasks)-1 {
			m.taskCursor++
		}
	case "x", "delete":
		if m.taskCursor < len(state.Tasks) {
			id := state.Tasks[m.taskCursor].ID
			return m, m.run("delete", func(ctx context.Context) { m.sync.DeleteTask(ctx, id) })
		}
	case " ":
		if m.taskCursor < len(state.Tasks) {
			task := state.Tasks[m.taskCursor]
			tasks, _ := domain.SetTaskDone(state.Tasks, task.ID, !task.IsDone)
			return m, m.run("save", func(ctx context.Context) { m.sync.SaveAllTasks(ctx, tasks) })
		}
	case "D":
		return m, m.run("delete-all", func(ctx context.Context) { m.sync.DeleteAllTasks(ctx) })
	case "l":
		if state.HasSelection() {
			name := state.SelectedUser
			return m, m.run("load", func(ctx context.Context) { m.sync.LoadTasks(ctx, name) })
		}
	}
	return m, nil
}

func (m *model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidate := m.sync.State().Candidate
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.run("add", func(ctx context.Context) { m.sync.SubmitCandidate(ctx) })
	case tea.KeyEsc:
		m.focus = paneTasks
	case tea.KeyBackspace:
		if r := []rune(candidate); len(r) > 0 {
			m.sync.SetCandidate(string(r[:len(r)-1]))
		}
	case tea.KeySpace:
		m.sync.SetCandidate(candidate + " ")
	case tea.KeyRunes:
		m.sync.SetCandidate(candidate + string(msg.Runes))
	}
	return m, nil
}

func (m *model) clampCursors(state domain.ViewState) {
	if m.userCursor >= len(state.Users) {
		m.userCursor = max(len(state.Users)-1, 0)
	}
	if m.taskCursor >= len(state.Tasks) {
		m.taskCursor = max(len(state.Tasks)-1, 0)
	}
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	state := m.sync.State()
	m.clampCursors(state)

	var b strings.Builder
	b.WriteString("To Do List\n\n")
	if state.HasError() {
		fmt.Fprintf(&b, "! %s\n\n", state.Error)
	}

	b.WriteString(m.header("Users", paneUsers))
	if len(state.Users) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, user := range state.Users {
		b.WriteString(cursor(m.focus == paneUsers && i == m.userCursor))
		if user.Name == state.SelectedUser {
			b.WriteString("* ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(user.Name + "\n")
	}
	b.WriteString("\n")

	title := "Tasks"
	if state.HasSelection() {
		title = "Tasks for " + state.SelectedUser
	}
	b.WriteString(m.header(title, paneTasks))
	for i, task := range state.Tasks {
		mark := " "
		if task.IsDone {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s[%s] %s\n", cursor(m.focus == paneTasks && i == m.taskCursor), mark, task.Label)
	}
	b.WriteString(state.ItemsLeft() + "\n\n")

	b.WriteString(m.header("New task", paneInput))
	placeholder := state.Candidate
	if placeholder == "" && m.focus != paneInput {
		placeholder = "What needs to be done?"
	}
	fmt.Fprintf(&b, "  %s", placeholder)
	if m.focus == paneInput {
		b.WriteString("_")
	}
	b.WriteString("\n\n")

	if m.pending > 0 {
		b.WriteString("working...\n")
	}
	b.WriteString("tab focus | enter select/add | x delete | space done | D delete all | r users | e clear error | q quit\n")
	return b.String()
}

func (m *model) header(title string, p pane) string {
	if m.focus == p {
		return "> " + title + "\n"
	}
	return "  " + title + "\n"
}

func cursor(on bool) string {
	if on {
		return "> "
	}
	return "  "
}
