package ui

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-sync/internal/config"
	"todo-sync/internal/fakeapi"
	"todo-sync/internal/playground"
	"todo-sync/internal/viewmodel"
)

func newTestModel(t *testing.T) (*model, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New()
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	client, err := playground.New(config.APIConfig{BaseURL: ts.URL + fakeapi.BasePath, Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return newModel(context.Background(), viewmodel.New(client, nil, viewmodel.DefaultOptions())), api
}

// press sends a key and runs the resulting command to completion
func press(t *testing.T, m *model, key tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(key)
	if cmd == nil {
		return nil
	}
	msg := cmd()
	m.Update(msg)
	return msg
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func start(t *testing.T, m *model) {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestInitLoadsUsers(t *testing.T) {
	m, api := newTestModel(t)
	api.AddUser("ana")
	api.AddUser("bob")

	start(t, m)

	assert.Len(t, m.sync.State().Users, 2)
	view := m.View()
	assert.Contains(t, view, "ana")
	assert.Contains(t, view, "bob")
	assert.Contains(t, view, "0 items left")
}

func TestSelectUserWithEnter(t *testing.T) {
	m, api := newTestModel(t)
	api.AddUser("ana")
	api.Seed("bob", "buy milk")
	start(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, opDoneMsg{op: "select"}, msg)
	state := m.sync.State()
	assert.Equal(t, "bob", state.SelectedUser)
	assert.Equal(t, paneTasks, m.focus)
	view := m.View()
	assert.Contains(t, view, "Tasks for bob")
	assert.Contains(t, view, "[ ] buy milk")
	assert.Contains(t, view, "1 item left")
}

func TestTypeAndSubmitTask(t *testing.T) {
	m, api := newTestModel(t)
	api.AddUser("ana")
	start(t, m)
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.focus = paneInput
	press(t, m, runes("buy"))
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	press(t, m, runes("milkk"))
	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "buy milk", m.sync.State().Candidate)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	state := m.sync.State()
	assert.Empty(t, state.Candidate)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "buy milk", state.Tasks[0].Label)
	assert.Equal(t, state.Tasks, api.Tasks("ana"))
}

func TestQuitIgnoredWhileTyping(t *testing.T) {
	m, _ := newTestModel(t)
	m.focus = paneInput

	_, cmd := m.Update(runes("q"))

	assert.Nil(t, cmd)
	assert.Equal(t, "q", m.sync.State().Candidate)
	assert.False(t, m.quitting)
}

func TestToggleDeleteAndDeleteAll(t *testing.T) {
	m, api := newTestModel(t)
	api.Seed("ana", "a", "b", "c")
	start(t, m)
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.sync.State().Tasks, 3)

	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, api.Tasks("ana")[0].IsDone)
	assert.Contains(t, m.View(), "[x] a")

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, runes("x"))
	assert.Len(t, api.Tasks("ana"), 2)
	assert.NotContains(t, m.View(), "] b")

	api.FailNext(http.MethodDelete, "/todos/", http.StatusInternalServerError)
	press(t, m, runes("D"))
	state := m.sync.State()
	assert.Len(t, state.Tasks, 2, "failed delete-all keeps the list")
	assert.Contains(t, m.View(), "! Error deleting all tasks: 500 - ")

	press(t, m, runes("e"))
	assert.NotContains(t, m.View(), "! Error")

	press(t, m, runes("l"))
	require.Len(t, m.sync.State().Tasks, 1, "reload picks up the delete that did succeed")

	press(t, m, runes("D"))
	assert.Empty(t, m.sync.State().Tasks)
	assert.Empty(t, api.Tasks("ana"))
	assert.Contains(t, m.View(), "0 items left")
}

func TestFocusCycles(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneTasks, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneInput, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneUsers, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, paneInput, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, paneTasks, m.focus)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestPendingIndicator(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.Init()
	assert.Contains(t, m.View(), "working...")

	m.Update(cmd())
	assert.NotContains(t, m.View(), "working...")
}

func TestRunRequiresTTY(t *testing.T) {
	m, _ := newTestModel(t)
	err := Run(context.Background(), m.sync, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
