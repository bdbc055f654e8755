// Package viewmodel keeps the to-do view state in step with the playground API.
//
// Every operation performs its remote call first and only then updates local state, so the
// task list is always a copy of what the server last confirmed. Failures are never returned:
// they are turned into a single error message that the next failure overwrites.
package viewmodel

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
	"todo-sync/internal/playground"
)

// DeleteResult is the outcome of one delete issued by DeleteAllTasks
type DeleteResult struct {
	Task domain.Task
	Err  error
}

// Synchronizer owns the view state and the operations that change it.
// The mutex only makes concurrent calls memory-safe; operations are not serialized.
type Synchronizer struct {
	client playground.Client
	logger *log.Logger
	opts   Options

	mu       sync.Mutex
	state    domain.ViewState
	failures uint64
}

// New creates a synchronizer with an empty view state
func New(client playground.Client, logger *log.Logger, opts Options) *Synchronizer {
	return NewFromState(client, logger, opts, domain.ViewState{})
}

// NewFromState creates a synchronizer that resumes from a saved view state
func NewFromState(client playground.Client, logger *log.Logger, opts Options, state domain.ViewState) *Synchronizer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.DeleteMode == "" {
		opts.DeleteMode = DefaultOptions().DeleteMode
	}
	return &Synchronizer{
		client: client,
		logger: logger,
		opts:   opts,
		state:  state.Clone(),
	}
}

// State returns a copy of the current view state
func (s *Synchronizer) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Failures returns how many failures have been recorded so far.
// Callers compare it before and after an operation to learn whether that operation failed.
func (s *Synchronizer) Failures() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// ListUsers replaces the known users with the server's list
func (s *Synchronizer) ListUsers(ctx context.Context) {
	s.logger.Debug("listing users")

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		s.fail("Error fetching users: "+reason(err), err)
		return
	}

	s.mu.Lock()
	s.state.Users = domain.CloneUsers(users)
	s.mu.Unlock()
}

// SelectUser makes name the selected user and loads its tasks
func (s *Synchronizer) SelectUser(ctx context.Context, name string) {
	s.mu.Lock()
	s.state.SelectedUser = name
	s.mu.Unlock()

	s.LoadTasks(ctx, name)
}

// LoadTasks replaces the task list with the server's tasks for name
func (s *Synchronizer) LoadTasks(ctx context.Context, name string) {
	s.logger.Debug("loading tasks", "user", name)

	tasks, err := s.client.ListTasks(ctx, name)
	if err != nil {
		detail := reason(err)
		if errors.IsErrorType(err, errors.ErrorTypeHTTPStatus) {
			detail = "Error fetching tasks: " + detail
		}
		s.fail(fmt.Sprintf("Error fetching tasks for user %s: %s", name, detail), err)
		return
	}

	s.mu.Lock()
	s.state.Tasks = domain.CloneTasks(tasks)
	s.mu.Unlock()
}

// SaveAllTasks sends tasks as the selected user's full list. On success the local list becomes
// tasks exactly; the server's response is not used.
func (s *Synchronizer) SaveAllTasks(ctx context.Context, tasks []domain.Task) {
	user, ok := s.selection()
	if !ok {
		return
	}
	s.logger.Debug("saving tasks", "user", user, "count", len(tasks))

	if err := s.client.ReplaceTasks(ctx, user, tasks); err != nil {
		s.fail("Error updating tasks: "+reason(err), err)
		return
	}

	s.mu.Lock()
	s.state.Tasks = domain.CloneTasks(tasks)
	s.mu.Unlock()
}

// DeleteTask deletes one task and drops it from the list
func (s *Synchronizer) DeleteTask(ctx context.Context, id int64) {
	if _, ok := s.selection(); !ok {
		return
	}
	s.logger.Debug("deleting task", "id", id)

	if err := s.client.DeleteTask(ctx, id); err != nil {
		s.fail("Error deleting task: "+reason(err), err)
		return
	}

	s.mu.Lock()
	s.state.Tasks = domain.RemoveTaskByID(s.state.Tasks, id)
	s.mu.Unlock()
}

// DeleteAllTasks deletes every task in the list concurrently and returns one result per task,
// in list order. Server deletes that succeeded are never undone.
func (s *Synchronizer) DeleteAllTasks(ctx context.Context) []DeleteResult {
	if _, ok := s.selection(); !ok {
		return nil
	}

	s.mu.Lock()
	tasks := domain.CloneTasks(s.state.Tasks)
	s.mu.Unlock()
	s.logger.Debug("deleting all tasks", "count", len(tasks), "concurrency", s.opts.DeleteConcurrency, "mode", s.opts.DeleteMode)

	results := make([]DeleteResult, len(tasks))
	var g errgroup.Group
	if s.opts.DeleteConcurrency > 0 {
		g.SetLimit(s.opts.DeleteConcurrency)
	}
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = DeleteResult{Task: task, Err: s.client.DeleteTask(ctx, task.ID)}
			return nil
		})
	}
	g.Wait()

	var firstErr error
	deleted := make(map[int64]bool, len(results))
	for _, result := range results {
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		deleted[result.Task.ID] = true
	}

	if firstErr == nil {
		s.mu.Lock()
		s.state.Tasks = []domain.Task{}
		s.mu.Unlock()
		return results
	}

	if s.opts.DeleteMode == DeleteBestEffort && len(deleted) > 0 {
		s.mu.Lock()
		remaining := make([]domain.Task, 0, len(s.state.Tasks))
		for _, task := range s.state.Tasks {
			if !deleted[task.ID] {
				remaining = append(remaining, task)
			}
		}
		s.state.Tasks = remaining
		s.mu.Unlock()
	}
	s.fail("Error deleting all tasks: "+reason(firstErr), firstErr)
	return results
}

// AddTask creates a task for the selected user and appends the server's copy of it.
// Blank labels are ignored; other labels are sent as given.
func (s *Synchronizer) AddTask(ctx context.Context, label string) {
	user, ok := s.selection()
	if !ok || strings.TrimSpace(label) == "" {
		return
	}
	s.logger.Debug("adding task", "user", user)

	task, err := s.client.CreateTask(ctx, user, label)
	if err != nil {
		s.fail("Error adding new task: "+reason(err), err)
		return
	}

	s.mu.Lock()
	s.state.Tasks = append(domain.CloneTasks(s.state.Tasks), task)
	s.mu.Unlock()
}

// SetCandidate stores the text typed into the new-task input
func (s *Synchronizer) SetCandidate(text string) {
	s.mu.Lock()
	s.state.Candidate = text
	s.mu.Unlock()
}

// SubmitCandidate adds the candidate text as a task, then clears it whatever the outcome.
// Blank candidates are left untouched.
func (s *Synchronizer) SubmitCandidate(ctx context.Context) {
	s.mu.Lock()
	candidate := s.state.Candidate
	s.mu.Unlock()

	if strings.TrimSpace(candidate) == "" {
		return
	}
	s.AddTask(ctx, candidate)
	s.SetCandidate("")
}

// ClearError removes the error message
func (s *Synchronizer) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *Synchronizer) selection() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedUser, s.state.HasSelection()
}

func (s *Synchronizer) fail(message string, err error) {
	if status := errors.HTTPStatus(err); status != 0 {
		s.logger.Warn(message, "code", errors.GetErrorCode(err), "status", status)
	} else {
		s.logger.Warn(message, "code", errors.GetErrorCode(err))
	}

	s.mu.Lock()
	s.state.Error = message
	s.failures++
	s.mu.Unlock()
}

// reason is the part of an error message that describes the failure itself
func reason(err error) string {
	return errors.GetUserMessage(err)
}
