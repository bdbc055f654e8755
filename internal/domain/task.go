package domain

// Task represents a to-do item in the domain model.
// The ID is always assigned by the remote API; a zero ID means the task has not been stored yet.
type Task struct {
	ID     int64
	Label  string
	IsDone bool
}

// String returns the task label for display purposes.
func (t Task) String() string {
	return t.Label
}

// WithDone returns a copy of the task with the done flag set.
func (t Task) WithDone(done bool) Task {
	t.IsDone = done
	return t
}

// CloneTasks returns a copy of tasks that never aliases the input.
// A nil input yields an empty, non-nil slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// RemoveTaskByID returns tasks without the entries whose ID equals id, preserving order.
func RemoveTaskByID(tasks []Task, id int64) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			out = append(out, task)
		}
	}
	return out
}

// SetTaskDone returns a copy of tasks where the task with the given id has its done flag set.
// The second result is false if no task has that id.
func SetTaskDone(tasks []Task, id int64, done bool) ([]Task, bool) {
	out := CloneTasks(tasks)
	found := false
	for i := range out {
		if out[i].ID == id {
			out[i].IsDone = done
			found = true
		}
	}
	return out, found
}
