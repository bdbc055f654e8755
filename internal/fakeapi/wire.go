package fakeapi

import "todo-sync/internal/domain"

type userJSON struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

type usersJSON struct {
	Users []userJSON `json:"users"`
}

type taskJSON struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

type userTasksJSON struct {
	Name  string     `json:"name"`
	ID    int64      `json:"id"`
	Todos []taskJSON `json:"todos"`
}

type replaceJSON struct {
	Todos []taskJSON `json:"todos"`
}

type detailJSON struct {
	Detail string `json:"detail"`
}

func toTaskJSON(task domain.Task) taskJSON {
	return taskJSON{ID: task.ID, Label: task.Label, IsDone: task.IsDone}
}

func toTasksJSON(tasks []domain.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskJSON(task))
	}
	return out
}
