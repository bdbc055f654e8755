package playground

import "todo-sync/internal/domain"

// userDTO is a user as the playground API returns it
type userDTO struct {
	Name string `json:"name"`
	ID   int64  `json:"id,omitempty"`
}

// taskDTO is a task as the playground API sends and receives it
type taskDTO struct {
	ID     int64  `json:"id,omitempty"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

type usersResponse struct {
	Users []userDTO `json:"users"`
}

type userTasksResponse struct {
	Name  string    `json:"name"`
	Todos []taskDTO `json:"todos"`
}

type replaceTasksRequest struct {
	Todos []taskDTO `json:"todos"`
}

type createTaskRequest struct {
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

func toDomainUsers(dtos []userDTO) []domain.User {
	users := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, domain.User{Name: dto.Name})
	}
	return users
}

func toDomainTask(dto taskDTO) domain.Task {
	return domain.Task{ID: dto.ID, Label: dto.Label, IsDone: dto.IsDone}
}

func toDomainTasks(dtos []taskDTO) []domain.Task {
	tasks := make([]domain.Task, 0, len(dtos))
	for _, dto := range dtos {
		tasks = append(tasks, toDomainTask(dto))
	}
	return tasks
}

func fromDomainTasks(tasks []domain.Task) []taskDTO {
	dtos := make([]taskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, taskDTO{ID: task.ID, Label: task.Label, IsDone: task.IsDone})
	}
	return dtos
}
