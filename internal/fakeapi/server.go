// Package fakeapi is an in-memory stand-in for the playground to-do API.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"todo-sync/internal/domain"
)

// BasePath is where the API is mounted, matching the public playground
const BasePath = "/todo"

type user struct {
	id    int64
	name  string
	todos []domain.Task
}

type failure struct {
	method string
	prefix string
	status int
}

// Request is one request the server received
type Request struct {
	Method string
	Path   string
}

// Server holds users and their tasks in memory
type Server struct {
	mu         sync.Mutex
	users      map[string]*user
	nextUserID int64
	nextTaskID int64
	failures   []failure
	requests   []Request
	router     *mux.Router
}

// New creates an empty server
func New() *Server {
	s := &Server{
		users:      make(map[string]*user),
		nextUserID: 1,
		nextTaskID: 1,
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix(BasePath).Subrouter()
	api.Use(s.recordMiddleware, s.failureMiddleware)

	api.HandleFunc("/users", s.listUsersHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/{name}", s.getUserHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/{name}", s.createUserHandler).Methods(http.MethodPost)
	api.HandleFunc("/todos/{name}", s.createTaskHandler).Methods(http.MethodPost)
	api.HandleFunc("/todos/{name}", s.replaceTasksHandler).Methods(http.MethodPut)
	api.HandleFunc("/todos/{id}", s.deleteTaskHandler).Methods(http.MethodDelete)
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddUser creates a user if it does not exist yet
func (s *Server) AddUser(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(name)
}

// Seed creates a user with one not-done task per label and returns the stored tasks
func (s *Server) Seed(name string, labels ...string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.addUserLocked(name)
	for _, label := range labels {
		u.todos = append(u.todos, s.newTaskLocked(label, false))
	}
	return domain.CloneTasks(u.todos)
}

// Tasks returns the stored tasks of a user
func (s *Server) Tasks(name string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[name]
	if !ok {
		return nil
	}
	return domain.CloneTasks(u.todos)
}

// FailNext makes the next request whose method matches and whose path (below BasePath)
// starts with pathPrefix answer with status instead of being served.
func (s *Server) FailNext(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: pathPrefix, status: status})
}

// Requests returns every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestCount returns how many requests were received
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) addUserLocked(name string) *user {
	if u, ok := s.users[name]; ok {
		return u
	}
	u := &user{id: s.nextUserID, name: name, todos: []domain.Task{}}
	s.nextUserID++
	s.users[name] = u
	return u
}

func (s *Server) newTaskLocked(label string, done bool) domain.Task {
	task := domain.Task{ID: s.nextTaskID, Label: label, IsDone: done}
	s.nextTaskID++
	return task
}

func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: strings.TrimPrefix(r.URL.Path, BasePath)})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, BasePath)

		s.mu.Lock()
		status := 0
		for i, f := range s.failures {
			if f.method == r.Method && strings.HasPrefix(path, f.prefix) {
				status = f.status
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeDetail(w, status, fmt.Sprintf("injected failure for %s %s", r.Method, path))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]userJSON, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, userJSON{Name: u.name, ID: u.id})
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, usersJSON{Users: users})
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	s.mu.Lock()
	u, ok := s.users[name]
	var resp userTasksJSON
	if ok {
		resp = userTasksJSON{Name: u.name, ID: u.id, Todos: toTasksJSON(u.todos)}
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("User %s doesn't exist.", name))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	s.mu.Lock()
	_, exists := s.users[name]
	var u *user
	if !exists {
		u = s.addUserLocked(name)
	}
	s.mu.Unlock()

	if exists {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("User %s already exists.", name))
		return
	}
	writeJSON(w, http.StatusCreated, userJSON{Name: u.name, ID: u.id})
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req taskJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Label) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "label is required")
		return
	}

	s.mu.Lock()
	u, ok := s.users[name]
	var task domain.Task
	if ok {
		task = s.newTaskLocked(req.Label, req.IsDone)
		u.todos = append(u.todos, task)
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("User %s doesn't exist.", name))
		return
	}
	writeJSON(w, http.StatusCreated, toTaskJSON(task))
}

func (s *Server) replaceTasksHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req replaceJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "todos must be a list")
		return
	}

	s.mu.Lock()
	u, ok := s.users[name]
	var resp userTasksJSON
	if ok {
		todos := make([]domain.Task, 0, len(req.Todos))
		for _, t := range req.Todos {
			if t.ID > 0 {
				todos = append(todos, domain.Task{ID: t.ID, Label: t.Label, IsDone: t.IsDone})
				continue
			}
			todos = append(todos, s.newTaskLocked(t.Label, t.IsDone))
		}
		u.todos = todos
		resp = userTasksJSON{Name: u.name, ID: u.id, Todos: toTasksJSON(u.todos)}
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("User %s doesn't exist.", name))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "task id must be an integer")
		return
	}

	s.mu.Lock()
	found := false
	for _, u := range s.users {
		if remaining := domain.RemoveTaskByID(u.todos, id); len(remaining) != len(u.todos) {
			u.todos = remaining
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Todo %d doesn't exist.", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailJSON{Detail: detail})
}
