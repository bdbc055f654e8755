package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, BasePath+path, nil)
	} else {
		req = httptest.NewRequest(method, BasePath+path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_ListUsers(t *testing.T) {
	s := New()
	s.AddUser("ana")
	s.AddUser("bob")

	rec := do(t, s, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp usersJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "ana", resp.Users[0].Name)
	assert.Equal(t, "bob", resp.Users[1].Name)
}

func TestServer_UserLifecycle(t *testing.T) {
	s := New()

	rec := do(t, s, http.MethodGet, "/users/ana", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User ana doesn't exist.")

	rec = do(t, s, http.MethodPost, "/users/ana", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/users/ana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/users/ana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp userTasksJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ana", resp.Name)
	assert.NotNil(t, resp.Todos)
	assert.Empty(t, resp.Todos)
}

func TestServer_CreateTaskAssignsIncreasingIDs(t *testing.T) {
	s := New()
	s.AddUser("ana")

	var first, second taskJSON
	rec := do(t, s, http.MethodPost, "/todos/ana", `{"label":"buy milk","is_done":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = do(t, s, http.MethodPost, "/todos/ana", `{"label":"walk dog","is_done":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, "buy milk", first.Label)
	assert.Greater(t, second.ID, first.ID)
	assert.Len(t, s.Tasks("ana"), 2)
}

func TestServer_CreateTaskErrors(t *testing.T) {
	s := New()
	s.AddUser("ana")

	rec := do(t, s, http.MethodPost, "/todos/nobody", `{"label":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/todos/ana", `{"label":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/todos/ana", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_ReplaceTasks(t *testing.T) {
	s := New()
	seeded := s.Seed("ana", "a", "b")

	body := `{"todos":[{"id":` + itoa(seeded[1].ID) + `,"label":"b","is_done":true},{"label":"c","is_done":false}]}`
	rec := do(t, s, http.MethodPut, "/todos/ana", body)
	require.Equal(t, http.StatusOK, rec.Code)

	tasks := s.Tasks("ana")
	require.Len(t, tasks, 2)
	assert.Equal(t, seeded[1].ID, tasks[0].ID)
	assert.True(t, tasks[0].IsDone)
	assert.Equal(t, "c", tasks[1].Label)
	assert.Greater(t, tasks[1].ID, seeded[1].ID)

	rec = do(t, s, http.MethodPut, "/todos/nobody", `{"todos":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DeleteTask(t *testing.T) {
	s := New()
	seeded := s.Seed("ana", "a", "b")

	rec := do(t, s, http.MethodDelete, "/todos/"+itoa(seeded[0].ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, seeded[1:], s.Tasks("ana"))

	rec = do(t, s, http.MethodDelete, "/todos/"+itoa(seeded[0].ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/todos/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_FailNext(t *testing.T) {
	s := New()
	s.AddUser("ana")
	s.FailNext(http.MethodGet, "/users", http.StatusServiceUnavailable)

	rec := do(t, s, http.MethodGet, "/users/ana", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "injected failure")

	rec = do(t, s, http.MethodGet, "/users/ana", "")
	assert.Equal(t, http.StatusOK, rec.Code, "failure is consumed once")
}

func TestServer_FailNextMatchesMethod(t *testing.T) {
	s := New()
	seeded := s.Seed("ana", "a")
	s.FailNext(http.MethodDelete, "/todos/", http.StatusInternalServerError)

	rec := do(t, s, http.MethodPost, "/todos/ana", `{"label":"b"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodDelete, "/todos/"+itoa(seeded[0].ID), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, s.Tasks("ana"), 2, "failed delete leaves the task in place")
}

func TestServer_RecordsRequests(t *testing.T) {
	s := New()
	do(t, s, http.MethodGet, "/users", "")
	do(t, s, http.MethodGet, "/users/ana", "")

	assert.Equal(t, 2, s.RequestCount())
	assert.Equal(t, []Request{
		{Method: http.MethodGet, Path: "/users"},
		{Method: http.MethodGet, Path: "/users/ana"},
	}, s.Requests())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
