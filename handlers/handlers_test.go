package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/task-tracker/database"
	"github.com/taskforge/task-tracker/handlers"
	"github.com/taskforge/task-tracker/services"
)

type fakeMailer struct {
	bodies []string
}

func (m *fakeMailer) Send(subject, htmlBody string) error {
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

type testServer struct {
	router http.Handler
	mailer *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	userStore := database.NewUserStore(db)
	projectStore := database.NewProjectStore(db)
	taskStore := database.NewTaskStore(db)

	auth := services.NewAuthService(userStore, "test-secret")
	mailer := &fakeMailer{}
	reminder := services.NewReminderService(taskStore, mailer, time.Local)

	hub := services.NewHub()
	go hub.Run()

	router := handlers.NewRouter(
		handlers.NewUserHandler(userStore, auth, hub),
		handlers.NewAuthHandler(auth),
		handlers.NewProjectHandler(projectStore, hub),
		handlers.NewTaskHandler(taskStore, hub),
		handlers.NewReminderHandler(reminder),
		handlers.NewWSHandler(hub),
	)

	return &testServer{router: router, mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "POST", "/api/users", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "active", body["status"])
	assert.NotContains(t, body, "password")
}

func TestCreateUserMissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "POST", "/api/users", map[string]any{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestServer(t)

	payload := map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2", "role": "admin",
	}
	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/users", payload).Code)

	rec := s.do(t, "POST", "/api/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, rec)["error"])

	list := s.do(t, "GET", "/api/users", nil)
	var users []map[string]any
	require.NoError(t, json.NewDecoder(list.Body).Decode(&users))
	assert.Len(t, users, 1)
}

func TestUpdateUserUnknownID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "PUT", "/api/users/missing", map[string]any{
		"name": "Ada", "email": "ada@example.com", "role": "admin", "status": "active",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, "DELETE", "/api/users/missing", nil).Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/users", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2", "role": "admin",
	}).Code)

	t.Run("missing fields", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/login", map[string]any{"email": "ada@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/login", map[string]any{
			"email": "ada@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email reads the same", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/login", map[string]any{
			"email": "nobody@example.com", "password": "hunter2",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
	})

	t.Run("success", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/login", map[string]any{
			"email": "ada@example.com", "password": "hunter2",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["token"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", user["email"])
		assert.NotContains(t, user, "password")
	})
}

func TestProjectValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "POST", "/api/projects", map[string]any{"description": "nameless"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskValidation(t *testing.T) {
	s := newTestServer(t)

	project := decodeBody(t, s.do(t, "POST", "/api/projects", map[string]any{"name": "Launch"}))
	projectID := project["id"].(string)

	t.Run("missing required fields", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/tasks", map[string]any{"title": "Ship"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status outside the enumeration", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/tasks", map[string]any{
			"projectId": projectID, "title": "Ship", "status": "Blocked",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/tasks", map[string]any{
			"projectId": "missing", "title": "Ship", "status": "To Do",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/tasks", map[string]any{
			"projectId": projectID, "title": "Ship", "status": "To Do",
			"tags": []string{"release"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, []any{"release"}, body["tags"])
	})
}

func TestProjectDeleteCascades(t *testing.T) {
	s := newTestServer(t)

	project := decodeBody(t, s.do(t, "POST", "/api/projects", map[string]any{"name": "Doomed"}))
	projectID := project["id"].(string)

	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/tasks", map[string]any{
		"projectId": projectID, "title": "Ship", "status": "To Do",
	}).Code)

	require.Equal(t, http.StatusOK, s.do(t, "DELETE", fmt.Sprintf("/api/projects/%s", projectID), nil).Code)

	rec := s.do(t, "GET", "/api/tasks", nil)
	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
	assert.Empty(t, tasks)
}

func TestManualReminderTrigger(t *testing.T) {
	s := newTestServer(t)

	project := decodeBody(t, s.do(t, "POST", "/api/projects", map[string]any{"name": "Launch"}))
	projectID := project["id"].(string)

	deadline := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/tasks", map[string]any{
		"projectId": projectID, "title": "Ship", "status": "To Do", "deadline": deadline,
	}).Code)

	rec := s.do(t, "GET", "/test-send-email", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Triggered email reminder manually", rec.Body.String())

	require.Len(t, s.mailer.bodies, 1)
	assert.Contains(t, s.mailer.bodies[0], "Ship")
	assert.Contains(t, s.mailer.bodies[0], "Launch")
}

func TestManualReminderTriggerNothingDue(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "GET", "/test-send-email", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.mailer.bodies)
}
