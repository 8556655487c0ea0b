package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the full API surface. main and the handler tests
// share it so the routes under test are the routes that ship.
func NewRouter(
	users *UserHandler,
	auth *AuthHandler,
	projects *ProjectHandler,
	tasks *TaskHandler,
	reminder *ReminderHandler,
	ws *WSHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/users", users.Create).Methods("POST")
	r.HandleFunc("/api/users", users.List).Methods("GET")
	r.HandleFunc("/api/users/{id}", users.Update).Methods("PUT")
	r.HandleFunc("/api/users/{id}", users.Delete).Methods("DELETE")

	r.HandleFunc("/api/login", auth.Login).Methods("POST")

	r.HandleFunc("/api/projects", projects.Create).Methods("POST")
	r.HandleFunc("/api/projects", projects.List).Methods("GET")
	r.HandleFunc("/api/projects/{id}", projects.Update).Methods("PUT")
	r.HandleFunc("/api/projects/{id}", projects.Delete).Methods("DELETE")

	r.HandleFunc("/api/tasks", tasks.Create).Methods("POST")
	r.HandleFunc("/api/tasks", tasks.List).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", tasks.Update).Methods("PUT")
	r.HandleFunc("/api/tasks/{id}", tasks.Delete).Methods("DELETE")

	r.HandleFunc("/test-send-email", reminder.Trigger).Methods("GET")

	r.HandleFunc("/api/ws", ws.Connect)

	// Static file server for the frontend build
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))

	return r
}
