package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/database"
	"github.com/taskforge/task-tracker/services"
)

// TaskHandler handles task CRUD endpoints. The status enumeration is
// validated here, before any store write; the schema's CHECK constraint
// is only a backstop.
type TaskHandler struct {
	tasks *database.TaskStore
	hub   *services.Hub
}

func NewTaskHandler(tasks *database.TaskStore, hub *services.Hub) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		hub:   hub,
	}
}

type taskRequest struct {
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Deadline    string   `json:"deadline"`
	Tags        []string `json:"tags"`
	Completed   bool     `json:"completed"`
	Comments    string   `json:"comments"`
}

func (r taskRequest) validate() error {
	if r.ProjectID == "" || r.Title == "" || r.Status == "" {
		return errors.New("projectId, title and status are required")
	}
	if !database.ValidStatus(r.Status) {
		return fmt.Errorf("status must be one of %q, %q or %q",
			database.StatusToDo, database.StatusInProgress, database.StatusDone)
	}
	return nil
}

func (r taskRequest) toTask(id string) database.Task {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return database.Task{
		ID:          id,
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Deadline:    r.Deadline,
		Tags:        tags,
		Completed:   r.Completed,
		Comments:    r.Comments,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := req.validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task := req.toTask("")
	if err := h.tasks.Create(&task); err != nil {
		if errors.Is(err, database.ErrMissingReference) {
			respondMessage(w, http.StatusBadRequest, "Project does not exist")
			return
		}
		log.Error().Err(err).Msg("failed to create task")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("tasks", "created", task.ID)
	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to list tasks")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := req.validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task := req.toTask(id)
	if err := h.tasks.Update(&task); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, database.ErrMissingReference):
			respondMessage(w, http.StatusBadRequest, "Project does not exist")
		default:
			log.Error().Err(err).Msg("failed to update task")
			respondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	h.hub.NotifyChange("tasks", "updated", id)
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.tasks.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete task")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("tasks", "deleted", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted", "id": id})
}
