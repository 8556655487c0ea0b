package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/database"
	"github.com/taskforge/task-tracker/services"
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	projects *database.ProjectStore
	hub      *services.Hub
}

func NewProjectHandler(projects *database.ProjectStore, hub *services.Hub) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		hub:      hub,
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Project name is required")
		return
	}

	project := database.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projects.Create(&project); err != nil {
		log.Error().Err(err).Msg("failed to create project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("projects", "created", project.ID)
	respondJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to list projects")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Project name is required")
		return
	}

	project := database.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projects.Update(&project); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Error().Err(err).Msg("failed to update project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("projects", "updated", id)
	respondJSON(w, http.StatusOK, project)
}

// Delete removes a project. The store's cascade removes its tasks.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.projects.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("projects", "deleted", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Project deleted", "id": id})
}
