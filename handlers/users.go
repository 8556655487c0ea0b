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

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	users *database.UserStore
	auth  *services.AuthService
	hub   *services.Hub
}

func NewUserHandler(users *database.UserStore, auth *services.AuthService, hub *services.Hub) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  auth,
		hub:   hub,
	}
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Create registers a user. The password is hashed before it reaches the
// store and never appears in the response.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondMessage(w, http.StatusBadRequest, "Name, email, password, and role are required")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := database.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		Status:   req.Status,
	}
	if err := h.users.Create(&user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Error().Err(err).Msg("failed to create user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("users", "created", user.ID)
	respondJSON(w, http.StatusCreated, user)
}

// List returns every user, without password hashes.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Update rewrites a user's profile. A submitted password is re-hashed;
// an absent one keeps the stored hash.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user := database.User{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Status: req.Status,
	}
	if req.Password != "" {
		hash, err := h.auth.HashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
		user.Password = hash
	}

	if err := h.users.Update(&user); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Error().Err(err).Msg("failed to update user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user.Password = ""
	h.hub.NotifyChange("users", "updated", id)
	respondJSON(w, http.StatusOK, user)
}

// Delete removes a user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.NotifyChange("users", "deleted", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted", "id": id})
}
