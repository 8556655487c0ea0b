package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/services"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies a submitted credential and returns the user record
// (hash stripped) plus a signed token the browser caches as its login
// marker. Unknown email and wrong password are indistinguishable.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.auth.Verify(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Msg("failed to verify credentials")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}
