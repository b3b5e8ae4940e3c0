package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	facade *services.Facade
}

// NewUserHandler creates a new user handler
func NewUserHandler(facade *services.Facade) *UserHandler {
	return &UserHandler{facade: facade}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.facade.GetAllUsers(r.Context()))
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" {
		respondWithError(w, http.StatusBadRequest, "first_name, last_name and email are required")
		return
	}

	// Uniqueness is checked here, not in the facade.
	if _, exists := h.facade.GetUserByEmail(r.Context(), payload.Email); exists {
		respondWithError(w, http.StatusBadRequest, "email already registered")
		return
	}

	user, err := h.facade.CreateUser(r.Context(), services.CreateUserInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		IsAdmin:   payload.IsAdmin,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, ok := h.facade.GetUser(r.Context(), id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/v1/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Changing the email must not collide with another account.
	if patch.Email != nil {
		if existing, exists := h.facade.GetUserByEmail(r.Context(), *patch.Email); exists && existing.ID != id {
			respondWithError(w, http.StatusBadRequest, "email already registered")
			return
		}
	}

	user, err := h.facade.UpdateUser(r.Context(), id, patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
