package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
)

// AmenityHandler handles amenity-related HTTP requests
type AmenityHandler struct {
	facade *services.Facade
}

// NewAmenityHandler creates a new amenity handler
func NewAmenityHandler(facade *services.Facade) *AmenityHandler {
	return &AmenityHandler{facade: facade}
}

type createAmenityRequest struct {
	Name string `json:"name"`
}

// ListAmenities handles GET /api/v1/amenities
func (h *AmenityHandler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.facade.GetAllAmenities(r.Context()))
}

// CreateAmenity handles POST /api/v1/amenities
func (h *AmenityHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var payload createAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	amenity, err := h.facade.CreateAmenity(r.Context(), services.CreateAmenityInput{
		Name: payload.Name,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, amenity)
}

// GetAmenity handles GET /api/v1/amenities/{id}
func (h *AmenityHandler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	amenity, ok := h.facade.GetAmenity(r.Context(), id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "amenity not found")
		return
	}

	respondWithJSON(w, http.StatusOK, amenity)
}

// UpdateAmenity handles PUT /api/v1/amenities/{id}
func (h *AmenityHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.AmenityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	amenity, err := h.facade.UpdateAmenity(r.Context(), id, patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, amenity)
}
