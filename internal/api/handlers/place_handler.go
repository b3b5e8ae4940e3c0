package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
)

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	facade *services.Facade
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(facade *services.Facade) *PlaceHandler {
	return &PlaceHandler{facade: facade}
}

type createPlaceRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OwnerID     string  `json:"owner_id"`
}

// ListPlaces handles GET /api/v1/places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.facade.GetAllPlaces(r.Context()))
}

// CreatePlace handles POST /api/v1/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var payload createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.OwnerID == "" {
		respondWithError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	place, err := h.facade.CreatePlace(r.Context(), services.CreatePlaceInput{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		OwnerID:     payload.OwnerID,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, place)
}

// GetPlace handles GET /api/v1/places/{id}
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	place, ok := h.facade.GetPlace(r.Context(), id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "place not found")
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// UpdatePlace handles PUT /api/v1/places/{id}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.PlacePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	place, err := h.facade.UpdatePlace(r.Context(), id, patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// AddAmenity handles POST /api/v1/places/{id}/amenities/{amenityId}
func (h *PlaceHandler) AddAmenity(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	amenityID := r.PathValue("amenityId")

	place, err := h.facade.AddPlaceAmenity(r.Context(), placeID, amenityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// ListReviews handles GET /api/v1/places/{id}/reviews
func (h *PlaceHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")

	if _, ok := h.facade.GetPlace(r.Context(), placeID); !ok {
		respondWithError(w, http.StatusNotFound, "place not found")
		return
	}

	respondWithJSON(w, http.StatusOK, h.facade.GetReviewsByPlace(r.Context(), placeID))
}
