package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	facade *services.Facade
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(facade *services.Facade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

type createReviewRequest struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
	UserID  string `json:"user_id"`
}

// ListReviews handles GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.facade.GetAllReviews(r.Context()))
}

// CreateReview handles POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var payload createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.PlaceID == "" || payload.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "place_id and user_id are required")
		return
	}

	review, err := h.facade.CreateReview(r.Context(), services.CreateReviewInput{
		Text:    payload.Text,
		Rating:  payload.Rating,
		PlaceID: payload.PlaceID,
		UserID:  payload.UserID,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	review, ok := h.facade.GetReview(r.Context(), id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "review not found")
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// UpdateReview handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.facade.UpdateReview(r.Context(), id, patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.facade.DeleteReview(r.Context(), id) {
		respondWithError(w, http.StatusNotFound, "review not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
