package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bookshelf/internal/middleware"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
	"bookshelf/pkg/apierror"
)

type ReviewHandler struct {
	service *service.ReviewService
}

func NewReviewHandler(service *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	middleware.WriteJSON(w, http.StatusOK, model.ReviewListResponse{Reviews: reviews})
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, model.ErrUnauthorized)
		return
	}

	var payload model.CreateReviewRequest
	if err := bind(r, &payload, reviewMessages); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.service.Create(r.Context(), identity, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, model.ReviewResponse{Message: "Review created successfully", Review: review})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, model.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, apierror.Validation("Invalid review ID", "id"))
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		writeError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Review deleted successfully"})
}
