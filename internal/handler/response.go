package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"bookshelf/internal/middleware"
	"bookshelf/internal/model"
	"bookshelf/pkg/apierror"
)

const internalErrorMessage = "Internal server error"

// writeError maps err to a status and a {"error": ...} body. Anything
// unclassified becomes an opaque 500 and is logged with the request id.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := internalErrorMessage

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		message = apiErr.Message
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		message = "Unauthorized"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		message = "Forbidden - You can only delete your own reviews"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		message = "User not found"
	} else if errors.Is(err, model.ErrReviewNotFound) {
		status = http.StatusNotFound
		message = "Review not found"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusConflict
		message = "User with this email already exists"
	} else {
		slog.ErrorContext(r.Context(), "unhandled error",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	middleware.WriteJSON(w, status, model.ErrorResponse{Error: message})
}
