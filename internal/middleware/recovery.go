package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"bookshelf/internal/model"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				slog.Error("panic recovered",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()),
				)
				WriteJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: internalErrorMessage})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
