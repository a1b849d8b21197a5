package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
)

const unauthorizedMessage = "Unauthorized"

type tokenExtractor interface {
	Extract(r *http.Request) (string, bool)
}

type tokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "auth_identity"

type AuthMiddleware struct {
	carrier  tokenExtractor
	verifier tokenVerifier
}

func NewAuthMiddleware(carrier tokenExtractor, verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{carrier: carrier, verifier: verifier}
}

// RequireAuth only calls next for requests carrying a valid session cookie.
// Missing, invalid and expired sessions all get the same 401 body.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := m.carrier.Extract(r)
		if !ok {
			WriteJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: unauthorizedMessage})
			return
		}

		identity, err := m.verifier.Verify(token)
		if errors.Is(err, auth.ErrInvalidToken) {
			WriteJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: unauthorizedMessage})
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "session verification failed",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			WriteJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: internalErrorMessage})
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(auth.Identity)
	return identity, ok
}
