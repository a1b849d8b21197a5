package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookshelf/internal/model"
)

func TestTimeoutAnswersWithJSON(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	rec := httptest.NewRecorder()
	Timeout(5*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "Request timed out", decodeError(t, rec))
}

func TestTimeoutKeepsHandlerResponse(t *testing.T) {
	t.Parallel()

	fast := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Handled", "yes")
		WriteJSON(w, http.StatusCreated, model.MessageResponse{Message: "done"})
	})

	rec := httptest.NewRecorder()
	Timeout(time.Second)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "yes", rec.Header().Get("X-Handled"))
	require.JSONEq(t, `{"message":"done"}`, rec.Body.String())
}
