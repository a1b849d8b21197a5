package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
)

const gateSecret = "0123456789abcdef0123456789abcdef"

type failingVerifier struct{}

func (failingVerifier) Verify(string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("keystore unavailable")
}

func newGate(t *testing.T) (*AuthMiddleware, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService(gateSecret)
	require.NoError(t, err)
	return NewAuthMiddleware(auth.NewSessionCarrier(false), tokens), tokens
}

func identityEcho(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Downstream", "yes")
		WriteJSON(w, http.StatusTeapot, identity)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestRequireAuthRejectsWithoutInvokingHandler(t *testing.T) {
	t.Parallel()

	gate, tokens := newGate(t)

	other, err := auth.NewTokenService("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)
	foreign, _, err := other.Issue(auth.Identity{UserID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	valid, _, err := tokens.Issue(auth.Identity{UserID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	cases := map[string]string{
		"missing cookie header": "",
		"malformed header":      ";;==;auth-token",
		"unrelated cookies":     "theme=dark",
		"garbage token":         "auth-token=nonsense",
		"foreign key":           "auth-token=" + foreign,
		"truncated":             "auth-token=" + valid[:len(valid)-3],
	}

	bodies := map[string]bool{}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if header != "" {
				req.Header.Set("Cookie", header)
			}
			rec := httptest.NewRecorder()
			called := false

			gate.RequireAuth(identityEcho(t, &called)).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.False(t, called)
			bodies[decodeError(t, rec)] = true
		})
	}

	require.Equal(t, map[string]bool{unauthorizedMessage: true}, bodies)
}

func TestRequireAuthPassesIdentityDownstream(t *testing.T) {
	t.Parallel()

	gate, tokens := newGate(t)
	token, _, err := tokens.Issue(auth.Identity{UserID: 9, Email: "a@b.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	called := false

	gate.RequireAuth(identityEcho(t, &called)).ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "yes", rec.Header().Get("X-Downstream"))

	var identity auth.Identity
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&identity))
	require.Equal(t, auth.Identity{UserID: 9, Email: "a@b.com"}, identity)
}

func TestRequireAuthReportsUnexpectedFaultsAsServerError(t *testing.T) {
	t.Parallel()

	gate := NewAuthMiddleware(auth.NewSessionCarrier(false), failingVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "a.b.c"})
	rec := httptest.NewRecorder()
	called := false

	gate.RequireAuth(identityEcho(t, &called)).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, internalErrorMessage, decodeError(t, rec))
}

func TestIdentityFromContextWithoutIdentity(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, ok)
}
