package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerRedactsCredentials(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "pretty", "debug")

	log.Info("login attempt", "email", "a@b.com", "password", "secret123", "session_token", "abc.def.ghi")

	out := buf.String()
	require.Contains(t, out, "login attempt")
	require.Contains(t, out, "a@b.com")
	require.NotContains(t, out, "secret123")
	require.NotContains(t, out, "abc.def.ghi")
	require.Contains(t, out, redacted)
}

func TestPrettyHandlerGroupsAndLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "pretty", "warn")

	log.Info("dropped")
	require.Empty(t, buf.String())

	log.WithGroup("db").With("host", "localhost").Warn("slow query", "ms", 250)
	out := buf.String()
	require.Contains(t, out, "db.host")
	require.Contains(t, out, "db.ms")
	require.Contains(t, out, "slow query")
}

func TestJSONFormatRedactsCredentials(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "json", "info").Error("verification failed", "Authorization", "Bearer xyz", "path", "/api/me")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, redacted, record["Authorization"])
	require.Equal(t, "/api/me", record["path"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
