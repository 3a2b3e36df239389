package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormatCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New("users", Config{Level: "debug", Format: "json", Output: &buf})

	log.WithField("user_id", "abc").Info("user created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "users", line["component"])
	assert.Equal(t, "abc", line["user_id"])
	assert.Equal(t, "user created", line["msg"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("app", Config{Level: "chatty", Output: &buf})

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	root := New("app", Config{Format: "json", Output: &buf})

	root.Named("httpapi").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "httpapi", line["component"])
}

func TestTraceID(t *testing.T) {
	id := NewTraceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
	assert.Equal(t, context.Background(), WithTraceID(context.Background(), ""))
}

func TestLogRequest(t *testing.T) {
	var buf bytes.Buffer
	log := New("http", Config{Format: "json", Output: &buf})
	ctx := WithTraceID(context.Background(), "trace-1")

	log.LogRequest(ctx, http.MethodGet, "/api/users", http.StatusNotFound, 3*time.Millisecond)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "trace-1", line["trace_id"])
	assert.Equal(t, "warning", line["level"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "/api/users", line["path"])
}
