package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestFromContext_CarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	ctx := WithRequestID(context.Background(), "req-1")
	CtxInfo(ctx, "handled")
	entry := lastLine(t, &buf)
	assert.Equal(t, "handled", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.NotContains(t, entry, "job_id")

	ctx = WithJobID(context.Background(), "promote-1a2b3c4d")
	WorkerLog(ctx, "media-promote", "promote row", errors.New("bucket offline"), "id", 7)
	entry = lastLine(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "promote-1a2b3c4d", entry["job_id"])
	assert.Equal(t, "media-promote", entry["worker"])
	assert.Equal(t, "bucket offline", entry["error"])
	assert.Equal(t, float64(7), entry["id"])
}

func TestInit_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	Debug("hidden")
	assert.Empty(t, buf.String())

	Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestGetRequestID(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
}
