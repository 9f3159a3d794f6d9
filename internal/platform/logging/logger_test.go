package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "development", "info")
	ctx := context.Background()

	log.Info(ctx, "info message", "k", "v")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=\"info message\"")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "development", "error")

	log.Info(context.Background(), "hidden")
	log.Error(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_RequestIDAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "production", "info").With("component", "sync")

	ctx := WithRequestID(context.Background(), "rid-123")
	log.Info(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"rid-123"`)
	assert.Contains(t, out, `"component":"sync"`)
	assert.Equal(t, "rid-123", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
}
