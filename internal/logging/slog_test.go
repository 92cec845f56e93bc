package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l Logger)
		want  string
		level string
	}{
		{
			name:  "debug",
			log:   func(l Logger) { l.Debug(ctx, "debug message", "k", "v") },
			want:  "debug message",
			level: "DEBUG",
		},
		{
			name:  "info",
			log:   func(l Logger) { l.Info(ctx, "info message") },
			want:  "info message",
			level: "INFO",
		},
		{
			name:  "warn",
			log:   func(l Logger) { l.Warn(ctx, "warn message") },
			want:  "warn message",
			level: "WARN",
		},
		{
			name:  "error",
			log:   func(l Logger) { l.Error(ctx, "error message") },
			want:  "error message",
			level: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewTextLogger(&buf, slog.LevelDebug))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "level="+tt.level)
		})
	}
}

func TestTextLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelWarn)

	l.Debug(context.Background(), "too quiet")
	l.Info(context.Background(), "still too quiet")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "loud enough")
	assert.Contains(t, buf.String(), "loud enough")
}

func TestTextLogger_WithAttachesAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelInfo).With("component", "session")

	l.Info(context.Background(), "hello")
	assert.Contains(t, buf.String(), "component=session")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewSlogLogger_WrapsExistingLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	NewSlogLogger(base).Info(context.Background(), "wrapped")
	assert.Contains(t, buf.String(), "wrapped")
}
