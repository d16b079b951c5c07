package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	commandKey
)

// GenerateRequestID returns a short random identifier for one CLI invocation.
func GenerateRequestID() string {
	return uuid.NewString()[:8]
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithCommand returns a copy of ctx carrying the command path, e.g.
// "workflowr timer log".
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// NewRequestContext starts the context of one invocation of command.
func NewRequestContext(command string) context.Context {
	ctx := WithRequestID(context.Background(), GenerateRequestID())
	if command != "" {
		ctx = WithCommand(ctx, command)
	}
	return ctx
}

// RequestIDFromContext extracts the request ID, or "" if none is set.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// CommandFromContext extracts the command path, or "" if none is set.
func CommandFromContext(ctx context.Context) string {
	return stringValue(ctx, commandKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}

// LoggerFromContext returns the default logger tagged with whatever request
// ID and command ctx carries.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(KeyRequestID, id)
	}
	if cmd := CommandFromContext(ctx); cmd != "" {
		logger = logger.With(KeyCommand, cmd)
	}
	return logger
}
