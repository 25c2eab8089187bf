package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerIDKey  = contextKey("callerID")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none is present, which is the case for
// work that does not originate from an HTTP request (startup, CLI, tests).
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// GetCallerIDFromContext retrieves the authenticated caller (the token subject).
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	callerID, ok := c.Request.Context().Value(callerIDKey).(string)
	if !ok || callerID == "" {
		return "", false
	}
	return callerID, true
}
