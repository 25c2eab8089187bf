package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/middleware"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock clock.Clock
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogRejection logs a business rejection. These are expected outcomes, so
// they go out at warn level.
func (s *BaseService) LogRejection(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// LogOutcome logs err at the level matching its kind.
func (s *BaseService) LogOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.KindOf(err) == apperrors.KindStorageFault {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogRejection(ctx, err, msg, keyvals...)
}

// Now returns the next ledger timestamp.
func (s *BaseService) Now() int64 {
	if s.Clock == nil {
		s.Clock = clock.NewMonotonic()
	}
	return s.Clock.Now()
}
