package observability

import (
	"context"
	"log/slog"

	"github.com/nagarniyantran/civicnav/pkg/domain"
)

// LoggingHooks logs changed transitions at info and absorbed ones at debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			level := slog.LevelInfo
			if !e.Changed {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "transition",
				"kind", e.Kind,
				"session_id", e.SessionID,
				"from", e.From,
				"to", e.To,
				"changed", e.Changed,
			)
		},
		OnLogin: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "login", "session_id", e.SessionID, "role", e.Role)
		},
	}
}
