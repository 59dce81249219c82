package push

import (
	"context"
	"log/slog"

	"github.com/resilientme/backend/internal/domain"
)

// Stub logs pushes instead of delivering them. Used when no server key is
// configured, e.g. local development.
type Stub struct {
	log *slog.Logger
}

// NewStub creates a log-only sender.
func NewStub(logger *slog.Logger) *Stub {
	return &Stub{log: logger.With("adapter", "push_stub")}
}

// Send logs the payload and reports success.
func (s *Stub) Send(ctx context.Context, token string, payload domain.PushPayload) error {
	s.log.InfoContext(ctx, "push skipped (stub sender)",
		slog.String("title", payload.Title),
	)
	return nil
}
