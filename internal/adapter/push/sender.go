// Package push delivers notification payloads to device tokens over an
// FCM-compatible HTTP endpoint.
package push

import (
	"context"

	"github.com/resilientme/backend/internal/domain"
)

// Sender delivers one payload to one device token.
type Sender interface {
	Send(ctx context.Context, token string, payload domain.PushPayload) error
}
