package ports

import (
	"context"

	"github.com/google/uuid"
)

// NotificationPort delivers a compiled reminder. Delivery is best effort;
// an attempted send counts as sent for throttling purposes.
type NotificationPort interface {
	Send(ctx context.Context, intervalID uuid.UUID, title, body string) error
}
