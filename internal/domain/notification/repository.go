package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error

	// ExistsSince reports whether a notification of the given type whose
	// payload references entityID was already created for the user after
	// the cutoff. The reminder sweep uses it to avoid daily duplicates.
	ExistsSince(ctx context.Context, userID, typ, entityID string, since time.Time) (bool, error)
}

// Sink is the engine-facing delivery interface: best-effort, fire-and-forget.
// Implementations must never propagate failures into the calling operation.
type Sink interface {
	Enqueue(ctx context.Context, n *Notification)
}
