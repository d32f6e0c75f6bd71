package notifmock

import (
	"context"
	"sync"

	domain "lms-backend/internal/domain/notification"
)

// Sink records enqueued notifications for assertions.
type Sink struct {
	mu     sync.Mutex
	Queued []*domain.Notification
}

func New() *Sink { return &Sink{} }

func (s *Sink) Enqueue(_ context.Context, n *domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queued = append(s.Queued, n)
}

func (s *Sink) Users() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.Queued))
	for _, n := range s.Queued {
		out = append(out, n.UserID)
	}
	return out
}
