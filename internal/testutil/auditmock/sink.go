package auditmock

import (
	"context"
	"sync"
)

type Appended struct {
	Entity      string
	EntityID    string
	Action      string
	ActorUserID string
	Metadata    map[string]any
}

// Sink records appended entries for assertions.
type Sink struct {
	mu      sync.Mutex
	Entries []Appended
}

func New() *Sink { return &Sink{} }

func (s *Sink) Append(_ context.Context, entity, entityID, action, actorUserID string, metadata map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, Appended{
		Entity:      entity,
		EntityID:    entityID,
		Action:      action,
		ActorUserID: actorUserID,
		Metadata:    metadata,
	})
}

func (s *Sink) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.Action)
	}
	return out
}
