package memory

import (
	"context"

	"duskvale/internal/domain/quest"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []quest.AuditEvent) error {
	for _, e := range events {
		r.store.events[e.SessionID] = append(r.store.events[e.SessionID], e)
	}
	return nil
}

func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]quest.AuditEvent, error) {
	trail := r.store.events[sessionID]
	out := make([]quest.AuditEvent, len(trail))
	copy(out, trail)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
