package memory

import (
	"context"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetByID(_ context.Context, sessionID string) (quest.Session, error) {
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return quest.Session{}, ports.ErrNotFound
	}
	return s, nil
}

// GetForUpdate is the same as GetByID here: the transaction already holds
// the store mutex, so the caller has exclusive access to the row.
func (r SessionRepo) GetForUpdate(ctx context.Context, sessionID string) (quest.Session, error) {
	return r.GetByID(ctx, sessionID)
}

func (r SessionRepo) FindActiveByPlayer(_ context.Context, playerID string) (*quest.Session, error) {
	for _, s := range r.store.sessions {
		if s.PlayerID == playerID && s.Status == quest.SessionActive {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r SessionRepo) Create(_ context.Context, s quest.Session) error {
	if _, ok := r.store.sessions[s.ID]; ok {
		return ports.ErrConflict
	}
	r.store.sessions[s.ID] = s
	return nil
}

func (r SessionRepo) Save(_ context.Context, s quest.Session) error {
	if _, ok := r.store.sessions[s.ID]; !ok {
		return ports.ErrNotFound
	}
	r.store.sessions[s.ID] = s
	return nil
}
