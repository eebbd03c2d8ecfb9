package memory

import (
	"context"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) GetByID(_ context.Context, playerID string) (quest.Player, error) {
	p, ok := r.store.players[playerID]
	if !ok {
		return quest.Player{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PlayerRepo) GetByAnonID(_ context.Context, anonID string) (quest.Player, error) {
	for _, p := range r.store.players {
		if p.AnonID == anonID {
			return p, nil
		}
	}
	return quest.Player{}, ports.ErrNotFound
}

func (r PlayerRepo) Create(_ context.Context, p quest.Player) error {
	if _, ok := r.store.players[p.ID]; ok {
		return ports.ErrConflict
	}
	r.store.players[p.ID] = p
	return nil
}

func (r PlayerRepo) Save(_ context.Context, p quest.Player) error {
	if _, ok := r.store.players[p.ID]; !ok {
		return ports.ErrNotFound
	}
	r.store.players[p.ID] = p
	return nil
}
