package session

import (
	"context"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPlayerRepo struct {
	byID map[string]quest.Player
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID string) (quest.Player, error) {
	p, ok := r.byID[playerID]
	if !ok {
		return quest.Player{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *stubPlayerRepo) GetByAnonID(_ context.Context, anonID string) (quest.Player, error) {
	for _, p := range r.byID {
		if p.AnonID == anonID {
			return p, nil
		}
	}
	return quest.Player{}, ports.ErrNotFound
}

func (r *stubPlayerRepo) Create(_ context.Context, p quest.Player) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPlayerRepo) Save(_ context.Context, p quest.Player) error {
	r.byID[p.ID] = p
	return nil
}

type stubSessionRepo struct {
	byID map[string]quest.Session
}

func (r *stubSessionRepo) GetByID(_ context.Context, sessionID string) (quest.Session, error) {
	s, ok := r.byID[sessionID]
	if !ok {
		return quest.Session{}, ports.ErrNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) GetForUpdate(ctx context.Context, sessionID string) (quest.Session, error) {
	return r.GetByID(ctx, sessionID)
}

func (r *stubSessionRepo) FindActiveByPlayer(_ context.Context, playerID string) (*quest.Session, error) {
	for _, s := range r.byID {
		if s.PlayerID == playerID && s.Status == quest.SessionActive {
			copy := s
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) Create(_ context.Context, s quest.Session) error {
	r.byID[s.ID] = s
	return nil
}

func (r *stubSessionRepo) Save(_ context.Context, s quest.Session) error {
	r.byID[s.ID] = s
	return nil
}

type stubEventRepo struct {
	events []quest.AuditEvent
}

func (r *stubEventRepo) Append(_ context.Context, events []quest.AuditEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]quest.AuditEvent, error) {
	out := []quest.AuditEvent{}
	for _, e := range r.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubResolver struct {
	narration string
	lastRoll  quest.RollResult
	calls     int
}

func (r *stubResolver) Resolve(_ context.Context, _ quest.Session, _ quest.Player, roll quest.RollResult, _ string, _ quest.TurnKind) (quest.EffectResult, bool) {
	r.lastRoll = roll
	r.calls++
	return quest.EffectResult{Narration: r.narration, Status: []string{}, Extra: map[string]any{}}, false
}
