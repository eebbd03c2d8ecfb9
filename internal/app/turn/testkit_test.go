package turn

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
	err    error
}

func (r *stubEventRepo) Append(_ context.Context, events []quest.AuditEvent) error {
	if r.err != nil {
		return r.err
	}
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

// stubResolver returns a fixed effect, validated the way the real resolver
// would validate it.
type stubResolver struct {
	effect   quest.EffectResult
	fallback bool

	lastRoll quest.RollResult
	lastKind quest.TurnKind
}

func (r *stubResolver) Resolve(_ context.Context, _ quest.Session, player quest.Player, roll quest.RollResult, _ string, kind quest.TurnKind) (quest.EffectResult, bool) {
	r.lastRoll = roll
	r.lastKind = kind
	effect := r.effect
	if effect.Narration == "" {
		effect.Narration = "the valley holds its breath"
	}
	return quest.ValidateEffect(effect, player), r.fallback
}

type fixedSource struct {
	value int
}

func (f fixedSource) Intn(n int) int {
	return f.value % n
}

type recordingMetrics struct {
	turns     int
	fallbacks int
	conflicts int
	failures  int
	lastTier  quest.Tier
}

func (m *recordingMetrics) RecordTurn(tier quest.Tier, fallback bool) {
	m.turns++
	m.lastTier = tier
	if fallback {
		m.fallbacks++
	}
}

func (m *recordingMetrics) RecordConflict() { m.conflicts++ }
func (m *recordingMetrics) RecordFailure()  { m.failures++ }

func eventTypes(events []quest.AuditEvent) []quest.EventType {
	out := make([]quest.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func hasEvent(events []quest.AuditEvent, t quest.EventType) bool {
	for _, e := range events {
		if e.Type == t {
			return true
		}
	}
	return false
}
