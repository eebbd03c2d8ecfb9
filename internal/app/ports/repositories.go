package ports

import (
	"context"

	"duskvale/internal/domain/quest"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, playerID string) (quest.Player, error)
	GetByAnonID(ctx context.Context, anonID string) (quest.Player, error)
	Create(ctx context.Context, player quest.Player) error
	Save(ctx context.Context, player quest.Player) error
}

type SessionRepository interface {
	GetByID(ctx context.Context, sessionID string) (quest.Session, error)
	// GetForUpdate takes the session row lock for the duration of the
	// surrounding transaction, serializing concurrent turns on one session.
	GetForUpdate(ctx context.Context, sessionID string) (quest.Session, error)
	FindActiveByPlayer(ctx context.Context, playerID string) (*quest.Session, error)
	Create(ctx context.Context, session quest.Session) error
	Save(ctx context.Context, session quest.Session) error
}

// EventRepository is append-only. The engine writes audit events and never
// reads them back; ListBySessionID exists for the replay surface only.
type EventRepository interface {
	Append(ctx context.Context, events []quest.AuditEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]quest.AuditEvent, error)
}
