package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

var (
	ErrInvalidRequest   = errors.New("invalid session request")
	ErrSessionNotActive = errors.New("session is not active")
)

// EffectResolver matches the turn resolver; Intro reuses it with a neutral
// pseudo-roll so the opening scene speaks with the same voice as the turns.
type EffectResolver interface {
	Resolve(ctx context.Context, session quest.Session, player quest.Player, roll quest.RollResult, actionText string, kind quest.TurnKind) (quest.EffectResult, bool)
}

// UseCase covers the session lifecycle around the turn loop: starting or
// resuming a run, reading its state, walking away early, and narrating the
// entry into the current stage.
type UseCase struct {
	TxManager ports.TxManager
	Players   ports.PlayerRepository
	Sessions  ports.SessionRepository
	Events    ports.EventRepository
	Resolver  EffectResolver
	Now       func() time.Time
	NewID     func() string
}

// Start returns the player's active session, creating the player and a fresh
// session when none exists. A player only ever has one active run.
func (u UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	req.AnonID = strings.TrimSpace(req.AnonID)
	if req.AnonID == "" {
		return StartResponse{}, ErrInvalidRequest
	}

	nowFn := u.nowFn()
	var out StartResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		player, err := u.Players.GetByAnonID(txCtx, req.AnonID)
		if errors.Is(err, ports.ErrNotFound) {
			player = quest.NewPlayer(u.NewID(), req.AnonID)
			if err := u.Players.Create(txCtx, player); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		existing, err := u.Sessions.FindActiveByPlayer(txCtx, player.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = StartResponse{Session: *existing, Player: player, Resumed: true}
			return nil
		}

		created := quest.NewSession(u.NewID(), player.ID, nowFn())
		if err := u.Sessions.Create(txCtx, created); err != nil {
			return err
		}
		ev := quest.AuditEvent{
			SessionID:  created.ID,
			PlayerID:   player.ID,
			Type:       quest.EventSessionStart,
			OccurredAt: nowFn(),
			StageIndex: created.StageIndex,
			Turn:       created.Turn,
			HP:         player.HP,
			MP:         player.MP,
			PotHeal:    player.PotHeal,
			PotBoost:   player.PotBoost,
			Attrs:      map[string]any{},
		}
		if err := u.Events.Append(txCtx, []quest.AuditEvent{ev}); err != nil {
			return err
		}
		out = StartResponse{Session: created, Player: player, Resumed: false}
		return nil
	})
	if err != nil {
		return StartResponse{}, err
	}
	return out, nil
}

// State reads a session and its player without touching either.
func (u UseCase) State(ctx context.Context, req StateRequest) (StateResponse, error) {
	session, player, err := u.load(ctx, req.SessionID, req.PlayerID)
	if err != nil {
		return StateResponse{}, err
	}
	return StateResponse{Session: session, Player: player}, nil
}

// End closes an active session as ESCAPED: the player walked away alive but
// without clearing the valley.
func (u UseCase) End(ctx context.Context, req EndRequest) (EndResponse, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return EndResponse{}, ErrInvalidRequest
	}

	nowFn := u.nowFn()
	var out EndResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := u.Sessions.GetForUpdate(txCtx, req.SessionID)
		if err != nil {
			return err
		}
		if req.PlayerID != "" && session.PlayerID != req.PlayerID {
			return ports.ErrNotFound
		}
		if !session.IsActive() {
			return ErrSessionNotActive
		}
		player, err := u.Players.GetByID(txCtx, session.PlayerID)
		if err != nil {
			return err
		}

		session.Close(quest.SessionEscaped, nowFn())
		if err := u.Sessions.Save(txCtx, session); err != nil {
			return err
		}
		ev := quest.AuditEvent{
			SessionID:  session.ID,
			PlayerID:   player.ID,
			Type:       quest.EventSessionEnd,
			OccurredAt: nowFn(),
			StageIndex: session.StageIndex,
			Turn:       session.Turn,
			HP:         player.HP,
			MP:         player.MP,
			PotHeal:    player.PotHeal,
			PotBoost:   player.PotBoost,
			Attrs:      map[string]any{"status": string(quest.SessionEscaped)},
		}
		if err := u.Events.Append(txCtx, []quest.AuditEvent{ev}); err != nil {
			return err
		}
		out = EndResponse{Session: session}
		return nil
	})
	if err != nil {
		return EndResponse{}, err
	}
	return out, nil
}

// Intro narrates the entry into the session's current stage. It runs through
// the same resolver as a turn, on a flat neutral pseudo-roll, and persists
// nothing: the narration is scenery, not an action.
func (u UseCase) Intro(ctx context.Context, req IntroRequest) (IntroResponse, error) {
	session, player, err := u.load(ctx, req.SessionID, req.PlayerID)
	if err != nil {
		return IntroResponse{}, err
	}
	if !session.IsActive() {
		return IntroResponse{}, ErrSessionNotActive
	}

	roll := quest.RollResult{
		DiceRoll:  10,
		TotalRoll: 10,
		Tier:      quest.TierNeutral,
	}
	effect, _ := u.Resolver.Resolve(ctx, session, player, roll,
		"Take in the surroundings and steady yourself", quest.ClassifyTurn(session.Turn))
	return IntroResponse{Session: session, Player: player, Narration: effect.Narration}, nil
}

func (u UseCase) load(ctx context.Context, sessionID, playerID string) (quest.Session, quest.Player, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return quest.Session{}, quest.Player{}, ErrInvalidRequest
	}
	session, err := u.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return quest.Session{}, quest.Player{}, err
	}
	if playerID != "" && session.PlayerID != playerID {
		return quest.Session{}, quest.Player{}, ports.ErrNotFound
	}
	player, err := u.Players.GetByID(ctx, session.PlayerID)
	if err != nil {
		return quest.Session{}, quest.Player{}, err
	}
	return session, player, nil
}

func (u UseCase) nowFn() func() time.Time {
	if u.Now != nil {
		return u.Now
	}
	return time.Now
}
