package turn

import (
	"context"
	"errors"
	"strings"
	"time"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

var (
	ErrInvalidRequest   = errors.New("invalid turn request")
	ErrSessionNotActive = errors.New("session is not active")
)

// EffectResolver produces the turn's narrative effect. The second return
// reports whether the deterministic fallback built it; it feeds metrics and
// audit attributes only, never game logic.
type EffectResolver interface {
	Resolve(ctx context.Context, session quest.Session, player quest.Player, roll quest.RollResult, actionText string, kind quest.TurnKind) (quest.EffectResult, bool)
}

// UseCase resolves one turn as a single atomic unit: the session row stays
// locked from the first read to commit, so concurrent turns on the same
// session serialize and can never double-spend resources.
type UseCase struct {
	TxManager ports.TxManager
	Players   ports.PlayerRepository
	Sessions  ports.SessionRepository
	Events    ports.EventRepository
	Resolver  EffectResolver
	Metrics   ports.TurnMetrics
	Rand      quest.RandSource
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.ActionText = strings.TrimSpace(req.ActionText)
	if req.SessionID == "" || req.ActionText == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	src := req.Rand
	if src == nil {
		src = u.Rand
	}
	if src == nil {
		src = quest.SystemSource()
	}

	var out Response
	var usedFallback bool
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

		log := eventLog{session: &session, player: &player, now: nowFn}

		kind := quest.ClassifyTurn(session.Turn)

		if session.Turn == 1 {
			log.add(quest.EventStageEnter, map[string]any{"stage_index": session.StageIndex})
		}
		log.add(quest.EventTurnStart, map[string]any{"kind": kind, "action_text": req.ActionText})

		if kind == quest.TurnCheckpoint {
			healFull, mpPct, grantPots := quest.CheckpointEffects()
			if healFull {
				player.HP = quest.HPMax
			}
			if mpPct > 0 {
				player.AddMP(quest.MPMax * mpPct / 100)
			}
			if grantPots > 0 {
				player.PotHeal += grantPots
			}
			if err := u.Players.Save(txCtx, player); err != nil {
				return err
			}
			log.add(quest.EventCheckpoint, map[string]any{
				"heal_full":     healFull,
				"mp_pct":        mpPct,
				"grant_potions": grantPots,
			})
		}

		if kind == quest.TurnForcedMP {
			log.add(quest.EventManaOffered, map[string]any{"requested_mp": req.UseMP})
		}

		// Item use is best-effort: a shortfall downgrades the request to a
		// no-op, never an error.
		if req.UseHeal && player.PotHeal > 0 && player.MP >= quest.ItemMPCost {
			player.MP -= quest.ItemMPCost
			player.PotHeal--
			player.AddHP(quest.HealHPAmount)
			if err := u.Players.Save(txCtx, player); err != nil {
				return err
			}
			log.add(quest.EventItemUsed, map[string]any{
				"item":        quest.ItemHeal,
				"mp_cost":     quest.ItemMPCost,
				"heal_amount": quest.HealHPAmount,
			})
		}

		boostApplied := false
		if req.UseBoost && player.PotBoost > 0 && player.MP >= quest.ItemMPCost {
			player.MP -= quest.ItemMPCost
			player.PotBoost--
			boostApplied = true
			if err := u.Players.Save(txCtx, player); err != nil {
				return err
			}
			log.add(quest.EventItemUsed, map[string]any{
				"item":        quest.ItemBoost,
				"mp_cost":     quest.ItemMPCost,
				"boost_bonus": quest.BoostRollBonus,
			})
		}

		mpSpend := quest.SanitizeMPSpend(session.Turn, req.UseMP, player.MP)
		roll := quest.MakeRoll(src, mpSpend, boostApplied)

		var effect quest.EffectResult
		effect, usedFallback = u.Resolver.Resolve(txCtx, session, player, roll, req.ActionText, kind)

		player.AddHP(effect.HPDelta)
		player.AddMP(effect.MPDelta)
		player.PotHeal += effect.GrantHeal
		player.PotBoost += effect.GrantBoost
		if err := u.Players.Save(txCtx, player); err != nil {
			return err
		}

		// The roll spend was bounded to the pre-debit balance at sanitize
		// time; it is debited after the effect deltas, in that order.
		if roll.MPSpent > 0 {
			player.AddMP(-roll.MPSpent)
			if err := u.Players.Save(txCtx, player); err != nil {
				return err
			}
		}

		if kind == quest.TurnForcedMP {
			if roll.MPSpent > 0 {
				log.add(quest.EventManaAccepted, map[string]any{"mp_spent": roll.MPSpent})
			} else {
				log.add(quest.EventManaDeclined, map[string]any{"requested_mp": req.UseMP})
			}
		}

		resultAttrs := map[string]any{
			"action_text":   req.ActionText,
			"dice_roll":     roll.DiceRoll,
			"mp_spent_roll": roll.MPSpent,
			"mp_bonus":      roll.MPBonus,
			"boost_applied": roll.BoostApplied,
			"boost_bonus":   roll.BoostBonus,
			"total_roll":    roll.TotalRoll,
			"outcome":       roll.Tier,
			"fallback":      usedFallback,
		}
		for k, v := range effect.Attrs() {
			resultAttrs[k] = v
		}
		log.add(quest.EventActionResult, resultAttrs)

		if player.HP <= 0 {
			session.Close(quest.SessionDead, nowFn())
			if err := u.Sessions.Save(txCtx, session); err != nil {
				return err
			}
			log.add(quest.EventDeath, map[string]any{"reason": "hp<=0"})
			log.add(quest.EventSessionEnd, map[string]any{"status": quest.SessionDead})
			log.add(quest.EventTurnEnd, nil)
			out = Response{
				Kind:      kind,
				Narration: effect.Narration,
				Roll:      roll,
				Dead:      true,
				Session:   session,
				Player:    player,
			}
			return u.Events.Append(txCtx, log.events)
		}

		adv := quest.Advance(session.Progress())

		if adv.ClearedStage {
			log.add(quest.EventStageClear, map[string]any{"stage_index": session.StageIndex})
		}

		if adv.ClearedGame {
			session.Close(quest.SessionCleared, nowFn())
			if err := u.Sessions.Save(txCtx, session); err != nil {
				return err
			}
			log.add(quest.EventClearGame, nil)
			log.add(quest.EventSessionEnd, map[string]any{"status": quest.SessionCleared})
			log.add(quest.EventTurnEnd, nil)
			out = Response{
				Kind:         kind,
				Narration:    effect.Narration,
				Roll:         roll,
				ClearedStage: true,
				ClearedGame:  true,
				Session:      session,
				Player:       player,
			}
			return u.Events.Append(txCtx, log.events)
		}

		session.StageIndex = adv.Progress.StageIndex
		session.Turn = adv.Progress.Turn
		if err := u.Sessions.Save(txCtx, session); err != nil {
			return err
		}

		if adv.ClearedStage && session.Turn == 1 {
			log.add(quest.EventStageEnter, map[string]any{"stage_index": session.StageIndex})
		}
		log.add(quest.EventTurnEnd, nil)

		out = Response{
			Kind:         kind,
			Narration:    effect.Narration,
			Roll:         roll,
			ClearedStage: adv.ClearedStage,
			Session:      session,
			Player:       player,
		}
		return u.Events.Append(txCtx, log.events)
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordTurn(out.Roll.Tier, usedFallback)
	}
	return out, nil
}

// eventLog buffers audit events for one turn, snapshotting session and
// player state at record time. The whole buffer is appended inside the
// transaction, so an abort leaves no partial trail.
type eventLog struct {
	session *quest.Session
	player  *quest.Player
	now     func() time.Time
	events  []quest.AuditEvent
}

func (l *eventLog) add(t quest.EventType, attrs map[string]any) {
	if attrs == nil {
		attrs = map[string]any{}
	}
	l.events = append(l.events, quest.AuditEvent{
		SessionID:  l.session.ID,
		PlayerID:   l.player.ID,
		Type:       t,
		OccurredAt: l.now(),
		StageIndex: l.session.StageIndex,
		Turn:       l.session.Turn,
		HP:         l.player.HP,
		MP:         l.player.MP,
		PotHeal:    l.player.PotHeal,
		PotBoost:   l.player.PotBoost,
		Attrs:      attrs,
	})
}
