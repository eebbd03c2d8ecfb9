package replay

import (
	"context"
	"errors"
	"strings"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListBySessionID(ctx, req.SessionID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, LatestState: reconstruct(events)}, nil
}

func filterByTimeWindow(events []quest.AuditEvent, from, to int64) []quest.AuditEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]quest.AuditEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func reconstruct(events []quest.AuditEvent) Snapshot {
	state := Snapshot{}
	for _, evt := range events {
		state.StageIndex = evt.StageIndex
		state.Turn = evt.Turn
		state.HP = evt.HP
		state.MP = evt.MP
		state.PotHeal = evt.PotHeal
		state.PotBoost = evt.PotBoost
	}
	return state
}
