package gormrepo

import (
	"context"
	"encoding/json"

	"duskvale/internal/adapter/repo/gorm/model"
	"duskvale/internal/domain/quest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []quest.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.AuditEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Attrs)
		rows = append(rows, model.AuditEvent{
			SessionID:  e.SessionID,
			PlayerID:   e.PlayerID,
			Type:       string(e.Type),
			OccurredAt: e.OccurredAt,
			StageIndex: int32(e.StageIndex),
			Turn:       int32(e.Turn),
			Hp:         int32(e.HP),
			Mp:         int32(e.MP),
			PotHeal:    int32(e.PotHeal),
			PotBoost:   int32(e.PotBoost),
			Attrs:      b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]quest.AuditEvent, error) {
	rows := []model.AuditEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.AuditEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]quest.AuditEvent, 0, len(rows))
	for _, row := range rows {
		var attrs map[string]any
		if len(row.Attrs) > 0 {
			_ = json.Unmarshal(row.Attrs, &attrs)
		}
		out = append(out, quest.AuditEvent{
			SessionID:  row.SessionID,
			PlayerID:   row.PlayerID,
			Type:       quest.EventType(row.Type),
			OccurredAt: row.OccurredAt,
			StageIndex: int(row.StageIndex),
			Turn:       int(row.Turn),
			HP:         int(row.Hp),
			MP:         int(row.Mp),
			PotHeal:    int(row.PotHeal),
			PotBoost:   int(row.PotBoost),
			Attrs:      attrs,
		})
	}
	return out, nil
}
