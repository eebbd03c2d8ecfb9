package gormrepo

import (
	"context"
	"errors"

	"duskvale/internal/adapter/repo/gorm/model"
	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) GetByID(ctx context.Context, sessionID string) (quest.Session, error) {
	var m model.GameSession
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quest.Session{}, ports.ErrNotFound
		}
		return quest.Session{}, err
	}
	return sessionFromModel(m), nil
}

// GetForUpdate reads the session under FOR UPDATE. The row lock lives until
// the surrounding transaction commits, so two turns on one session cannot
// interleave.
func (r SessionRepo) GetForUpdate(ctx context.Context, sessionID string) (quest.Session, error) {
	var m model.GameSession
	err := getDBFromCtx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", sessionID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quest.Session{}, ports.ErrNotFound
		}
		return quest.Session{}, err
	}
	return sessionFromModel(m), nil
}

func (r SessionRepo) FindActiveByPlayer(ctx context.Context, playerID string) (*quest.Session, error) {
	var m model.GameSession
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND status = ?", playerID, string(quest.SessionActive)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s := sessionFromModel(m)
	return &s, nil
}

func (r SessionRepo) Create(ctx context.Context, s quest.Session) error {
	m := sessionToModel(s)
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r SessionRepo) Save(ctx context.Context, s quest.Session) error {
	updates := map[string]any{
		"stage_index": int32(s.StageIndex),
		"turn":        int32(s.Turn),
		"status":      string(s.Status),
		"ended_at":    s.EndedAt,
	}
	res := getDBFromCtx(ctx, r.db).
		Model(&model.GameSession{}).
		Where("id = ?", s.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func sessionFromModel(m model.GameSession) quest.Session {
	return quest.Session{
		ID:         m.ID,
		PlayerID:   m.PlayerID,
		StageIndex: int(m.StageIndex),
		Turn:       int(m.Turn),
		Status:     quest.SessionStatus(m.Status),
		StartedAt:  m.StartedAt,
		EndedAt:    m.EndedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func sessionToModel(s quest.Session) model.GameSession {
	return model.GameSession{
		ID:         s.ID,
		PlayerID:   s.PlayerID,
		StageIndex: int32(s.StageIndex),
		Turn:       int32(s.Turn),
		Status:     string(s.Status),
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
	}
}
