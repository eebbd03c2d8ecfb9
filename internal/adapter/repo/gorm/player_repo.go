package gormrepo

import (
	"context"
	"errors"

	"duskvale/internal/adapter/repo/gorm/model"
	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"

	"gorm.io/gorm"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID string) (quest.Player, error) {
	var m model.Player
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quest.Player{}, ports.ErrNotFound
		}
		return quest.Player{}, err
	}
	return playerFromModel(m), nil
}

func (r PlayerRepo) GetByAnonID(ctx context.Context, anonID string) (quest.Player, error) {
	var m model.Player
	if err := getDBFromCtx(ctx, r.db).Where("anon_id = ?", anonID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quest.Player{}, ports.ErrNotFound
		}
		return quest.Player{}, err
	}
	return playerFromModel(m), nil
}

func (r PlayerRepo) Create(ctx context.Context, p quest.Player) error {
	m := playerToModel(p)
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r PlayerRepo) Save(ctx context.Context, p quest.Player) error {
	updates := map[string]any{
		"hp":        int32(p.HP),
		"mp":        int32(p.MP),
		"pot_heal":  int32(p.PotHeal),
		"pot_boost": int32(p.PotBoost),
	}
	res := getDBFromCtx(ctx, r.db).
		Model(&model.Player{}).
		Where("id = ?", p.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func playerFromModel(m model.Player) quest.Player {
	return quest.Player{
		ID:        m.ID,
		AnonID:    m.AnonID,
		HP:        int(m.Hp),
		MP:        int(m.Mp),
		PotHeal:   int(m.PotHeal),
		PotBoost:  int(m.PotBoost),
		UpdatedAt: m.UpdatedAt,
	}
}

func playerToModel(p quest.Player) model.Player {
	return model.Player{
		ID:       p.ID,
		AnonID:   p.AnonID,
		Hp:       int32(p.HP),
		Mp:       int32(p.MP),
		PotHeal:  int32(p.PotHeal),
		PotBoost: int32(p.PotBoost),
	}
}
