package model

import "time"

type Player struct {
	ID        string    `gorm:"column:id;primaryKey"`
	AnonID    string    `gorm:"column:anon_id;uniqueIndex"`
	Hp        int32     `gorm:"column:hp"`
	Mp        int32     `gorm:"column:mp"`
	PotHeal   int32     `gorm:"column:pot_heal"`
	PotBoost  int32     `gorm:"column:pot_boost"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Player) TableName() string { return "players" }

type GameSession struct {
	ID         string     `gorm:"column:id;primaryKey"`
	PlayerID   string     `gorm:"column:player_id;index"`
	StageIndex int32      `gorm:"column:stage_index"`
	Turn       int32      `gorm:"column:turn"`
	Status     string     `gorm:"column:status"`
	StartedAt  time.Time  `gorm:"column:started_at"`
	EndedAt    *time.Time `gorm:"column:ended_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (GameSession) TableName() string { return "game_sessions" }

type AuditEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID  string    `gorm:"column:session_id;index"`
	PlayerID   string    `gorm:"column:player_id"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	StageIndex int32     `gorm:"column:stage_index"`
	Turn       int32     `gorm:"column:turn"`
	Hp         int32     `gorm:"column:hp"`
	Mp         int32     `gorm:"column:mp"`
	PotHeal    int32     `gorm:"column:pot_heal"`
	PotBoost   int32     `gorm:"column:pot_boost"`
	Attrs      []byte    `gorm:"column:attrs;type:jsonb"`
}

func (AuditEvent) TableName() string { return "audit_events" }
