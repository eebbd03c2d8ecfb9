package quest

import "time"

type SessionStatus string

const (
	SessionActive  SessionStatus = "ACTIVE"
	SessionDead    SessionStatus = "DEAD"
	SessionEscaped SessionStatus = "ESCAPED"
	SessionCleared SessionStatus = "CLEARED"
)

type TurnKind string

const (
	TurnCheckpoint TurnKind = "CHECKPOINT"
	TurnForcedMP   TurnKind = "FORCED_MP"
	TurnBoss       TurnKind = "BOSS"
	TurnNormal     TurnKind = "NORMAL"
)

type Tier string

const (
	TierFail    Tier = "fail"
	TierNeutral Tier = "neutral"
	TierSuccess Tier = "success"
	TierGreat   Tier = "great"
)

type ItemCode string

const (
	ItemHeal  ItemCode = "HEAL"
	ItemBoost ItemCode = "BOOST"
)

type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventSessionEnd   EventType = "session_end"
	EventClearGame    EventType = "clear_game"

	EventStageEnter EventType = "stage_enter"
	EventStageClear EventType = "stage_clear"

	EventTurnStart EventType = "turn_start"
	EventTurnEnd   EventType = "turn_end"

	EventActionResult EventType = "action_result"
	EventItemUsed     EventType = "item_used"

	EventManaOffered  EventType = "mana_event_offered"
	EventManaAccepted EventType = "mana_event_accepted"
	EventManaDeclined EventType = "mana_event_declined"

	EventCheckpoint EventType = "checkpoint"
	EventDeath      EventType = "death"
)

type Player struct {
	ID        string    `json:"id"`
	AnonID    string    `json:"anon_id,omitempty"`
	HP        int       `json:"hp"`
	MP        int       `json:"mp"`
	PotHeal   int       `json:"pot_heal"`
	PotBoost  int       `json:"pot_boost"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Session struct {
	ID         string        `json:"id"`
	PlayerID   string        `json:"player_id"`
	StageIndex int           `json:"stage_index"`
	Turn       int           `json:"turn"`
	Status     SessionStatus `json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    *time.Time    `json:"ended_at,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// RollResult is the full breakdown of one d20 roll after bonuses.
type RollResult struct {
	DiceRoll     int  `json:"dice_roll"`
	MPSpent      int  `json:"mp_spent"`
	BoostApplied bool `json:"boost_applied"`
	MPBonus      int  `json:"mp_bonus"`
	BoostBonus   int  `json:"boost_bonus"`
	TotalRoll    int  `json:"total_roll"`
	Tier         Tier `json:"tier"`
}

type Progress struct {
	StageIndex int `json:"stage_index"`
	Turn       int `json:"turn"`
}

type AdvanceResult struct {
	Progress     Progress `json:"progress"`
	ClearedStage bool     `json:"cleared_stage"`
	ClearedGame  bool     `json:"cleared_game"`
}

// EffectResult is a narrative-originated bundle of state deltas plus the
// narration text. Both the generated and the fallback path produce this
// shape; callers cannot tell which path built it.
type EffectResult struct {
	Narration  string         `json:"narration"`
	HPDelta    int            `json:"hp_delta"`
	MPDelta    int            `json:"mp_delta"`
	GrantHeal  int            `json:"grant_heal"`
	GrantBoost int            `json:"grant_boost"`
	Status     []string       `json:"status"`
	Extra      map[string]any `json:"extra"`
}

// AuditEvent is an immutable record of a game occurrence. The snapshot
// fields are captured at the moment the event is recorded, not at commit.
type AuditEvent struct {
	SessionID  string         `json:"session_id"`
	PlayerID   string         `json:"player_id"`
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	StageIndex int            `json:"stage_index"`
	Turn       int            `json:"turn"`
	HP         int            `json:"hp"`
	MP         int            `json:"mp"`
	PotHeal    int            `json:"pot_heal"`
	PotBoost   int            `json:"pot_boost"`
	Attrs      map[string]any `json:"attrs"`
}
