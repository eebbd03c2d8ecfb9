package replay

import "duskvale/internal/domain/quest"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// Snapshot is the player and progress state reconstructed from the last
// event in the window. Audit events carry the state after each step, so a
// replay needs no access to the live rows.
type Snapshot struct {
	StageIndex int `json:"stageIndex"`
	Turn       int `json:"turn"`
	HP         int `json:"hp"`
	MP         int `json:"mp"`
	PotHeal    int `json:"potHeal"`
	PotBoost   int `json:"potBoost"`
}

type Response struct {
	Events      []quest.AuditEvent `json:"events"`
	LatestState Snapshot           `json:"latestState"`
}
