package turn

import "duskvale/internal/domain/quest"

type Request struct {
	SessionID  string
	PlayerID   string
	ActionText string
	UseMP      int
	UseHeal    bool
	UseBoost   bool
	// Rand overrides the usecase's roll source for this call; used for
	// seeded replay. Nil means the configured default.
	Rand quest.RandSource
}

type Response struct {
	Kind         quest.TurnKind   `json:"kind"`
	Narration    string           `json:"narration"`
	Roll         quest.RollResult `json:"roll"`
	Dead         bool             `json:"dead"`
	ClearedStage bool             `json:"cleared_stage"`
	ClearedGame  bool             `json:"cleared_game"`
	Session      quest.Session    `json:"session"`
	Player       quest.Player     `json:"player"`
}
