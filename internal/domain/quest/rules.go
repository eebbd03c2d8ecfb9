package quest

// RandSource draws the raw die value. Injected per call so a fixed seed
// reproduces a full turn for replay and tests.
type RandSource interface {
	// Intn returns a non-negative random int in [0, n). n must be > 0.
	Intn(n int) int
}

func IsCheckpointTurn(turn int) bool {
	return checkpointTurns[turn]
}

func IsForcedMPTurn(turn int) bool {
	return forcedMPTurns[turn]
}

func IsBossTurn(turn int) bool {
	return turn == TurnsPerStage
}

// ClassifyTurn is total over 1..TurnsPerStage; callers keep turn in range.
func ClassifyTurn(turn int) TurnKind {
	switch {
	case IsCheckpointTurn(turn):
		return TurnCheckpoint
	case IsForcedMPTurn(turn):
		return TurnForcedMP
	case IsBossTurn(turn):
		return TurnBoss
	default:
		return TurnNormal
	}
}

// SanitizeMPSpend computes the legal roll-boost spend for a turn. MP may
// only be spent on forced-MP turns, never negative, never above balance.
// The caller debits the actual amount.
func SanitizeMPSpend(turn, requestedMP, availableMP int) int {
	if !IsForcedMPTurn(turn) {
		return 0
	}
	if requestedMP < 0 {
		requestedMP = 0
	}
	if requestedMP > availableMP {
		requestedMP = availableMP
	}
	return requestedMP
}

func TierFromTotal(totalRoll int) Tier {
	for _, b := range tierBounds {
		if totalRoll >= b.Lo && totalRoll <= b.Hi {
			return b.Tier
		}
	}
	if totalRoll < tierBounds[0].Lo {
		return TierFail
	}
	return TierGreat
}

// MakeRoll draws one d20 from src and folds in the MP and boost bonuses.
// mpSpent is assumed sanitized already (SanitizeMPSpend).
func MakeRoll(src RandSource, mpSpent int, boostApplied bool) RollResult {
	if src == nil {
		panic("quest: MakeRoll requires a randomness source")
	}
	if mpSpent < 0 {
		mpSpent = 0
	}
	dice := DiceMin + src.Intn(DiceMax-DiceMin+1)
	mpBonus := mpSpent * MPBonusPerPoint
	boostBonus := 0
	if boostApplied {
		boostBonus = BoostRollBonus
	}
	total := dice + mpBonus + boostBonus
	return RollResult{
		DiceRoll:     dice,
		MPSpent:      mpSpent,
		BoostApplied: boostApplied,
		MPBonus:      mpBonus,
		BoostBonus:   boostBonus,
		TotalRoll:    total,
		Tier:         TierFromTotal(total),
	}
}

// CheckpointEffects returns the fixed checkpoint rule tuple. The orchestrator
// applies it to the player and clamps.
func CheckpointEffects() (healFull bool, restoreMPPct int, grantPotions int) {
	return CheckpointHealFull, CheckpointRestoreMPPct, CheckpointGrantPotions
}

func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
