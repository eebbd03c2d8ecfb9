package quest

const (
	StagesTotal   = 10
	TurnsPerStage = 10

	HPMax = 30
	MPMax = 10

	DiceMin = 1
	DiceMax = 20

	MPBonusPerPoint = 5
	BoostRollBonus  = 5

	ItemMPCost   = 1
	HealHPAmount = 10

	CheckpointHealFull     = true
	CheckpointRestoreMPPct = 50
	CheckpointGrantPotions = 1

	EffectHPDeltaBound = 50
	EffectMPDeltaBound = 10
	EffectGrantMax     = 2

	FallbackFailHPDelta     = -8
	FallbackGreatGrantBoost = 1
)

var checkpointTurns = map[int]bool{1: true, 5: true}

var forcedMPTurns = map[int]bool{3: true, 6: true, 9: true}

// tierBounds maps each tier to its inclusive total-roll range. Totals below
// the fail floor stay fail, totals above the great ceiling stay great.
var tierBounds = []struct {
	Tier Tier
	Lo   int
	Hi   int
}{
	{TierFail, 1, 5},
	{TierNeutral, 6, 12},
	{TierSuccess, 13, 17},
	{TierGreat, 18, 20},
}
