package ports

import "duskvale/internal/domain/quest"

type TurnMetrics interface {
	RecordTurn(tier quest.Tier, fallback bool)
	RecordConflict()
	RecordFailure()
}
