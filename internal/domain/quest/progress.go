package quest

// Advance moves (stage, turn) forward after a turn fully resolves. On the
// last turn of the last stage the terminal progress value is preserved so
// the caller can report it while closing the session.
func Advance(p Progress) AdvanceResult {
	if p.Turn >= TurnsPerStage {
		if p.StageIndex >= StagesTotal {
			return AdvanceResult{Progress: p, ClearedStage: true, ClearedGame: true}
		}
		return AdvanceResult{
			Progress:     Progress{StageIndex: p.StageIndex + 1, Turn: 1},
			ClearedStage: true,
		}
	}
	return AdvanceResult{Progress: Progress{StageIndex: p.StageIndex, Turn: p.Turn + 1}}
}

// NewProgress is the starting point for a fresh session.
func NewProgress() Progress {
	return Progress{StageIndex: 1, Turn: 1}
}
