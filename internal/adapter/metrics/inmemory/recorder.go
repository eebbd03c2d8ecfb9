package inmemory

import (
	"sync"

	"duskvale/internal/domain/quest"
)

type Snapshot struct {
	TurnTotal    uint64            `json:"turn_total"`
	TurnConflict uint64            `json:"turn_conflict"`
	TurnFailure  uint64            `json:"turn_failure"`
	ByTier       map[string]uint64 `json:"by_tier"`
	FallbackUsed uint64            `json:"fallback_used"`
}

type Recorder struct {
	mu       sync.Mutex
	turns    uint64
	conflict uint64
	failure  uint64
	byTier   map[string]uint64
	fallback uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTier: map[string]uint64{},
	}
}

func (r *Recorder) RecordTurn(tier quest.Tier, fallback bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	r.byTier[string(tier)]++
	if fallback {
		r.fallback++
	}
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnTotal:    r.turns,
		TurnConflict: r.conflict,
		TurnFailure:  r.failure,
		FallbackUsed: r.fallback,
		ByTier:       make(map[string]uint64, len(r.byTier)),
	}
	for k, v := range r.byTier {
		out.ByTier[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
