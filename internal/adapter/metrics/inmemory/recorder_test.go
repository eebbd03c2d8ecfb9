package inmemory

import (
	"testing"

	"duskvale/internal/domain/quest"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordTurn(quest.TierSuccess, false)
	r.RecordTurn(quest.TierFail, true)
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.TurnTotal != 2 {
		t.Fatalf("expected turn total 2, got %d", s.TurnTotal)
	}
	if s.TurnConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.TurnConflict)
	}
	if s.TurnFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.TurnFailure)
	}
	if s.FallbackUsed != 1 {
		t.Fatalf("expected fallback 1, got %d", s.FallbackUsed)
	}
	if s.ByTier[string(quest.TierSuccess)] != 1 || s.ByTier[string(quest.TierFail)] != 1 {
		t.Fatalf("tier counts wrong: %+v", s.ByTier)
	}
}
