package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"duskvale/internal/app/narrative"
	"duskvale/internal/app/turn"
	"duskvale/internal/domain/quest"
)

type fixedSource struct{ value int }

func (s fixedSource) Intn(int) int { return s.value }

// Two turns fired at the same session must serialize: the heal potion and
// its mana cost can only be consumed once, and the turn counter advances
// exactly twice.
func TestConcurrentTurnsSerialize(t *testing.T) {
	store := NewStore()
	player := quest.NewPlayer("p1", "anon-1")
	player.HP = 15
	player.MP = 10
	player.PotHeal = 1
	store.SeedPlayer(player)
	sess := quest.NewSession("s1", "p1", time.Now().UTC())
	sess.Turn = 2
	store.SeedSession(sess)

	events := NewEventRepo(store)
	uc := turn.UseCase{
		TxManager: NewTxManager(store),
		Players:   NewPlayerRepo(store),
		Sessions:  NewSessionRepo(store),
		Events:    events,
		Resolver:  narrative.Resolver{},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), turn.Request{
				SessionID:  "s1",
				ActionText: "Drink and push deeper into the dark",
				UseHeal:    true,
				Rand:       fixedSource{value: 9},
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	got, err := NewPlayerRepo(store).GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.PotHeal != 0 {
		t.Fatalf("pot_heal = %d, want 0 (consumed exactly once)", got.PotHeal)
	}
	if got.MP != 9 {
		t.Fatalf("mp = %d, want 9 (one potion cost)", got.MP)
	}
	if got.HP != 25 {
		t.Fatalf("hp = %d, want 25 (one heal on a neutral roll)", got.HP)
	}

	s, err := NewSessionRepo(store).GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if s.StageIndex != 1 || s.Turn != 4 {
		t.Fatalf("progress = (%d,%d), want (1,4)", s.StageIndex, s.Turn)
	}

	trail, _ := events.ListBySessionID(context.Background(), "s1", 0)
	starts, heals := 0, 0
	for _, e := range trail {
		switch e.Type {
		case quest.EventTurnStart:
			starts++
		case quest.EventItemUsed:
			heals++
		}
	}
	if starts != 2 {
		t.Fatalf("turn_start events = %d, want 2", starts)
	}
	if heals != 1 {
		t.Fatalf("item_used events = %d, want 1", heals)
	}
}
