package memory

import (
	"sync"

	"duskvale/internal/domain/quest"
)

// Store backs the repos for local runs and tests. Repos do not lock it
// themselves; TxManager holds the mutex for the whole transaction, which is
// what serializes concurrent turns the way the row lock does on Postgres.
type Store struct {
	mu       sync.Mutex
	players  map[string]quest.Player
	sessions map[string]quest.Session
	events   map[string][]quest.AuditEvent
}

func NewStore() *Store {
	return &Store{
		players:  make(map[string]quest.Player),
		sessions: make(map[string]quest.Session),
		events:   make(map[string][]quest.AuditEvent),
	}
}

func (s *Store) SeedPlayer(p quest.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

func (s *Store) SeedSession(sess quest.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}
