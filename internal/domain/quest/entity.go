package quest

import "time"

func (p *Player) AddHP(delta int) {
	p.HP = Clamp(p.HP+delta, 0, HPMax)
}

func (p *Player) AddMP(delta int) {
	p.MP = Clamp(p.MP+delta, 0, MPMax)
}

func (p *Player) PotionsTotal() int {
	heal := p.PotHeal
	if heal < 0 {
		heal = 0
	}
	boost := p.PotBoost
	if boost < 0 {
		boost = 0
	}
	return heal + boost
}

func NewPlayer(id, anonID string) Player {
	return Player{
		ID:       id,
		AnonID:   anonID,
		HP:       HPMax,
		MP:       MPMax,
		PotHeal:  1,
		PotBoost: 0,
	}
}

func NewSession(id, playerID string, startedAt time.Time) Session {
	return Session{
		ID:         id,
		PlayerID:   playerID,
		StageIndex: 1,
		Turn:       1,
		Status:     SessionActive,
		StartedAt:  startedAt,
	}
}

func (s *Session) IsActive() bool {
	return s.Status == SessionActive
}

// Close marks a terminal status. Status is monotone: a closed session
// never returns to ACTIVE.
func (s *Session) Close(status SessionStatus, at time.Time) {
	s.Status = status
	s.EndedAt = &at
}

func (s Session) Progress() Progress {
	return Progress{StageIndex: s.StageIndex, Turn: s.Turn}
}
