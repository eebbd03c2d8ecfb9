package session

import "duskvale/internal/domain/quest"

type StartRequest struct {
	AnonID string
}

type StartResponse struct {
	Session quest.Session `json:"session"`
	Player  quest.Player  `json:"player"`
	Resumed bool          `json:"resumed"`
}

type StateRequest struct {
	SessionID string
	PlayerID  string
}

type StateResponse struct {
	Session quest.Session `json:"session"`
	Player  quest.Player  `json:"player"`
}

type EndRequest struct {
	SessionID string
	PlayerID  string
}

type EndResponse struct {
	Session quest.Session `json:"session"`
}

type IntroRequest struct {
	SessionID string
	PlayerID  string
}

type IntroResponse struct {
	Session   quest.Session `json:"session"`
	Player    quest.Player  `json:"player"`
	Narration string        `json:"narration"`
}
