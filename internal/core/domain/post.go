package domain

import "time"

// Post is a "looking for group" listing. PartyCode is only populated by the
// backend for members who have joined.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	PartyCode      string    `json:"partyCode,omitempty"`
	TeamSize       int       `json:"teamSize"`
	CurrentPlayers int       `json:"currentPlayers"`
	Owner          *User     `json:"owner"`
	Game           *Game     `json:"game"`
	Rank           string    `json:"rank,omitempty"`
	VoiceChat      bool      `json:"voiceChat"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	HasJoined      bool      `json:"hasJoined"`
}

// PostDraft is the create-post request body. Limits mirror the backend's own
// validation so obviously bad drafts fail before the network call.
type PostDraft struct {
	Title     string `json:"title" validate:"required,max=200"`
	PartyCode string `json:"partyCode,omitempty" validate:"max=200"`
	TeamSize  int    `json:"teamSize" validate:"required,min=2"`
	GameID    int    `json:"gameId" validate:"required"`
	Rank      string `json:"rank,omitempty"`
	VoiceChat bool   `json:"voiceChat"`
	Mode      string `json:"mode,omitempty"`
}
