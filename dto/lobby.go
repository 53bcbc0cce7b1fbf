package dto

import "time"

// LobbyPayload is the wire shape of a lobby. The game and author arrive
// as nested objects; members is the full list of joined users.
type LobbyPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Game        *GamePayload  `json:"game"`
	Platform    string        `json:"platform"`
	Slots       int           `json:"slots"`
	FilledSlots int           `json:"filled_slots"`
	Members     []UserPayload `json:"members"`
	Author      *UserPayload  `json:"author"`
	StartTime   time.Time     `json:"start_time"`
	SkillLevel  int           `json:"skill_level"`
	Goal        string        `json:"goal"`
	Description *string       `json:"description"`
}

// LobbyWritePayload is the outbound shape for lobby creation and update.
// The game is referenced by id; start_time serializes as ISO-8601.
type LobbyWritePayload struct {
	Name        string    `json:"name"`
	GameID      string    `json:"game_id"`
	Platform    string    `json:"platform"`
	Slots       int       `json:"slots"`
	StartTime   time.Time `json:"start_time"`
	SkillLevel  int       `json:"skill_level"`
	Goal        string    `json:"goal"`
	Description *string   `json:"description"`
}

// LobbyListPayload wraps the lobby collection response.
type LobbyListPayload struct {
	Lobbies []LobbyPayload `json:"lobbies"`
}
