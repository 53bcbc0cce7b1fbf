package viewmodel

import (
	"time"

	"teamup/apperrors"
	"teamup/dto"
)

// Lobby is the view-model of a scheduled group-play session. Players is
// the flat list of member ids; Creator always appears in it.
type Lobby struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Game          string    `json:"game"`
	Platform      string    `json:"platform"`
	Slots         int       `json:"slots"`
	FilledSlots   int       `json:"filledSlots"`
	Players       []string  `json:"players"`
	Creator       string    `json:"creator"`
	ScheduledTime time.Time `json:"scheduledTime"`
	SkillLevel    int       `json:"skillLevel"`
	Goal          string    `json:"goal"`
	Description   string    `json:"description"`
}

// HasOpenSlots reports whether another player can still join.
func (l Lobby) HasOpenSlots() bool {
	return l.FilledSlots < l.Slots
}

// LobbyFromPayload converts a wire lobby into its view-model. The nested
// game resolves to its display name and members flatten to ids;
// filledSlots is derived from the member list. A payload missing its
// game or author, or whose author is not among the members, fails with a
// MalformedResponse error.
func LobbyFromPayload(p dto.LobbyPayload) (Lobby, error) {
	if p.Game == nil {
		return Lobby{}, apperrors.New(apperrors.MalformedResponse,
			"Lobby response is missing its game")
	}
	if p.Author == nil {
		return Lobby{}, apperrors.New(apperrors.MalformedResponse,
			"Lobby response is missing its author")
	}
	players := make([]string, len(p.Members))
	creatorJoined := false
	for i, m := range p.Members {
		players[i] = m.ID
		if m.ID == p.Author.ID {
			creatorJoined = true
		}
	}
	if !creatorJoined {
		return Lobby{}, apperrors.New(apperrors.MalformedResponse,
			"Lobby response author is not among the members")
	}
	return Lobby{
		ID:            p.ID,
		Name:          p.Name,
		Game:          p.Game.Name,
		Platform:      p.Platform,
		Slots:         p.Slots,
		FilledSlots:   len(p.Members),
		Players:       players,
		Creator:       p.Author.ID,
		ScheduledTime: p.StartTime,
		SkillLevel:    p.SkillLevel,
		Goal:          p.Goal,
		Description:   deref(p.Description),
	}, nil
}

// WritePayload builds the outbound create/update shape. The game travels
// as an id reference resolved by the caller; an empty description
// becomes an explicit null.
func (l Lobby) WritePayload(gameID string) dto.LobbyWritePayload {
	return dto.LobbyWritePayload{
		Name:        l.Name,
		GameID:      gameID,
		Platform:    l.Platform,
		Slots:       l.Slots,
		StartTime:   l.ScheduledTime,
		SkillLevel:  l.SkillLevel,
		Goal:        l.Goal,
		Description: nullable(l.Description),
	}
}
