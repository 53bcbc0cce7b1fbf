package viewmodel

import (
	"time"

	"teamup/apperrors"
	"teamup/dto"
)

// Request is the view-model of a teammate request ("bid"): an open,
// undated ask posted by a user, not tied to a scheduled session.
type Request struct {
	ID              string    `json:"id"`
	Creator         string    `json:"creator"`
	CreatorUsername string    `json:"creatorUsername"`
	Game            string    `json:"game"`
	Description     string    `json:"description"`
	Preferences     string    `json:"preferences"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RequestFromPayload converts a wire bid into its view-model, resolving
// the nested author into a creator id plus denormalized username and the
// nested game into its display name. A payload missing either nested
// object fails with a MalformedResponse error.
func RequestFromPayload(p dto.BidPayload) (Request, error) {
	if p.Author == nil {
		return Request{}, apperrors.New(apperrors.MalformedResponse,
			"Request response is missing its author")
	}
	if p.Game == nil {
		return Request{}, apperrors.New(apperrors.MalformedResponse,
			"Request response is missing its game")
	}
	return Request{
		ID:              p.ID,
		Creator:         p.Author.ID,
		CreatorUsername: p.Author.Username,
		Game:            p.Game.Name,
		Description:     p.Description,
		Preferences:     deref(p.Details),
		CreatedAt:       p.CreatedAt,
	}, nil
}

// WritePayload builds the outbound create shape, with empty preferences
// normalized to an explicit null.
func (r Request) WritePayload(gameID string) dto.BidWritePayload {
	return dto.BidWritePayload{
		GameID:      gameID,
		Description: r.Description,
		Details:     nullable(r.Preferences),
	}
}

// Game is the view-model of a game option presented by the pickers.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameFromPayload converts a wire game into its view-model.
func GameFromPayload(p dto.GamePayload) Game {
	return Game{ID: p.ID, Name: p.Name}
}
