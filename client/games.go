package client

import (
	"context"
	"strings"
	"time"

	"teamup/dto"
	"teamup/viewmodel"
)

// Games lists the game options presented by the pickers.
func (c *Client) Games(ctx context.Context) ([]viewmodel.Game, error) {
	var payload dto.GameListPayload
	if err := c.get(ctx, "/api/games", nil, &payload); err != nil {
		return nil, err
	}

	games := make([]viewmodel.Game, len(payload.Games))
	for i, p := range payload.Games {
		games[i] = viewmodel.GameFromPayload(p)
	}
	return games, nil
}

// CreateGame registers a game title on demand. The server answers with
// the existing record when the name is already known.
func (c *Client) CreateGame(ctx context.Context, name string) (viewmodel.Game, error) {
	payload := dto.GameWritePayload{
		Name:        name,
		Description: "Added by a user",
		ReleaseDate: time.Now().Format("2006-01-02"),
	}

	var created dto.GamePayload
	if err := c.post(ctx, "/api/games", payload, &created); err != nil {
		return viewmodel.Game{}, err
	}
	return viewmodel.GameFromPayload(created), nil
}

// ensureGame resolves a display name to a game record, creating the
// game when the user supplied a title outside the known list.
func (c *Client) ensureGame(ctx context.Context, name string) (viewmodel.Game, error) {
	games, err := c.Games(ctx)
	if err != nil {
		return viewmodel.Game{}, err
	}
	for _, g := range games {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return c.CreateGame(ctx, name)
}
