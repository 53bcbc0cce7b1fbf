package client

import (
	"context"
	"net/url"
	"strconv"

	"teamup/apperrors"
	"teamup/dto"
	"teamup/validate"
	"teamup/viewmodel"
)

// LobbyFilters narrows a lobby listing. Zero values mean "no filter".
type LobbyFilters struct {
	Game     string
	Platform string
	MinSkill int
	MaxSkill int
	HasSlots bool
}

// Lobbies lists every lobby.
func (c *Client) Lobbies(ctx context.Context) ([]viewmodel.Lobby, error) {
	return c.FilterLobbies(ctx, LobbyFilters{})
}

// FilterLobbies lists the lobbies matching the filters.
func (c *Client) FilterLobbies(ctx context.Context, filters LobbyFilters) ([]viewmodel.Lobby, error) {
	query := url.Values{}
	if filters.Game != "" {
		query.Set("game", filters.Game)
	}
	if filters.Platform != "" {
		query.Set("platform", filters.Platform)
	}
	if filters.MinSkill > 0 {
		query.Set("min_skill", strconv.Itoa(filters.MinSkill))
	}
	if filters.MaxSkill > 0 {
		query.Set("max_skill", strconv.Itoa(filters.MaxSkill))
	}
	if filters.HasSlots {
		query.Set("has_slots", "true")
	}

	var payload dto.LobbyListPayload
	if err := c.get(ctx, "/api/lobbies", query, &payload); err != nil {
		return nil, err
	}

	lobbies := make([]viewmodel.Lobby, len(payload.Lobbies))
	for i, p := range payload.Lobbies {
		lobby, err := viewmodel.LobbyFromPayload(p)
		if err != nil {
			return nil, err
		}
		lobbies[i] = lobby
	}
	return lobbies, nil
}

// Lobby fetches one lobby by id.
func (c *Client) Lobby(ctx context.Context, id string) (viewmodel.Lobby, error) {
	var payload dto.LobbyPayload
	if err := c.get(ctx, fmtPath("/api/lobbies/%s", id), nil, &payload); err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return viewmodel.Lobby{}, apperrors.New(apperrors.NotFound, "Lobby not found")
		}
		return viewmodel.Lobby{}, err
	}
	return viewmodel.LobbyFromPayload(payload)
}

// CreateLobby validates the form, resolves the picked game (creating it
// on demand for "Other" entries) and creates the lobby.
func (c *Client) CreateLobby(ctx context.Context, form validate.LobbyForm) (viewmodel.Lobby, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return viewmodel.Lobby{}, apperrors.NewValidation(errs)
	}
	startTime, err := form.StartTime()
	if err != nil {
		return viewmodel.Lobby{}, apperrors.NewValidation(map[string]string{
			"scheduledDate": "Date and time must be valid",
		})
	}

	game, err := c.ensureGame(ctx, form.GameName())
	if err != nil {
		return viewmodel.Lobby{}, err
	}

	lobby := viewmodel.Lobby{
		Name:          form.Name,
		Game:          game.Name,
		Platform:      form.Platform,
		Slots:         form.Slots,
		ScheduledTime: startTime,
		SkillLevel:    form.SkillLevel,
		Goal:          form.Goal,
		Description:   form.Description,
	}

	var payload dto.LobbyPayload
	if err := c.post(ctx, "/api/lobbies", lobby.WritePayload(game.ID), &payload); err != nil {
		return viewmodel.Lobby{}, err
	}
	return viewmodel.LobbyFromPayload(payload)
}

// JoinLobby adds the authenticated user to a lobby and returns the
// refreshed lobby.
func (c *Client) JoinLobby(ctx context.Context, id string) (viewmodel.Lobby, error) {
	var payload dto.LobbyPayload
	if err := c.post(ctx, fmtPath("/api/lobbies/%s/join", id), nil, &payload); err != nil {
		return viewmodel.Lobby{}, err
	}
	return viewmodel.LobbyFromPayload(payload)
}

// LeaveLobby removes the authenticated user from a lobby and returns
// the refreshed lobby.
func (c *Client) LeaveLobby(ctx context.Context, id string) (viewmodel.Lobby, error) {
	var payload dto.LobbyPayload
	if err := c.post(ctx, fmtPath("/api/lobbies/%s/leave", id), nil, &payload); err != nil {
		return viewmodel.Lobby{}, err
	}
	return viewmodel.LobbyFromPayload(payload)
}

// DeleteLobby deletes a lobby the authenticated user created.
func (c *Client) DeleteLobby(ctx context.Context, id string) error {
	return c.delete(ctx, fmtPath("/api/lobbies/%s", id), nil)
}
