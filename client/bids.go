package client

import (
	"context"
	"net/url"

	"teamup/apperrors"
	"teamup/dto"
	"teamup/validate"
	"teamup/viewmodel"
)

// RequestFilters narrows a teammate-request listing.
type RequestFilters struct {
	Game       string // exact game display name
	SearchText string // substring of the description
}

// Requests lists every teammate request.
func (c *Client) Requests(ctx context.Context) ([]viewmodel.Request, error) {
	return c.FilterRequests(ctx, RequestFilters{})
}

// FilterRequests lists the teammate requests matching the filters.
func (c *Client) FilterRequests(ctx context.Context, filters RequestFilters) ([]viewmodel.Request, error) {
	query := url.Values{}
	if filters.Game != "" {
		query.Set("game_search", filters.Game)
	}
	if filters.SearchText != "" {
		query.Set("description_search", filters.SearchText)
	}
	return c.listRequests(ctx, query)
}

// RequestsByCreator lists the teammate requests posted by one user.
func (c *Client) RequestsByCreator(ctx context.Context, creatorID string) ([]viewmodel.Request, error) {
	query := url.Values{}
	query.Set("author_id", creatorID)
	return c.listRequests(ctx, query)
}

func (c *Client) listRequests(ctx context.Context, query url.Values) ([]viewmodel.Request, error) {
	var payload dto.BidListPayload
	if err := c.get(ctx, "/api/bids", query, &payload); err != nil {
		return nil, err
	}

	requests := make([]viewmodel.Request, len(payload.Bids))
	for i, p := range payload.Bids {
		request, err := viewmodel.RequestFromPayload(p)
		if err != nil {
			return nil, err
		}
		requests[i] = request
	}
	return requests, nil
}

// Request fetches one teammate request by id.
func (c *Client) Request(ctx context.Context, id string) (viewmodel.Request, error) {
	var payload dto.BidPayload
	if err := c.get(ctx, fmtPath("/api/bids/%s", id), nil, &payload); err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return viewmodel.Request{}, apperrors.New(apperrors.NotFound,
				"Request does not exist")
		}
		return viewmodel.Request{}, err
	}
	return viewmodel.RequestFromPayload(payload)
}

// CreateRequest validates the form, resolves the picked game and posts
// the teammate request.
func (c *Client) CreateRequest(ctx context.Context, form validate.RequestForm) (viewmodel.Request, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return viewmodel.Request{}, apperrors.NewValidation(errs)
	}

	game, err := c.ensureGame(ctx, form.GameName())
	if err != nil {
		return viewmodel.Request{}, err
	}

	request := viewmodel.Request{
		Description: form.Description,
		Preferences: form.Preferences,
	}

	var payload dto.BidPayload
	if err := c.post(ctx, "/api/bids", request.WritePayload(game.ID), &payload); err != nil {
		if apperrors.IsKind(err, apperrors.AuthRequired) {
			return viewmodel.Request{}, apperrors.New(apperrors.AuthRequired,
				"Log in before creating a request")
		}
		return viewmodel.Request{}, err
	}
	return viewmodel.RequestFromPayload(payload)
}

// DeleteRequest deletes a teammate request the authenticated user posted.
func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.delete(ctx, fmtPath("/api/bids/%s", id), nil)
}
