package controllers

import (
	"time"

	"teamup/dto"
	models "teamup/models/postgres"
)

// Outbound conversions from the persistence models to the wire shapes.
// Handlers never build response JSON inline.

func toUserPayload(user *models.User) dto.UserPayload {
	return dto.UserPayload{
		ID:              user.ID,
		Username:        user.Username,
		Gender:          user.Gender,
		Bio:             nullable(user.Bio),
		Avatar:          user.Avatar,
		TelegramContact: user.TelegramContact,
		DiscordContact:  user.DiscordContact,
		SteamContact:    user.SteamContact,
	}
}

func toGamePayload(game *models.Game) dto.GamePayload {
	return dto.GamePayload{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		ReleaseDate: time.Time(game.ReleaseDate).Format("2006-01-02"),
		URLImage:    game.URLImage,
	}
}

func toLobbyPayload(lobby *models.Lobby) dto.LobbyPayload {
	members := make([]dto.UserPayload, len(lobby.Members))
	for i, m := range lobby.Members {
		members[i] = toUserPayload(m)
	}
	game := toGamePayload(&lobby.Game)
	author := toUserPayload(&lobby.Author)
	return dto.LobbyPayload{
		ID:          lobby.ID,
		Name:        lobby.Name,
		Game:        &game,
		Platform:    lobby.Platform,
		Slots:       lobby.Slots,
		FilledSlots: lobby.FilledSlots,
		Members:     members,
		Author:      &author,
		StartTime:   lobby.StartTime,
		SkillLevel:  lobby.SkillLevel,
		Goal:        lobby.Goal,
		Description: lobby.Description,
	}
}

func toBidPayload(bid *models.Bid) dto.BidPayload {
	game := toGamePayload(&bid.Game)
	author := toUserPayload(&bid.Author)
	return dto.BidPayload{
		ID:          bid.ID,
		Author:      &author,
		Game:        &game,
		Description: bid.Description,
		Details:     bid.Details,
		CreatedAt:   bid.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}
