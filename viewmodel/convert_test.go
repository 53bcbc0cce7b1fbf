package viewmodel

import (
	"testing"
	"time"

	"teamup/apperrors"
	"teamup/dto"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUserFromPayload(t *testing.T) {
	t.Run("Contacts are always materialized", func(t *testing.T) {
		user := UserFromPayload(dto.UserPayload{
			ID:       "u1",
			Username: "player_one",
			Gender:   "male",
		})
		assert.Nil(t, user.Contacts.Telegram)
		assert.Nil(t, user.Contacts.Discord)
		assert.Nil(t, user.Contacts.Steam)
		assert.Nil(t, user.Avatar)
	})

	t.Run("Set handles survive the conversion", func(t *testing.T) {
		user := UserFromPayload(dto.UserPayload{
			ID:              "u1",
			Username:        "player_one",
			Bio:             strPtr("Support main."),
			TelegramContact: strPtr("@player"),
		})
		assert.Equal(t, "@player", *user.Contacts.Telegram)
		assert.Nil(t, user.Contacts.Discord)
		assert.Equal(t, "Support main.", user.Bio)
	})

	t.Run("Empty strings normalize to nil", func(t *testing.T) {
		user := UserFromPayload(dto.UserPayload{
			ID:             "u1",
			Avatar:         strPtr(""),
			DiscordContact: strPtr(""),
		})
		assert.Nil(t, user.Avatar)
		assert.Nil(t, user.Contacts.Discord)
	})

	t.Run("Converting twice yields the same record", func(t *testing.T) {
		payload := dto.UserPayload{
			ID:           "u1",
			Username:     "player_one",
			Gender:       "female",
			Bio:          strPtr("Support main."),
			SteamContact: strPtr("steamid"),
		}
		assert.Equal(t, UserFromPayload(payload), UserFromPayload(payload))
	})
}

func TestUserSignupPayload(t *testing.T) {
	user := User{
		Username: "player_one",
		Gender:   "male",
		Bio:      "Support main.",
		Contacts: Contacts{Telegram: strPtr("@player"), Discord: strPtr("")},
	}
	payload := user.SignupPayload("abc123!@")

	assert.Equal(t, "abc123!@", payload.Password)
	assert.Equal(t, "Support main.", *payload.Bio)
	assert.Equal(t, "@player", *payload.TelegramContact)
	// Unset and empty handles travel as explicit nulls.
	assert.Nil(t, payload.DiscordContact)
	assert.Nil(t, payload.SteamContact)
	assert.Nil(t, payload.Avatar)
}

func TestUserUpdatePayload(t *testing.T) {
	user := User{Bio: "", Avatar: strPtr("https://cdn.example.com/me.png")}
	payload := user.UpdatePayload()
	assert.Nil(t, payload.Bio)
	assert.Equal(t, "https://cdn.example.com/me.png", *payload.Avatar)
}

func lobbyPayloadFixture() dto.LobbyPayload {
	return dto.LobbyPayload{
		ID:       "l1",
		Name:     "Friday ranked grind",
		Game:     &dto.GamePayload{ID: "g1", Name: "Valorant"},
		Platform: "PC",
		Slots:    5,
		Members: []dto.UserPayload{
			{ID: "u1", Username: "creator"},
			{ID: "u2", Username: "joiner"},
		},
		Author:     &dto.UserPayload{ID: "u1", Username: "creator"},
		StartTime:  time.Date(2026, 9, 5, 21, 30, 0, 0, time.UTC),
		SkillLevel: 6,
		Goal:       "Ranked",
	}
}

func TestLobbyFromPayload(t *testing.T) {
	t.Run("Flattens the nested objects", func(t *testing.T) {
		lobby, err := LobbyFromPayload(lobbyPayloadFixture())
		assert.NoError(t, err)
		assert.Equal(t, "Valorant", lobby.Game)
		assert.Equal(t, []string{"u1", "u2"}, lobby.Players)
		assert.Equal(t, "u1", lobby.Creator)
	})

	t.Run("filledSlots derives from the member list", func(t *testing.T) {
		payload := lobbyPayloadFixture()
		// A stale count from the server must not leak through.
		payload.FilledSlots = 4
		lobby, err := LobbyFromPayload(payload)
		assert.NoError(t, err)
		assert.Equal(t, 2, lobby.FilledSlots)
		assert.True(t, lobby.HasOpenSlots())
	})

	t.Run("Missing game fails as malformed", func(t *testing.T) {
		payload := lobbyPayloadFixture()
		payload.Game = nil
		_, err := LobbyFromPayload(payload)
		assert.True(t, apperrors.IsKind(err, apperrors.MalformedResponse))
	})

	t.Run("Missing author fails as malformed", func(t *testing.T) {
		payload := lobbyPayloadFixture()
		payload.Author = nil
		_, err := LobbyFromPayload(payload)
		assert.True(t, apperrors.IsKind(err, apperrors.MalformedResponse))
	})

	t.Run("Author outside the member list fails as malformed", func(t *testing.T) {
		payload := lobbyPayloadFixture()
		payload.Author = &dto.UserPayload{ID: "u9", Username: "ghost"}
		_, err := LobbyFromPayload(payload)
		assert.True(t, apperrors.IsKind(err, apperrors.MalformedResponse))
	})

	t.Run("Converting twice yields the same record", func(t *testing.T) {
		first, err := LobbyFromPayload(lobbyPayloadFixture())
		assert.NoError(t, err)
		second, err := LobbyFromPayload(lobbyPayloadFixture())
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Full lobby reports no open slots", func(t *testing.T) {
		payload := lobbyPayloadFixture()
		payload.Slots = 2
		lobby, err := LobbyFromPayload(payload)
		assert.NoError(t, err)
		assert.False(t, lobby.HasOpenSlots())
	})
}

func TestLobbyWritePayload(t *testing.T) {
	lobby, err := LobbyFromPayload(lobbyPayloadFixture())
	assert.NoError(t, err)

	payload := lobby.WritePayload("g1")
	assert.Equal(t, "g1", payload.GameID)
	assert.Equal(t, lobby.Name, payload.Name)
	assert.Equal(t, lobby.ScheduledTime, payload.StartTime)
	// An empty description travels as an explicit null.
	assert.Nil(t, payload.Description)

	lobby.Description = "Mics required"
	assert.Equal(t, "Mics required", *lobby.WritePayload("g1").Description)
}

func TestRequestFromPayload(t *testing.T) {
	fixture := dto.BidPayload{
		ID:          "b1",
		Author:      &dto.UserPayload{ID: "u1", Username: "creator"},
		Game:        &dto.GamePayload{ID: "g1", Name: "Valorant"},
		Description: "Looking for two chill teammates for casual runs.",
		CreatedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Resolves the nested author and game", func(t *testing.T) {
		request, err := RequestFromPayload(fixture)
		assert.NoError(t, err)
		assert.Equal(t, "u1", request.Creator)
		assert.Equal(t, "creator", request.CreatorUsername)
		assert.Equal(t, "Valorant", request.Game)
		assert.Empty(t, request.Preferences)
	})

	t.Run("Missing nested objects fail as malformed", func(t *testing.T) {
		broken := fixture
		broken.Author = nil
		_, err := RequestFromPayload(broken)
		assert.True(t, apperrors.IsKind(err, apperrors.MalformedResponse))

		broken = fixture
		broken.Game = nil
		_, err = RequestFromPayload(broken)
		assert.True(t, apperrors.IsKind(err, apperrors.MalformedResponse))
	})
}

func TestRequestWritePayload(t *testing.T) {
	request := Request{Description: "Looking for two chill teammates for casual runs."}
	payload := request.WritePayload("g1")
	assert.Equal(t, "g1", payload.GameID)
	assert.Nil(t, payload.Details)

	request.Preferences = "Evenings only"
	assert.Equal(t, "Evenings only", *request.WritePayload("g1").Details)
}
