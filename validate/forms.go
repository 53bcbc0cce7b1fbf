package validate

import (
	"time"

	lobby_constants "teamup/constants/lobby"
	"teamup/dto"
)

// Form aggregators run every applicable field validator and collect all
// violations into a field -> message map. An empty map means the form is
// valid. Checks are independent and never short-circuit each other, so
// the UI can display every message at once.

// RegisterForm holds the raw values of the registration form.
type RegisterForm struct {
	Username        string
	Password        string
	ConfirmPassword string
	Gender          string
	Bio             string
	Avatar          string
}

func (f RegisterForm) Validate() map[string]string {
	errs := make(map[string]string)
	put(errs, "username", Username(f.Username))
	put(errs, "bio", Bio(f.Bio))
	put(errs, "password", Password(f.Password))
	put(errs, "confirmPassword", PasswordConfirmation(f.Password, f.ConfirmPassword))
	put(errs, "gender", Gender(f.Gender, lobby_constants.Genders))
	put(errs, "avatar", AvatarURL(f.Avatar))
	return errs
}

// LobbyForm holds the raw values of the lobby creation form. Date and
// time arrive as the two separate inputs the form renders.
type LobbyForm struct {
	Name          string
	Game          string
	OtherGame     string
	Platform      string
	Slots         int
	ScheduledDate string
	ScheduledTime string
	SkillLevel    int
	Goal          string
	Description   string
}

func (f LobbyForm) Validate() map[string]string {
	errs := make(map[string]string)
	put(errs, "name", Required(f.Name, "Lobby name is required"))
	if f.Game == "" {
		errs["game"] = "Game is required"
	} else if f.Game == lobby_constants.OtherGame {
		put(errs, "otherGame", Required(f.OtherGame, "Please specify the game"))
	}
	put(errs, "platform", Required(f.Platform, "Platform is required"))
	put(errs, "scheduledDate", Required(f.ScheduledDate, "Date is required"))
	put(errs, "scheduledTime", Required(f.ScheduledTime, "Time is required"))
	put(errs, "goal", Required(f.Goal, "Goal is required"))
	return errs
}

// GameName resolves the picked game, honoring the "Other" sentinel.
func (f LobbyForm) GameName() string {
	if f.Game == lobby_constants.OtherGame {
		return f.OtherGame
	}
	return f.Game
}

// StartTime combines the date and time inputs into a single timestamp.
// Only meaningful once Validate returned an empty map.
func (f LobbyForm) StartTime() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", f.ScheduledDate+" "+f.ScheduledTime)
}

// RequestForm holds the raw values of the teammate request form.
type RequestForm struct {
	Game        string
	OtherGame   string
	Description string
	Preferences string
}

func (f RequestForm) Validate() map[string]string {
	errs := make(map[string]string)
	if f.Game == "" {
		errs["game"] = "Game is required"
	} else if f.Game == lobby_constants.OtherGame {
		put(errs, "otherGame", Required(f.OtherGame, "Please specify the game"))
	}
	if msg := Required(f.Description, "Description is required"); msg != "" {
		errs["description"] = msg
	} else {
		put(errs, "description", MinLen(f.Description, 20, "Description must be at least 20 characters"))
	}
	return errs
}

// GameName resolves the picked game, honoring the "Other" sentinel.
func (f RequestForm) GameName() string {
	if f.Game == lobby_constants.OtherGame {
		return f.OtherGame
	}
	return f.Game
}

// Signup validates an inbound registration payload server-side with the
// same field rules the client form applies.
func Signup(p dto.SignupPayload) map[string]string {
	errs := make(map[string]string)
	put(errs, "username", Username(p.Username))
	put(errs, "bio", Bio(deref(p.Bio)))
	put(errs, "password", Password(p.Password))
	put(errs, "gender", Gender(p.Gender, lobby_constants.Genders))
	put(errs, "avatar", AvatarURL(deref(p.Avatar)))
	return errs
}

// LobbyWrite validates an inbound lobby payload server-side.
func LobbyWrite(p dto.LobbyWritePayload) map[string]string {
	errs := make(map[string]string)
	put(errs, "name", Required(p.Name, "Lobby name is required"))
	put(errs, "game", Required(p.GameID, "Game is required"))
	put(errs, "platform", OneOf(p.Platform, lobby_constants.Platforms, "Platform is required"))
	put(errs, "slots", IntRange(p.Slots, lobby_constants.MinSlots, lobby_constants.MaxSlots, "Slots"))
	put(errs, "skillLevel", IntRange(p.SkillLevel, lobby_constants.MinSkillLevel, lobby_constants.MaxSkillLevel, "Skill level"))
	put(errs, "goal", Required(p.Goal, "Goal is required"))
	if p.StartTime.IsZero() {
		errs["startTime"] = "Start time is required"
	}
	return errs
}

// BidWrite validates an inbound bid payload server-side.
func BidWrite(p dto.BidWritePayload) map[string]string {
	errs := make(map[string]string)
	put(errs, "game", Required(p.GameID, "Game is required"))
	if msg := Required(p.Description, "Description is required"); msg != "" {
		errs["description"] = msg
	} else {
		put(errs, "description", MinLen(p.Description, 20, "Description must be at least 20 characters"))
	}
	return errs
}

func put(errs map[string]string, field, msg string) {
	if msg != "" {
		errs[field] = msg
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
