// Package viewmodel holds the flattened, camelCase shapes UI code
// consumes and the pure converters between them and the wire payloads.
// Converters fail fast on malformed input instead of propagating records
// with missing fields into rendering code.
package viewmodel

import (
	"teamup/dto"
)

// Contacts groups the optional messaging handles of a user. It is a
// value struct so a converted User always carries it; each handle is
// independently optional.
type Contacts struct {
	Telegram *string `json:"telegram"`
	Discord  *string `json:"discord"`
	Steam    *string `json:"steam"`
}

// User is the view-model of a user record. Avatar is nil when the user
// never set one, and the UI renders a placeholder.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Gender   string   `json:"gender"`
	Bio      string   `json:"bio"`
	Avatar   *string  `json:"avatar"`
	Contacts Contacts `json:"contacts"`
	// Token is only set on the authenticated user's own record.
	Token string `json:"token,omitempty"`
}

// UserFromPayload converts a wire user into its view-model. The contacts
// object is always materialized, with nil entries for unset handles, so
// callers can read user.Contacts.Telegram without a guard.
func UserFromPayload(p dto.UserPayload) User {
	return User{
		ID:       p.ID,
		Username: p.Username,
		Gender:   p.Gender,
		Bio:      deref(p.Bio),
		Avatar:   normalizePtr(p.Avatar),
		Contacts: Contacts{
			Telegram: normalizePtr(p.TelegramContact),
			Discord:  normalizePtr(p.DiscordContact),
			Steam:    normalizePtr(p.SteamContact),
		},
		Token: p.Token,
	}
}

// SignupPayload builds the outbound registration shape. Empty optional
// strings become explicit nulls so unset fields travel unambiguously.
func (u User) SignupPayload(password string) dto.SignupPayload {
	return dto.SignupPayload{
		Username:        u.Username,
		Password:        password,
		Gender:          u.Gender,
		Bio:             nullable(u.Bio),
		Avatar:          normalizePtr(u.Avatar),
		TelegramContact: normalizePtr(u.Contacts.Telegram),
		DiscordContact:  normalizePtr(u.Contacts.Discord),
		SteamContact:    normalizePtr(u.Contacts.Steam),
	}
}

// UpdatePayload builds the outbound profile-edit shape with the same
// empty-string-to-null normalization as SignupPayload.
func (u User) UpdatePayload() dto.UserUpdatePayload {
	return dto.UserUpdatePayload{
		Bio:             nullable(u.Bio),
		Avatar:          normalizePtr(u.Avatar),
		TelegramContact: normalizePtr(u.Contacts.Telegram),
		DiscordContact:  normalizePtr(u.Contacts.Discord),
		SteamContact:    normalizePtr(u.Contacts.Steam),
	}
}
