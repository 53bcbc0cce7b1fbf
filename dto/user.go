package dto

// UserPayload is the wire shape of a user record. Contact handles are
// flattened into *_contact columns, matching the database layout.
type UserPayload struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Gender          string  `json:"gender"`
	Bio             *string `json:"bio"`
	Avatar          *string `json:"avatar"`
	TelegramContact *string `json:"telegram_contact"`
	DiscordContact  *string `json:"discord_contact"`
	SteamContact    *string `json:"steam_contact"`
	// Token is only present on the authenticated user's own record,
	// i.e. in signup and login responses.
	Token string `json:"token,omitempty"`
}

// SignupPayload is the outbound shape for registration.
type SignupPayload struct {
	Username        string  `json:"username"`
	Password        string  `json:"password"`
	Gender          string  `json:"gender"`
	Bio             *string `json:"bio"`
	Avatar          *string `json:"avatar"`
	TelegramContact *string `json:"telegram_contact"`
	DiscordContact  *string `json:"discord_contact"`
	SteamContact    *string `json:"steam_contact"`
}

// LoginPayload carries the credentials for token creation.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserUpdatePayload is the outbound shape for profile edits. Nil fields
// are left untouched by the server.
type UserUpdatePayload struct {
	Bio             *string `json:"bio"`
	Avatar          *string `json:"avatar"`
	TelegramContact *string `json:"telegram_contact"`
	DiscordContact  *string `json:"discord_contact"`
	SteamContact    *string `json:"steam_contact"`
}
