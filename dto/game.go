package dto

// GamePayload is the wire shape of a game record.
type GamePayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"release_date"`
	URLImage    *string `json:"url_image"`
}

// GameWritePayload creates a game, typically on demand when a user picks
// a title that is not in the known list yet.
type GameWritePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"release_date"`
	URLImage    *string `json:"url_image"`
}

// GameListPayload wraps the game collection response.
type GameListPayload struct {
	Games []GamePayload `json:"games"`
}
