package dto

import "time"

// BidPayload is the wire shape of a teammate request ("bid").
type BidPayload struct {
	ID          string       `json:"id"`
	Author      *UserPayload `json:"author"`
	Game        *GamePayload `json:"game"`
	Description string       `json:"description"`
	Details     *string      `json:"details"`
	CreatedAt   time.Time    `json:"created_at"`
}

// BidWritePayload is the outbound shape for bid creation.
type BidWritePayload struct {
	GameID      string  `json:"game_id"`
	Description string  `json:"description"`
	Details     *string `json:"details"`
}

// BidListPayload wraps the bid collection response.
type BidListPayload struct {
	Bids []BidPayload `json:"bids"`
}
