package postgres

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Game' is a title users can schedule lobbies or post requests for.
 * Names are unique; new games are created on demand when a user picks a
 * title that is not in the list yet.
 */
type Game struct {
	ID          string         `gorm:"primaryKey;size:36;not null"`
	Name        string         `gorm:"size:100;not null;uniqueIndex"`
	Description string         `gorm:"size:500"`
	ReleaseDate datatypes.Date `gorm:"not null"`
	URLImage    *string        `gorm:"size:200"`

	// Relationships
	Lobbies []Lobby `gorm:"foreignKey:GameID"`
	Bids    []Bid   `gorm:"foreignKey:GameID"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
