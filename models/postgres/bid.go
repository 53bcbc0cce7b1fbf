package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Bid' is an open teammate request: an undated ask posted by a user,
 * not tied to a scheduled lobby.
 */
type Bid struct {
	ID          string    `gorm:"primaryKey;size:36;not null"`
	GameID      string    `gorm:"size:36;not null;index:idx_bids_game"`
	Description string    `gorm:"size:500;not null"`
	Details     *string   `gorm:"size:500"`
	AuthorID    string    `gorm:"size:36;not null;index:idx_bids_author"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game   Game `gorm:"foreignKey:GameID"`
	Author User `gorm:"foreignKey:AuthorID"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
