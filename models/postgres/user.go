package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'User' contains the blueprint definition of a registered user. Contact
 * handles are independently optional columns.
 */
type User struct {
	ID           string    `gorm:"primaryKey;size:36;not null"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Gender       string    `gorm:"size:30;not null"`
	Bio          string    `gorm:"type:text;not null"`
	Avatar       *string   `gorm:"size:200"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	TelegramContact *string `gorm:"size:50"`
	DiscordContact  *string `gorm:"size:50"`
	SteamContact    *string `gorm:"size:50"`

	// Relationships
	Bids          []Bid    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	OwnedLobbies  []Lobby  `gorm:"foreignKey:AuthorID"`
	JoinedLobbies []*Lobby `gorm:"many2many:lobby_members;"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
