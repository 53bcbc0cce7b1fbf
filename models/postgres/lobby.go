package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Lobby' defines a scheduled, capacity-limited group-play session. The
 * author always occupies one of the slots; FilledSlots mirrors the size
 * of the members association.
 */
type Lobby struct {
	ID          string    `gorm:"primaryKey;size:36;not null"`
	Name        string    `gorm:"size:100;not null"`
	GameID      string    `gorm:"size:36;not null;index:idx_lobbies_game"`
	Platform    string    `gorm:"size:30;not null;index:idx_lobbies_platform"`
	Slots       int       `gorm:"not null"`
	FilledSlots int       `gorm:"not null;default:0"`
	SkillLevel  int       `gorm:"not null"`
	Goal        string    `gorm:"size:100;not null"`
	Description *string   `gorm:"type:text"`
	StartTime   time.Time `gorm:"not null"`
	AuthorID    string    `gorm:"size:36;not null;index:idx_lobbies_author"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game    Game    `gorm:"foreignKey:GameID"`
	Author  User    `gorm:"foreignKey:AuthorID"`
	Members []*User `gorm:"many2many:lobby_members;constraint:OnDelete:CASCADE"`
}

func (l *Lobby) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
