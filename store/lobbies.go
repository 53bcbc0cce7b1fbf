package store

import (
	"context"
	"fmt"
	"strings"

	models "teamup/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Errors specific to lobby membership changes.
var (
	ErrLobbyFull     = fmt.Errorf("lobby is full")
	ErrAlreadyMember = fmt.Errorf("user is already in the lobby")
	ErrNotMember     = fmt.Errorf("user is not in the lobby")
)

// LobbyStore is the persistence port for lobby records. Read operations
// return lobbies with game, author and members populated.
type LobbyStore interface {
	List(ctx context.Context, filter LobbyFilter) ([]models.Lobby, error)
	ByID(ctx context.Context, id string) (*models.Lobby, error)
	Create(ctx context.Context, lobby *models.Lobby) error
	AddMember(ctx context.Context, lobbyID, userID string) error
	RemoveMember(ctx context.Context, lobbyID, userID string) error
	Delete(ctx context.Context, id string) error
}

// GormLobbyStore implements LobbyStore on PostgreSQL.
type GormLobbyStore struct {
	DB *gorm.DB
}

func NewLobbyStore(db *gorm.DB) *GormLobbyStore {
	return &GormLobbyStore{DB: db}
}

func (s *GormLobbyStore) withAssociations(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Game").
		Preload("Author").
		Preload("Members")
}

func (s *GormLobbyStore) List(ctx context.Context, filter LobbyFilter) ([]models.Lobby, error) {
	q := s.withAssociations(ctx).
		Joins("JOIN games ON games.id = lobbies.game_id")

	if filter.Game != "" {
		q = q.Where("LOWER(games.name) LIKE ?", "%"+strings.ToLower(filter.Game)+"%")
	}
	if filter.Platform != "" {
		q = q.Where("LOWER(lobbies.platform) = ?", strings.ToLower(filter.Platform))
	}
	if filter.MinSkill > 0 {
		q = q.Where("lobbies.skill_level >= ?", filter.MinSkill)
	}
	if filter.MaxSkill > 0 {
		q = q.Where("lobbies.skill_level <= ?", filter.MaxSkill)
	}
	if filter.HasSlots {
		q = q.Where("lobbies.filled_slots < lobbies.slots")
	}

	var lobbies []models.Lobby
	if err := q.Order("lobbies.start_time").Find(&lobbies).Error; err != nil {
		return nil, fmt.Errorf("listing lobbies: %w", err)
	}
	return lobbies, nil
}

func (s *GormLobbyStore) ByID(ctx context.Context, id string) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := s.withAssociations(ctx).Where("lobbies.id = ?", id).First(&lobby).Error; err != nil {
		return nil, notFound(err)
	}
	return &lobby, nil
}

// Create inserts a lobby. The caller seeds Members with the author, so
// the creator occupies the first slot from the start.
func (s *GormLobbyStore) Create(ctx context.Context, lobby *models.Lobby) error {
	lobby.FilledSlots = len(lobby.Members)
	if err := s.DB.WithContext(ctx).Create(lobby).Error; err != nil {
		return fmt.Errorf("creating lobby: %w", err)
	}
	return nil
}

// lockLobby takes a FOR UPDATE lock on the lobby row, so concurrent
// membership changes serialize and the capacity check holds at commit.
func lockLobby(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddMember joins a user into a lobby, keeping filled_slots equal to the
// member count. Fails when the lobby is full or the user already joined.
func (s *GormLobbyStore) AddMember(ctx context.Context, lobbyID, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lobby models.Lobby
		if err := lockLobby(tx).Preload("Members").Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
			return notFound(err)
		}
		for _, m := range lobby.Members {
			if m.ID == userID {
				return ErrAlreadyMember
			}
		}
		if len(lobby.Members) >= lobby.Slots {
			return ErrLobbyFull
		}
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&lobby).Association("Members").Append(&user); err != nil {
			return fmt.Errorf("adding member: %w", err)
		}
		return tx.Model(&lobby).Update("filled_slots", len(lobby.Members)+1).Error
	})
}

// RemoveMember takes a user out of a lobby, keeping filled_slots equal
// to the member count.
func (s *GormLobbyStore) RemoveMember(ctx context.Context, lobbyID, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lobby models.Lobby
		if err := lockLobby(tx).Preload("Members").Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
			return notFound(err)
		}
		member := false
		for _, m := range lobby.Members {
			if m.ID == userID {
				member = true
				break
			}
		}
		if !member {
			return ErrNotMember
		}
		if err := tx.Model(&lobby).Association("Members").Delete(&models.User{ID: userID}); err != nil {
			return fmt.Errorf("removing member: %w", err)
		}
		return tx.Model(&lobby).Update("filled_slots", len(lobby.Members)-1).Error
	})
}

func (s *GormLobbyStore) Delete(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Lobby{})
	if result.Error != nil {
		return fmt.Errorf("deleting lobby: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
