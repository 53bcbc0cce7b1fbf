package store

import (
	"context"
	"errors"
	"fmt"

	models "teamup/models/postgres"

	"gorm.io/gorm"
)

// GameStore is the persistence port for game records.
type GameStore interface {
	List(ctx context.Context) ([]models.Game, error)
	ByID(ctx context.Context, id string) (*models.Game, error)
	ByName(ctx context.Context, name string) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
}

// GormGameStore implements GameStore on PostgreSQL.
type GormGameStore struct {
	DB *gorm.DB
}

func NewGameStore(db *gorm.DB) *GormGameStore {
	return &GormGameStore{DB: db}
}

func (s *GormGameStore) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.DB.WithContext(ctx).Order("name").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

func (s *GormGameStore) ByID(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

func (s *GormGameStore) ByName(ctx context.Context, name string) (*models.Game, error) {
	var game models.Game
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&game).Error; err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

// Create inserts a game, failing with ErrDuplicate when the name is
// already known. Callers treat that as "reuse the existing game".
func (s *GormGameStore) Create(ctx context.Context, game *models.Game) error {
	var existing models.Game
	err := s.DB.WithContext(ctx).Where("name = ?", game.Name).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking game name: %w", err)
	}
	if err := s.DB.WithContext(ctx).Create(game).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating game: %w", err)
	}
	return nil
}
