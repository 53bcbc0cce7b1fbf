package store

import (
	"context"
	"fmt"
	"strings"

	models "teamup/models/postgres"

	"gorm.io/gorm"
)

// BidStore is the persistence port for teammate requests. Read
// operations return bids with game and author populated.
type BidStore interface {
	List(ctx context.Context, filter BidFilter) ([]models.Bid, error)
	ByID(ctx context.Context, id string) (*models.Bid, error)
	Create(ctx context.Context, bid *models.Bid) error
	Delete(ctx context.Context, id string) error
}

// GormBidStore implements BidStore on PostgreSQL.
type GormBidStore struct {
	DB *gorm.DB
}

func NewBidStore(db *gorm.DB) *GormBidStore {
	return &GormBidStore{DB: db}
}

func (s *GormBidStore) withAssociations(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("Game").Preload("Author")
}

func (s *GormBidStore) List(ctx context.Context, filter BidFilter) ([]models.Bid, error) {
	q := s.withAssociations(ctx).
		Joins("JOIN games ON games.id = bids.game_id")

	if filter.Description != "" {
		q = q.Where("LOWER(bids.description) LIKE ?", "%"+strings.ToLower(filter.Description)+"%")
	}
	if filter.GameName != "" {
		q = q.Where("games.name = ?", filter.GameName)
	}
	if filter.AuthorID != "" {
		q = q.Where("bids.author_id = ?", filter.AuthorID)
	}

	var bids []models.Bid
	if err := q.Order("bids.created_at DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("listing bids: %w", err)
	}
	return bids, nil
}

func (s *GormBidStore) ByID(ctx context.Context, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := s.withAssociations(ctx).Where("bids.id = ?", id).First(&bid).Error; err != nil {
		return nil, notFound(err)
	}
	return &bid, nil
}

func (s *GormBidStore) Create(ctx context.Context, bid *models.Bid) error {
	if err := s.DB.WithContext(ctx).Create(bid).Error; err != nil {
		return fmt.Errorf("creating bid: %w", err)
	}
	return nil
}

func (s *GormBidStore) Delete(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Bid{})
	if result.Error != nil {
		return fmt.Errorf("deleting bid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
