package store

import (
	"context"
	"errors"
	"fmt"

	models "teamup/models/postgres"

	"gorm.io/gorm"
)

// UserStore is the persistence port for user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// GormUserStore implements UserStore on PostgreSQL.
type GormUserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

// Create inserts a user, failing with ErrDuplicate when the username is
// already taken.
func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking username: %w", err)
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *GormUserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUserStore) Update(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}
