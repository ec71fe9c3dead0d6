package database

import (
	"context"
	"errors"
	"strings"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"gorm.io/gorm"
)

type StaffStore struct {
	DB *gorm.DB
}

func NewStaffStore(db *gorm.DB) *StaffStore {
	return &StaffStore{DB: db}
}

func (s *StaffStore) Create(ctx context.Context, u *models.StaffUser) error {
	err := s.DB.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return utils.Conflict("Email already registered")
	}
	return utils.Internal(err)
}

func (s *StaffStore) FindByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "Staff user not found")
	}
	return &u, nil
}

func (s *StaffStore) Get(ctx context.Context, id uint) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "Staff user not found")
	}
	return &u, nil
}

// isUniqueViolation recognises duplicate-key errors from both SQLite and MySQL.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
