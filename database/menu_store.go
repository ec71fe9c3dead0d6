package database

import (
	"context"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"gorm.io/gorm"
)

type MenuStore struct {
	DB *gorm.DB
}

func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{DB: db}
}

func (s *MenuStore) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := s.DB.WithContext(ctx).Order("id ASC")
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return items, nil
}

// ByIDs returns the requested menu items keyed by id. Missing ids are simply absent.
func (s *MenuStore) ByIDs(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) > 0 {
		if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
			return nil, utils.Internal(err)
		}
	}
	out := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}
