package database

import (
	"context"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"gorm.io/gorm"
)

type ReservationStore struct {
	DB *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{DB: db}
}

func (s *ReservationStore) Create(ctx context.Context, r *models.Reservation) error {
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return utils.Internal(err)
	}
	return nil
}

func (s *ReservationStore) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err, "Reservation not found")
	}
	return &r, nil
}

// List returns reservations ordered by date and time. A nil user id lists everyone's.
func (s *ReservationStore) List(ctx context.Context, userID *uint) ([]models.Reservation, error) {
	q := s.DB.WithContext(ctx).Order("date ASC, time ASC, id ASC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return list, nil
}

// ListFrom returns confirmed reservations on or after the given date (YYYY-MM-DD).
func (s *ReservationStore) ListFrom(ctx context.Context, date string) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.WithContext(ctx).
		Where("date >= ? AND status = ?", date, "confirmed").
		Order("date ASC, time ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, utils.Internal(err)
	}
	return list, nil
}

func (s *ReservationStore) Save(ctx context.Context, r *models.Reservation) error {
	if err := s.DB.WithContext(ctx).Save(r).Error; err != nil {
		return utils.Internal(err)
	}
	return nil
}

func (s *ReservationStore) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return utils.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Reservation not found")
	}
	return nil
}
