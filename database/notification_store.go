package database

import (
	"context"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
)

func (s *OrderStore) CreateNotification(ctx context.Context, n *models.DeliveryNotification) error {
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return utils.Internal(err)
	}
	return nil
}

// Notifications lists delivery notifications, newest first.
func (s *OrderStore) Notifications(ctx context.Context, unacknowledgedOnly bool) ([]models.DeliveryNotification, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC, id DESC")
	if unacknowledgedOnly {
		q = q.Where("acknowledged = ?", false)
	}
	var list []models.DeliveryNotification
	if err := q.Find(&list).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return list, nil
}

// AcknowledgeOrder marks every open notification for the order as seen.
func (s *OrderStore) AcknowledgeOrder(ctx context.Context, orderID uint, at time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.DeliveryNotification{}).
		Where("order_id = ? AND acknowledged = ?", orderID, false).
		Updates(map[string]any{"acknowledged": true, "acknowledged_at": at})
	if res.Error != nil {
		return 0, utils.Internal(res.Error)
	}
	return res.RowsAffected, nil
}
