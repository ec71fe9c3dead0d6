package database

import (
	"context"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

// Transaction runs fn against a store bound to one database transaction.
func (s *OrderStore) Transaction(ctx context.Context, fn func(tx *OrderStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderStore{DB: tx})
	})
}

// Create inserts the order and all of its items atomically.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if len(order.Items) == 0 {
		return utils.Validation("Order must contain at least one item")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	return translate(err, "Order not found")
}

// OrderFilter narrows the joined order view. Zero values match everything.
type OrderFilter struct {
	IDs         []uint
	UserID      *uint
	ServiceMode models.ServiceMode
	Statuses    []models.OrderStatus
	Since       *time.Time
	Served      *bool
	OldestFirst bool
}

func (s *OrderStore) viewQuery(ctx context.Context, f OrderFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).
		Table("orders AS o").
		Select(orderViewColumns).
		Joins("LEFT JOIN order_items AS i ON i.order_id = o.id").
		Joins("LEFT JOIN menu_items AS m ON m.id = i.menu_item_id")

	if len(f.IDs) > 0 {
		q = q.Where("o.id IN ?", f.IDs)
	}
	if f.UserID != nil {
		q = q.Where("o.user_id = ?", *f.UserID)
	}
	if f.ServiceMode != "" {
		q = q.Where("o.service_mode = ?", f.ServiceMode)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("o.status IN ?", f.Statuses)
	}
	if f.Since != nil {
		q = q.Where("o.created_at >= ?", f.Since.UTC())
	}
	if f.Served != nil {
		q = q.Where("o.served = ?", *f.Served)
	}

	if f.OldestFirst {
		return q.Order("o.created_at ASC, o.id ASC, i.id ASC")
	}
	return q.Order("o.created_at DESC, o.id DESC, i.id ASC")
}

// List returns orders with their items grouped underneath.
func (s *OrderStore) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	var rows []orderRow
	if err := s.viewQuery(ctx, f).Scan(&rows).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return groupOrderRows(rows), nil
}

// Get returns one order with its items, menu names included.
func (s *OrderStore) Get(ctx context.Context, id uint) (*models.Order, error) {
	orders, err := s.List(ctx, OrderFilter{IDs: []uint{id}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, utils.NotFound("Order not found")
	}
	return &orders[0], nil
}

// GetItem loads a single order item.
func (s *OrderStore) GetItem(ctx context.Context, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.DB.WithContext(ctx).First(&item, itemID).Error
	if err != nil {
		return nil, translate(err, "Order item not found")
	}
	item.Status = item.Status.OrDefault()
	return &item, nil
}

// Update writes the given columns on one order.
func (s *OrderStore) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return utils.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Order not found")
	}
	return nil
}

// UpdateItem writes the given columns on one order item.
func (s *OrderStore) UpdateItem(ctx context.Context, itemID uint, fields map[string]any) error {
	res := s.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", itemID).Updates(fields)
	if res.Error != nil {
		return utils.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Order item not found")
	}
	return nil
}

func (s *OrderStore) AppendHistory(ctx context.Context, h *models.OrderStatusHistory) error {
	if err := s.DB.WithContext(ctx).Create(h).Error; err != nil {
		return utils.Internal(err)
	}
	return nil
}

func (s *OrderStore) History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := s.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	if err != nil {
		return nil, utils.Internal(err)
	}
	return history, nil
}

// SaveConfirmation records a PIN handoff. A repeated confirmation for the
// same order keeps the first record.
func (s *OrderStore) SaveConfirmation(ctx context.Context, c *models.DeliveryConfirmation) error {
	var existing int64
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.DeliveryConfirmation{}).Where("order_id = ?", c.OrderID).Count(&existing).Error; err != nil {
		return utils.Internal(err)
	}
	if existing > 0 {
		return nil
	}
	if err := db.Create(c).Error; err != nil {
		return utils.Internal(err)
	}
	return nil
}

func (s *OrderStore) Confirmation(ctx context.Context, orderID uint) (*models.DeliveryConfirmation, error) {
	var c models.DeliveryConfirmation
	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&c).Error; err != nil {
		return nil, translate(err, "Delivery confirmation not found")
	}
	return &c, nil
}

type OrderSummary struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Incomplete int64 `json:"incomplete"`
}

// Summary counts orders created since the given time (all time when nil).
func (s *OrderStore) Summary(ctx context.Context, since *time.Time) (OrderSummary, error) {
	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&models.Order{})
		if since != nil {
			q = q.Where("created_at >= ?", since.UTC())
		}
		return q
	}

	var summary OrderSummary
	if err := base().Count(&summary.Total).Error; err != nil {
		return summary, utils.Internal(err)
	}
	if err := base().Where("status = ?", models.OrderCompleted).Count(&summary.Completed).Error; err != nil {
		return summary, utils.Internal(err)
	}
	summary.Incomplete = summary.Total - summary.Completed
	return summary, nil
}

// RevenueEntry is one paid-or-completed order reduced to what revenue reports need.
type RevenueEntry struct {
	ServiceMode models.ServiceMode
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// RevenueEntries returns the orders that count as revenue since the given time.
func (s *OrderStore) RevenueEntries(ctx context.Context, since time.Time) ([]RevenueEntry, error) {
	var entries []RevenueEntry
	err := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("service_mode, total, created_at").
		Where("(paid = ? OR status = ?) AND created_at >= ?", true, models.OrderCompleted, since.UTC()).
		Scan(&entries).Error
	if err != nil {
		return nil, utils.Internal(err)
	}
	return entries, nil
}
