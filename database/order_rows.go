package database

import (
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/shopspring/decimal"
)

// orderRow is one row of the orders LEFT JOIN order_items LEFT JOIN menu_items view.
// Item columns are nullable because an order with no items still yields one row.
type orderRow struct {
	ID               uint
	UserID           *uint
	ReservationID    *uint
	ServiceMode      string
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	Status           string
	Paid             bool
	DeliveryAddress  *string
	ConfirmationPin  *string
	Verified         bool
	VerifiedAt       *time.Time
	Served           bool
	ServedAt         *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	ItemID         *uint
	ItemMenuItemID *uint
	ItemMenuName   *string
	ItemQuantity   *int
	ItemPrice      decimal.NullDecimal
	ItemStatus     *string
	ItemNotes      *string
	ItemCreatedAt  *time.Time
	ItemUpdatedAt  *time.Time
}

const orderViewColumns = `o.id, o.user_id, o.reservation_id, o.service_mode, o.subtotal, o.tax, o.total,
	o.status, o.paid, o.delivery_address, o.confirmation_pin, o.verified, o.verified_at,
	o.served, o.served_at, o.out_for_delivery_at, o.delivered_at, o.created_at, o.updated_at,
	i.id AS item_id, i.menu_item_id AS item_menu_item_id, m.name AS item_menu_name,
	i.quantity AS item_quantity, i.price AS item_price, i.status AS item_status,
	i.notes AS item_notes, i.created_at AS item_created_at, i.updated_at AS item_updated_at`

func (r *orderRow) order() models.Order {
	return models.Order{
		ID:               r.ID,
		UserID:           r.UserID,
		ReservationID:    r.ReservationID,
		ServiceMode:      models.ServiceMode(r.ServiceMode),
		Subtotal:         r.Subtotal,
		Tax:              r.Tax,
		Total:            r.Total,
		Status:           models.OrderStatus(r.Status),
		Paid:             r.Paid,
		DeliveryAddress:  r.DeliveryAddress,
		ConfirmationPin:  r.ConfirmationPin,
		Verified:         r.Verified,
		VerifiedAt:       r.VerifiedAt,
		Served:           r.Served,
		ServedAt:         r.ServedAt,
		OutForDeliveryAt: r.OutForDeliveryAt,
		DeliveredAt:      r.DeliveredAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Items:            []models.OrderItem{},
	}
}

// item returns the joined item, or false for the null artifact an order
// without items produces.
func (r *orderRow) item() (models.OrderItem, bool) {
	if r.ItemID == nil {
		return models.OrderItem{}, false
	}
	item := models.OrderItem{
		ID:      *r.ItemID,
		OrderID: r.ID,
		Price:   r.ItemPrice.Decimal,
		Notes:   r.ItemNotes,
	}
	if r.ItemMenuItemID != nil {
		item.MenuItemID = *r.ItemMenuItemID
	}
	if r.ItemMenuName != nil {
		item.MenuItemName = *r.ItemMenuName
	}
	if r.ItemQuantity != nil {
		item.Quantity = *r.ItemQuantity
	}
	if r.ItemStatus != nil {
		item.Status = models.ItemStatus(*r.ItemStatus)
	}
	item.Status = item.Status.OrDefault()
	if r.ItemCreatedAt != nil {
		item.CreatedAt = *r.ItemCreatedAt
	}
	if r.ItemUpdatedAt != nil {
		item.UpdatedAt = *r.ItemUpdatedAt
	}
	return item, true
}

// groupOrderRows folds joined rows into orders with their items, keeping the
// order in which each order id first appears.
func groupOrderRows(rows []orderRow) []models.Order {
	orders := make([]models.Order, 0)
	index := make(map[uint]int)

	for i := range rows {
		row := &rows[i]
		pos, ok := index[row.ID]
		if !ok {
			orders = append(orders, row.order())
			pos = len(orders) - 1
			index[row.ID] = pos
		}
		if item, ok := row.item(); ok {
			orders[pos].Items = append(orders[pos].Items, item)
		}
	}
	return orders
}
