package kds

import (
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/shopspring/decimal"
)

const (
	EventNewOrder              = "new-order"
	EventOrderStatusChanged    = "order-status-changed"
	EventKitchenOrderUpdate    = "kitchen-order-update"
	EventOrderPaidChanged      = "order-paid-changed"
	EventRevenueUpdate         = "revenue-update"
	EventSummaryUpdate         = "summary-update"
	EventDeliveryOrderReady    = "delivery-order-ready"
	EventDeliveryOrderVerified = "delivery-order-verified"
	EventOrderReadyForWaiter   = "order-ready-for-waiter"
	EventOrderServed           = "order-served"
	EventReservationCreated    = "reservation-created"
	EventReservationUpdated    = "reservation-updated"
	EventReservationDeleted    = "reservation-deleted"
)

// Summary and revenue type tags.
const (
	TypeNewOrder      = "newOrder"
	TypeStatusChanged = "statusChanged"
	TypeOrderPaid     = "orderPaid"
	TypeOrderUnpaid   = "orderUnpaid"
)

type StatusChange struct {
	OrderID     uint               `json:"orderId"`
	Status      models.OrderStatus `json:"status"`
	ServiceMode models.ServiceMode `json:"serviceMode"`
}

type KitchenUpdate struct {
	OrderID uint    `json:"orderId"`
	ItemID  *uint   `json:"itemId,omitempty"`
	Status  string  `json:"status"`
	Notes   *string `json:"notes,omitempty"`
}

type PaidChange struct {
	OrderID uint `json:"orderId"`
	Paid    bool `json:"paid"`
}

type RevenueChange struct {
	Type    string        `json:"type"`
	OrderID uint          `json:"orderId,omitempty"`
	Order   *models.Order `json:"order,omitempty"`
}

type SummaryChange struct {
	Type string `json:"type"`
}

type DeliveryReady struct {
	OrderID uint            `json:"orderId"`
	UserID  *uint           `json:"userId"`
	Address *string         `json:"address"`
	Total   decimal.Decimal `json:"total"`
}

type DeliveryVerified struct {
	OrderID    uint      `json:"orderId"`
	VerifiedAt time.Time `json:"verifiedAt"`
}

type WaiterItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type WaiterReady struct {
	OrderID       uint         `json:"orderId"`
	ReservationID *uint        `json:"reservationId"`
	Items         []WaiterItem `json:"items"`
}

type Served struct {
	OrderID  uint      `json:"orderId"`
	ServedAt time.Time `json:"servedAt"`
}

type ReservationRemoved struct {
	ID uint `json:"id"`
}

// Order events never carry the confirmation PIN.

func NewOrderEvent(order models.Order) Message {
	return newMessage(EventNewOrder, order.ServiceMode, order.Redacted())
}

func StatusChangedEvent(order models.Order) Message {
	return newMessage(EventOrderStatusChanged, order.ServiceMode, StatusChange{
		OrderID:     order.ID,
		Status:      order.Status,
		ServiceMode: order.ServiceMode,
	})
}

func KitchenOrderEvent(order models.Order) Message {
	return newMessage(EventKitchenOrderUpdate, order.ServiceMode, KitchenUpdate{
		OrderID: order.ID,
		Status:  string(order.Status),
	})
}

func KitchenItemEvent(order models.Order, item models.OrderItem) Message {
	itemID := item.ID
	return newMessage(EventKitchenOrderUpdate, order.ServiceMode, KitchenUpdate{
		OrderID: order.ID,
		ItemID:  &itemID,
		Status:  string(item.Status),
		Notes:   item.Notes,
	})
}

func PaidChangedEvent(order models.Order) Message {
	return newMessage(EventOrderPaidChanged, order.ServiceMode, PaidChange{OrderID: order.ID, Paid: order.Paid})
}

// RevenueEvent attaches the whole order on creation and only the id otherwise.
func RevenueEvent(kind string, order models.Order, withOrder bool) Message {
	change := RevenueChange{Type: kind, OrderID: order.ID}
	if withOrder {
		redacted := order.Redacted()
		change.Order = &redacted
	}
	return newMessage(EventRevenueUpdate, "", change)
}

func SummaryEvent(kind string) Message {
	return newMessage(EventSummaryUpdate, "", SummaryChange{Type: kind})
}

func DeliveryReadyEvent(order models.Order) Message {
	return newMessage(EventDeliveryOrderReady, models.ServiceDelivery, DeliveryReady{
		OrderID: order.ID,
		UserID:  order.UserID,
		Address: order.DeliveryAddress,
		Total:   order.Total,
	})
}

func DeliveryVerifiedEvent(order models.Order) Message {
	verifiedAt := order.UpdatedAt
	if order.VerifiedAt != nil {
		verifiedAt = *order.VerifiedAt
	}
	return newMessage(EventDeliveryOrderVerified, models.ServiceDelivery, DeliveryVerified{
		OrderID:    order.ID,
		VerifiedAt: verifiedAt,
	})
}

func WaiterReadyEvent(order models.Order) Message {
	items := make([]WaiterItem, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.MenuItemName
		if name == "" {
			name = "Item"
		}
		items = append(items, WaiterItem{Name: name, Quantity: item.Quantity})
	}
	return newMessage(EventOrderReadyForWaiter, models.ServiceDineIn, WaiterReady{
		OrderID:       order.ID,
		ReservationID: order.ReservationID,
		Items:         items,
	})
}

func ServedEvent(order models.Order) Message {
	servedAt := order.UpdatedAt
	if order.ServedAt != nil {
		servedAt = *order.ServedAt
	}
	return newMessage(EventOrderServed, models.ServiceDineIn, Served{OrderID: order.ID, ServedAt: servedAt})
}

func ReservationCreatedEvent(r models.Reservation) Message {
	return newMessage(EventReservationCreated, "", r)
}

func ReservationUpdatedEvent(r models.Reservation) Message {
	return newMessage(EventReservationUpdated, "", r)
}

func ReservationDeletedEvent(id uint) Message {
	return newMessage(EventReservationDeleted, "", ReservationRemoved{ID: id})
}
