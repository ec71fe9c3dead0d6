package services

import (
	"context"
	"fmt"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
)

const (
	baseDeliveryETA  = 30
	minimumETA       = 5
	etaWindowMinutes = 5
)

type TrackingState struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

var (
	statePlaced   = TrackingState{Key: "placed", Label: "Order Placed", Message: "Your order has been placed."}
	statePrepared = TrackingState{Key: "prepared", Label: "Order Prepared", Message: "Your order is prepared and ready for pickup."}
	stateOnTheWay = TrackingState{Key: "on-the-way", Label: "On Its Way", Message: "Your order is on its way."}
	stateArrived  = TrackingState{Key: "delivered", Label: "Delivered", Message: "Your order has been delivered."}
	stateCanceled = TrackingState{Key: "cancelled", Label: "Cancelled", Message: "Your order was cancelled."}
)

type ETA struct {
	MinMinutes  int       `json:"min_minutes"`
	MaxMinutes  int       `json:"max_minutes"`
	Display     string    `json:"minutes"`
	ArrivalTime time.Time `json:"arrival_time"`
}

type Tracking struct {
	OrderID          uint               `json:"order_id"`
	Status           models.OrderStatus `json:"status"`
	ServiceMode      models.ServiceMode `json:"service_mode"`
	State            TrackingState      `json:"state"`
	Verified         bool               `json:"verified"`
	OutForDeliveryAt *time.Time         `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time         `json:"delivered_at,omitempty"`
	LastUpdated      time.Time          `json:"last_updated"`
	ETA              *ETA               `json:"eta"`
}

func trackingStateFor(status models.OrderStatus) TrackingState {
	switch status {
	case models.OrderCompleted:
		return statePrepared
	case models.OrderOutForDelivery:
		return stateOnTheWay
	case models.OrderDelivered:
		return stateArrived
	case models.OrderCancelled:
		return stateCanceled
	default:
		return statePlaced
	}
}

// EstimateETA is a pure function of elapsed time since dispatch: thirty
// minutes at departure, never below five, shown as a five-minute window.
func EstimateETA(departedAt, now time.Time) ETA {
	elapsed := int(now.Sub(departedAt) / time.Minute)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := max(minimumETA, baseDeliveryETA-elapsed)
	low := max(minimumETA, remaining-etaWindowMinutes)
	return ETA{
		MinMinutes:  low,
		MaxMinutes:  remaining,
		Display:     fmt.Sprintf("%d-%d minutes", low, remaining),
		ArrivalTime: now.Add(time.Duration(remaining) * time.Minute),
	}
}

// Track returns the customer's tracking view. An ETA is only given while the
// order is out for delivery.
func (s *OrderService) Track(ctx context.Context, orderID uint) (*Tracking, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	t := &Tracking{
		OrderID:          order.ID,
		Status:           order.Status,
		ServiceMode:      order.ServiceMode,
		State:            trackingStateFor(order.Status),
		Verified:         order.Verified,
		OutForDeliveryAt: order.OutForDeliveryAt,
		DeliveredAt:      order.DeliveredAt,
		LastUpdated:      order.UpdatedAt,
	}
	if order.Status == models.OrderOutForDelivery {
		departed := order.CreatedAt
		if order.OutForDeliveryAt != nil {
			departed = *order.OutForDeliveryAt
		}
		eta := EstimateETA(departed, s.now())
		t.ETA = &eta
	}
	return t, nil
}
