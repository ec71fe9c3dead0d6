package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/shopspring/decimal"
)

func redactAll(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Redacted()
	}
	return out
}

// GetOrder is the customer view and includes the confirmation PIN.
func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.orders.Get(ctx, orderID)
}

// ListUserOrders returns a customer's own orders, PIN included.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.List(ctx, database.OrderFilter{UserID: &userID})
}

// KitchenOrders lists work still in the kitchen, oldest first.
func (s *OrderService) KitchenOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, database.OrderFilter{
		Statuses:    []models.OrderStatus{models.OrderPending, models.OrderPreparing},
		OldestFirst: true,
	})
	if err != nil {
		return nil, err
	}
	return redactAll(orders), nil
}

// WaiterOrders lists completed dine-in orders. filter is ready (not yet
// served), served, or all.
func (s *OrderService) WaiterOrders(ctx context.Context, filter string) ([]models.Order, error) {
	f := database.OrderFilter{
		ServiceMode: models.ServiceDineIn,
		Statuses:    []models.OrderStatus{models.OrderCompleted},
	}
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "ready":
		served := false
		f.Served = &served
	case "served":
		served := true
		f.Served = &served
	case "all":
	default:
		return nil, utils.Validation("Invalid filter '%s'. Must be one of: ready, served, all", filter)
	}
	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return redactAll(orders), nil
}

// DeliveryOrders lists delivery orders ready to leave or on the road.
func (s *OrderService) DeliveryOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, database.OrderFilter{
		ServiceMode: models.ServiceDelivery,
		Statuses:    []models.OrderStatus{models.OrderCompleted, models.OrderOutForDelivery},
		OldestFirst: true,
	})
	if err != nil {
		return nil, err
	}
	return redactAll(orders), nil
}

// DeliveryOrder is the staff view of one delivery order, without the PIN.
func (s *OrderService) DeliveryOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ServiceMode != models.ServiceDelivery {
		return nil, utils.NotFound("Delivery order not found")
	}
	redacted := order.Redacted()
	return &redacted, nil
}

type AdminOrderQuery struct {
	Type      string
	Status    string
	TimeRange string
}

// AdminOrders lists orders for the manager dashboard, newest first.
func (s *OrderService) AdminOrders(ctx context.Context, q AdminOrderQuery) ([]models.Order, error) {
	since, err := ParseTimeRange(q.TimeRange, s.now())
	if err != nil {
		return nil, err
	}
	f := database.OrderFilter{Since: since}

	if t := strings.TrimSpace(q.Type); t != "" && !strings.EqualFold(t, "all") {
		mode, ok := models.ParseServiceMode(t)
		if !ok {
			return nil, utils.Validation("Invalid type '%s'", q.Type)
		}
		f.ServiceMode = mode
	}
	if st := strings.ToLower(strings.TrimSpace(q.Status)); st != "" && st != "all" {
		status := models.OrderStatus(st)
		if !status.Settable() && status != models.OrderCancelled {
			return nil, utils.InvalidStatus("Invalid status '%s'", q.Status)
		}
		f.Statuses = []models.OrderStatus{status}
	}

	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return redactAll(orders), nil
}

func (s *OrderService) Summary(ctx context.Context, timeRange string) (database.OrderSummary, error) {
	since, err := ParseTimeRange(timeRange, s.now())
	if err != nil {
		return database.OrderSummary{}, err
	}
	return s.orders.Summary(ctx, since)
}

type RevenueByType struct {
	ServiceMode models.ServiceMode `json:"service_mode"`
	Total       decimal.Decimal    `json:"total"`
	Count       int                `json:"count"`
}

type RevenueReport struct {
	Today  decimal.Decimal `json:"today"`
	Week   decimal.Decimal `json:"week"`
	Month  decimal.Decimal `json:"month"`
	ByType []RevenueByType `json:"byType"`
}

// Revenue totals paid or completed orders. The today/week/month buckets are
// fixed; ByType honours timeRange.
func (s *OrderService) Revenue(ctx context.Context, timeRange string) (*RevenueReport, error) {
	now := s.now()
	since, err := ParseTimeRange(timeRange, now)
	if err != nil {
		return nil, err
	}

	today := startOfDay(now)
	week := now.Add(-7 * 24 * time.Hour)
	month := now.Add(-30 * 24 * time.Hour)

	from := month
	if since == nil {
		from = time.Time{}
	} else if since.Before(from) {
		from = *since
	}

	entries, err := s.orders.RevenueEntries(ctx, from)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{Today: decimal.Zero, Week: decimal.Zero, Month: decimal.Zero, ByType: []RevenueByType{}}
	byType := map[models.ServiceMode]*RevenueByType{}
	for _, e := range entries {
		if !e.CreatedAt.Before(today) {
			report.Today = report.Today.Add(e.Total)
		}
		if !e.CreatedAt.Before(week) {
			report.Week = report.Week.Add(e.Total)
		}
		if !e.CreatedAt.Before(month) {
			report.Month = report.Month.Add(e.Total)
		}
		if since != nil && e.CreatedAt.Before(*since) {
			continue
		}
		row, ok := byType[e.ServiceMode]
		if !ok {
			row = &RevenueByType{ServiceMode: e.ServiceMode, Total: decimal.Zero}
			byType[e.ServiceMode] = row
		}
		row.Total = row.Total.Add(e.Total)
		row.Count++
	}
	for _, row := range byType {
		report.ByType = append(report.ByType, *row)
	}
	sort.Slice(report.ByType, func(i, j int) bool {
		return report.ByType[i].ServiceMode < report.ByType[j].ServiceMode
	})
	return report, nil
}

// History returns the audit trail of one order.
func (s *OrderService) History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.History(ctx, orderID)
}

func (s *OrderService) DeliveryNotifications(ctx context.Context, openOnly bool) ([]models.DeliveryNotification, error) {
	return s.orders.Notifications(ctx, openOnly)
}

// AcknowledgeDelivery marks the order's delivery notifications as seen.
func (s *OrderService) AcknowledgeDelivery(ctx context.Context, orderID uint, actor Actor) (int64, error) {
	if err := actor.requireRole(models.RoleDelivery); err != nil {
		return 0, err
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if order.ServiceMode != models.ServiceDelivery {
		return 0, utils.PreconditionFailed("Only delivery orders have delivery notifications")
	}
	return s.orders.AcknowledgeOrder(ctx, orderID, s.now())
}

// ParseTimeRange turns today, week, month or all into a lower bound on creation time.
func ParseTimeRange(raw string, now time.Time) (*time.Time, error) {
	var since time.Time
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return nil, nil
	case "today":
		since = startOfDay(now)
	case "week":
		since = now.Add(-7 * 24 * time.Hour)
	case "month":
		since = now.Add(-30 * 24 * time.Hour)
	default:
		return nil, utils.Validation("Invalid timeRange '%s'. Must be one of: today, week, month, all", raw)
	}
	return &since, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
