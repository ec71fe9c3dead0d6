package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/statemachine"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// totalsTolerance is how far client-computed totals may drift from ours.
var totalsTolerance = decimal.RequireFromString("0.01")

// OrderService owns every order and item transition. Each mutation is one
// transaction; events are published only after it commits.
type OrderService struct {
	orders  *database.OrderStore
	menu    *database.MenuStore
	events  kds.Publisher
	vatRate decimal.Decimal
	pins    PinGenerator
	now     func() time.Time
}

func NewOrderService(orders *database.OrderStore, menu *database.MenuStore, events kds.Publisher, vatRate decimal.Decimal) *OrderService {
	return &OrderService{
		orders:  orders,
		menu:    menu,
		events:  events,
		vatRate: vatRate,
		pins:    RandomPin,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithPinGenerator swaps the PIN source, for tests.
func (s *OrderService) WithPinGenerator(gen PinGenerator) *OrderService {
	s.pins = gen
	return s
}

// WithClock swaps the time source, for tests.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
	Notes      *string
}

type CreateOrderInput struct {
	UserID          *uint
	ReservationID   *uint
	ServiceMode     string
	Items           []OrderItemInput
	DeliveryAddress *string
	Paid            bool

	// Optional client-side totals, checked against the server's.
	Subtotal *decimal.Decimal
	VAT      *decimal.Decimal
	Total    *decimal.Decimal
}

// CreateOrder prices the items from the live menu and stores the order with
// all of its items atomically. Delivery orders get a confirmation PIN.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, utils.Validation("Order items are required")
	}
	mode, ok := models.ParseServiceMode(in.ServiceMode)
	if !ok {
		return nil, utils.Validation("Invalid service mode '%s'. Must be one of: dine-in, delivery, pick-up", in.ServiceMode)
	}

	var address *string
	if in.DeliveryAddress != nil {
		if trimmed := strings.TrimSpace(*in.DeliveryAddress); trimmed != "" {
			address = &trimmed
		}
	}
	if mode == models.ServiceDelivery && address == nil {
		return nil, utils.Validation("Delivery address is required for delivery orders")
	}
	if mode != models.ServiceDelivery {
		address = nil
	}

	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, utils.Validation("Quantity for menu item %d must be positive", item.MenuItemID)
		}
		ids = append(ids, item.MenuItemID)
	}
	menu, err := s.menu.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          in.UserID,
		ReservationID:   in.ReservationID,
		ServiceMode:     mode,
		Status:          models.OrderPending,
		Paid:            in.Paid,
		DeliveryAddress: address,
	}
	subtotal := decimal.Zero
	for _, item := range in.Items {
		menuItem, ok := menu[item.MenuItemID]
		if !ok {
			return nil, utils.Validation("Unknown menu item %d", item.MenuItemID)
		}
		line := models.OrderItem{
			MenuItemID:   menuItem.ID,
			MenuItemName: menuItem.Name,
			Quantity:     item.Quantity,
			Price:        menuItem.Price,
			Status:       models.ItemPending,
			Notes:        item.Notes,
		}
		subtotal = subtotal.Add(line.LineTotal())
		order.Items = append(order.Items, line)
	}
	order.Subtotal = subtotal.Round(2)
	order.Tax = subtotal.Mul(s.vatRate).Round(2)
	order.Total = order.Subtotal.Add(order.Tax)

	if err := checkClientTotal("subtotal", in.Subtotal, order.Subtotal); err != nil {
		return nil, err
	}
	if err := checkClientTotal("vat", in.VAT, order.Tax); err != nil {
		return nil, err
	}
	if err := checkClientTotal("total", in.Total, order.Total); err != nil {
		return nil, err
	}

	if mode == models.ServiceDelivery {
		pin, err := s.pins()
		if err != nil {
			return nil, utils.Internal(err)
		}
		order.ConfirmationPin = &pin
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	created, err := s.orders.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":     created.ID,
		"service_mode": created.ServiceMode,
		"items":        len(created.Items),
		"total":        created.Total.StringFixed(2),
	}).Info("Order created")

	s.events.Publish(kds.NewOrderEvent(*created))
	s.events.Publish(kds.SummaryEvent(kds.TypeNewOrder))
	if created.Paid {
		s.events.Publish(kds.RevenueEvent(kds.TypeOrderPaid, *created, true))
	}
	return created, nil
}

func checkClientTotal(field string, sent *decimal.Decimal, computed decimal.Decimal) error {
	if sent == nil {
		return nil
	}
	if sent.Sub(computed).Abs().GreaterThan(totalsTolerance) {
		return utils.Validation("Order %s %s does not match computed %s", field, sent.StringFixed(2), computed.StringFixed(2))
	}
	return nil
}

// transition is what one committed mutation changed, used to pick events.
type transition struct {
	fromStatus models.OrderStatus
	fromPaid   bool
	changed    bool
}

// mutate loads the order inside a transaction and hands it to fn. The order
// is reloaded after commit so events and responses see stored state.
func (s *OrderService) mutate(ctx context.Context, orderID uint, fn func(tx *database.OrderStore, order *models.Order) (bool, error)) (*models.Order, transition, error) {
	var tr transition
	err := s.orders.Transaction(ctx, func(tx *database.OrderStore) error {
		order, err := tx.Get(ctx, orderID)
		if err != nil {
			return err
		}
		tr.fromStatus = order.Status
		tr.fromPaid = order.Paid
		tr.changed, err = fn(tx, order)
		return err
	})
	if err != nil {
		return nil, tr, err
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, tr, err
	}
	return order, tr, nil
}

// applyStatus checks and writes one order status change, with its history
// row, inside the caller's transaction. Re-applying the current status is a no-op.
func (s *OrderService) applyStatus(ctx context.Context, tx *database.OrderStore, order *models.Order, to models.OrderStatus, actor Actor, note string) (bool, error) {
	if order.Status == to {
		return false, nil
	}
	if err := statemachine.CanTransition(order.Status, to, actor.Role); err != nil {
		return false, err
	}
	if err := statemachine.CheckOrderTransition(order, to); err != nil {
		return false, err
	}

	now := s.now()
	fields := map[string]any{"status": to}
	switch to {
	case models.OrderCompleted:
		// A ready order is billable, even when it is paid in cash later.
		fields["paid"] = true
	case models.OrderOutForDelivery:
		fields["out_for_delivery_at"] = now
	case models.OrderDelivered:
		fields["delivered_at"] = now
	}
	if err := tx.Update(ctx, order.ID, fields); err != nil {
		return false, err
	}
	if err := s.appendHistory(ctx, tx, order.ID, order.Status, to, actor, note); err != nil {
		return false, err
	}

	if to == models.OrderCompleted && order.ServiceMode == models.ServiceDelivery {
		err := tx.CreateNotification(ctx, &models.DeliveryNotification{
			OrderID: order.ID,
			Message: fmt.Sprintf("Order #%d is ready for delivery (%s)", order.ID, utils.FormatEGP(order.Total)),
		})
		if err != nil {
			return false, err
		}
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       to,
		"role":     actor.Role,
	}).Info("Order status changed")
	return true, nil
}

func (s *OrderService) appendHistory(ctx context.Context, tx *database.OrderStore, orderID uint, from, to models.OrderStatus, actor Actor, note string) error {
	return tx.AppendHistory(ctx, &models.OrderStatusHistory{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ActorRole:  actor.Role,
		ActorID:    actor.StaffID,
		Note:       note,
		CreatedAt:  s.now(),
	})
}

// publishTransition emits the events for a committed status change.
func (s *OrderService) publishTransition(order *models.Order, tr transition) {
	if !tr.changed {
		return
	}
	s.events.Publish(kds.StatusChangedEvent(*order))
	if tr.fromStatus.KitchenStatus() || order.Status.KitchenStatus() || order.Status == models.OrderCancelled {
		s.events.Publish(kds.KitchenOrderEvent(*order))
	}
	if order.Paid != tr.fromPaid {
		s.events.Publish(kds.PaidChangedEvent(*order))
	}
	if order.Status == models.OrderCompleted {
		s.events.Publish(kds.RevenueEvent(kds.TypeOrderPaid, *order, false))
		switch order.ServiceMode {
		case models.ServiceDelivery:
			s.events.Publish(kds.DeliveryReadyEvent(*order))
		case models.ServiceDineIn:
			s.events.Publish(kds.WaiterReadyEvent(*order))
		}
	}
	s.events.Publish(kds.SummaryEvent(kds.TypeStatusChanged))
}

// SetKitchenStatus moves an order among pending, preparing and completed.
func (s *OrderService) SetKitchenStatus(ctx context.Context, orderID uint, rawStatus string, actor Actor) (*models.Order, error) {
	to, err := statemachine.ParseKitchenStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		return s.applyStatus(ctx, tx, order, to, actor, "kitchen")
	})
	if err != nil {
		return nil, err
	}
	s.publishTransition(order, tr)
	return order, nil
}

// AdminSetStatus is the manager override. It runs the same guards as the
// role-specific paths; moving to delivered still needs the customer's PIN.
func (s *OrderService) AdminSetStatus(ctx context.Context, orderID uint, rawStatus, pin string, actor Actor) (*models.Order, error) {
	if err := actor.requireRole(); err != nil {
		return nil, err
	}
	to, err := statemachine.ParseTargetStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if to == models.OrderDelivered {
		return s.Deliver(ctx, orderID, pin, actor)
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		return s.applyStatus(ctx, tx, order, to, actor, "admin override")
	})
	if err != nil {
		return nil, err
	}
	s.publishTransition(order, tr)
	return order, nil
}

// Cancel moves a pending or preparing order to cancelled.
func (s *OrderService) Cancel(ctx context.Context, orderID uint, reason string, actor Actor) (*models.Order, error) {
	note := "cancelled"
	if r := strings.TrimSpace(reason); r != "" {
		note = r
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		return s.applyStatus(ctx, tx, order, models.OrderCancelled, actor, note)
	})
	if err != nil {
		return nil, err
	}
	s.publishTransition(order, tr)
	return order, nil
}

// SetPaid is the manager override for the paid flag. A completed or later
// order cannot be marked unpaid.
func (s *OrderService) SetPaid(ctx context.Context, orderID uint, paid bool, actor Actor) (*models.Order, error) {
	if err := actor.requireRole(); err != nil {
		return nil, err
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if order.Paid == paid {
			return false, nil
		}
		if !paid {
			switch order.Status {
			case models.OrderCompleted, models.OrderOutForDelivery, models.OrderDelivered:
				return false, utils.PreconditionFailed("A %s order is always paid", order.Status)
			}
		}
		return true, tx.Update(ctx, order.ID, map[string]any{"paid": paid})
	})
	if err != nil {
		return nil, err
	}
	if tr.changed {
		kind := kds.TypeOrderPaid
		if !order.Paid {
			kind = kds.TypeOrderUnpaid
		}
		s.events.Publish(kds.PaidChangedEvent(*order))
		s.events.Publish(kds.RevenueEvent(kind, *order, false))
	}
	return order, nil
}

// SetItemStatus changes one item's status and, optionally, its notes.
func (s *OrderService) SetItemStatus(ctx context.Context, itemID uint, rawStatus string, notes *string, actor Actor) (*models.Order, *models.OrderItem, error) {
	if err := actor.requireRole(models.RoleKitchen); err != nil {
		return nil, nil, err
	}
	to, err := statemachine.ParseItemStatus(rawStatus)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.orders.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	order, tr, err := s.mutate(ctx, item.OrderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		current, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return false, err
		}
		if err := statemachine.CheckItemTransition(order.Status, to); err != nil {
			return false, err
		}
		fields := map[string]any{}
		if current.Status != to {
			fields["status"] = to
		}
		if notes != nil && (current.Notes == nil || *current.Notes != *notes) {
			fields["notes"] = *notes
		}
		if len(fields) == 0 {
			return false, nil
		}
		return true, tx.UpdateItem(ctx, itemID, fields)
	})
	if err != nil {
		return nil, nil, err
	}

	var updated *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			updated = &order.Items[i]
			break
		}
	}
	if updated == nil {
		return nil, nil, utils.NotFound("Order item not found")
	}
	if tr.changed {
		s.events.Publish(kds.KitchenItemEvent(*order, *updated))
	}
	return order, updated, nil
}

// Verify records that all items of a completed delivery order are physically present.
func (s *OrderService) Verify(ctx context.Context, orderID uint, actor Actor) (*models.Order, error) {
	if err := actor.requireRole(models.RoleDelivery); err != nil {
		return nil, err
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if order.Verified && order.ServiceMode == models.ServiceDelivery {
			return false, nil
		}
		if err := statemachine.CheckVerify(order); err != nil {
			return false, err
		}
		if err := tx.Update(ctx, order.ID, map[string]any{"verified": true, "verified_at": s.now()}); err != nil {
			return false, err
		}
		return true, s.appendHistory(ctx, tx, order.ID, order.Status, order.Status, actor, "verified")
	})
	if err != nil {
		return nil, err
	}
	if tr.changed {
		s.events.Publish(kds.DeliveryVerifiedEvent(*order))
	}
	return order, nil
}

// StartDelivery dispatches a verified, completed delivery order.
func (s *OrderService) StartDelivery(ctx context.Context, orderID uint, actor Actor) (*models.Order, error) {
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if order.ServiceMode != models.ServiceDelivery {
			return false, utils.PreconditionFailed("Only delivery orders can go out for delivery")
		}
		return s.applyStatus(ctx, tx, order, models.OrderOutForDelivery, actor, "start delivery")
	})
	if err != nil {
		return nil, err
	}
	s.publishTransition(order, tr)
	return order, nil
}

// Deliver completes the handoff once the customer's PIN matches. The PIN is
// checked on every call, including repeats on an already delivered order.
func (s *OrderService) Deliver(ctx context.Context, orderID uint, pin string, actor Actor) (*models.Order, error) {
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if order.ServiceMode != models.ServiceDelivery {
			return false, utils.PreconditionFailed("Only delivery orders can be marked delivered")
		}
		if order.Status == models.OrderDelivered {
			return false, statemachine.CheckPin(order, pin)
		}
		if err := statemachine.CanTransition(order.Status, models.OrderDelivered, actor.Role); err != nil {
			return false, err
		}
		if err := statemachine.CheckOrderTransition(order, models.OrderDelivered); err != nil {
			return false, err
		}
		if err := statemachine.CheckPin(order, pin); err != nil {
			return false, err
		}
		changed, err := s.applyStatus(ctx, tx, order, models.OrderDelivered, actor, "delivered with PIN")
		if err != nil {
			return false, err
		}
		return changed, tx.SaveConfirmation(ctx, &models.DeliveryConfirmation{
			OrderID:     order.ID,
			Method:      "PIN",
			ConfirmedBy: actor.StaffID,
			CreatedAt:   s.now(),
		})
	})
	if err != nil {
		if utils.IsKind(err, utils.KindInvalidCredential) {
			utils.ErrorLogger.WithFields(logrus.Fields{"order_id": orderID, "role": actor.Role}).Warn("Delivery PIN mismatch")
		}
		return nil, err
	}
	s.publishTransition(order, tr)
	return order, nil
}

// MarkServed flags a completed dine-in order as served at the table.
func (s *OrderService) MarkServed(ctx context.Context, orderID uint, actor Actor) (*models.Order, error) {
	if err := actor.requireRole(models.RoleWaiter); err != nil {
		return nil, err
	}
	order, tr, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if err := statemachine.CheckServe(order); err != nil {
			return false, err
		}
		if order.Served {
			return false, nil
		}
		if err := tx.Update(ctx, order.ID, map[string]any{"served": true, "served_at": s.now()}); err != nil {
			return false, err
		}
		return true, s.appendHistory(ctx, tx, order.ID, order.Status, order.Status, actor, "served")
	})
	if err != nil {
		return nil, err
	}
	if tr.changed {
		s.events.Publish(kds.ServedEvent(*order))
		s.events.Publish(kds.SummaryEvent(kds.TypeStatusChanged))
	}
	return order, nil
}

// UpdateDeliveryAddress changes where a delivery order goes, until it has left.
func (s *OrderService) UpdateDeliveryAddress(ctx context.Context, orderID uint, address string, actor Actor) (*models.Order, error) {
	if err := actor.requireRole(models.RoleDelivery, models.RoleReception); err != nil {
		return nil, err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, utils.Validation("Delivery address is required")
	}
	order, _, err := s.mutate(ctx, orderID, func(tx *database.OrderStore, order *models.Order) (bool, error) {
		if order.ServiceMode != models.ServiceDelivery {
			return false, utils.PreconditionFailed("Only delivery orders have an address")
		}
		switch order.Status {
		case models.OrderOutForDelivery, models.OrderDelivered, models.OrderCancelled:
			return false, utils.PreconditionFailed("Address cannot change once the order is %s", order.Status)
		}
		return true, tx.Update(ctx, order.ID, map[string]any{"delivery_address": address})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
