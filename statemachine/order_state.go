package statemachine

import (
	"strings"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
)

// Transition defines a valid status change and the role allowed to perform it.
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.Role        `json:"actor"`
}

// validTransitions is the authoritative order status graph. Managers are
// granted every edge separately in transitionMap.
var validTransitions = []Transition{
	// Kitchen moves freely between its own three states
	{From: models.OrderPending, To: models.OrderPreparing, Actor: models.RoleKitchen},
	{From: models.OrderPending, To: models.OrderCompleted, Actor: models.RoleKitchen},
	{From: models.OrderPreparing, To: models.OrderPending, Actor: models.RoleKitchen},
	{From: models.OrderPreparing, To: models.OrderCompleted, Actor: models.RoleKitchen},
	{From: models.OrderCompleted, To: models.OrderPending, Actor: models.RoleKitchen},
	{From: models.OrderCompleted, To: models.OrderPreparing, Actor: models.RoleKitchen},
	// Delivery staff take a verified order out and hand it over
	{From: models.OrderCompleted, To: models.OrderOutForDelivery, Actor: models.RoleDelivery},
	{From: models.OrderCompleted, To: models.OrderDelivered, Actor: models.RoleDelivery},
	{From: models.OrderOutForDelivery, To: models.OrderDelivered, Actor: models.RoleDelivery},
	// Cancellation is a manager override
	{From: models.OrderPending, To: models.OrderCancelled, Actor: models.RoleManager},
	{From: models.OrderPreparing, To: models.OrderCancelled, Actor: models.RoleManager},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.Role
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
		m[transitionKey{t.From, t.To, models.RoleManager}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state, for any actor.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether actor may move an order from one status to another.
// An edge that exists for some other role is Forbidden; an edge that does not
// exist at all is PreconditionFailed.
func CanTransition(from, to models.OrderStatus, actor models.Role) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	for _, t := range validTransitions {
		if t.From == from && t.To == to {
			return utils.Forbidden("role '%s' may not move an order from %s to %s", actor, from, to)
		}
	}
	return utils.PreconditionFailed(
		"invalid transition: %s -> %s. Valid transitions from %s are: %s",
		from, to, from, describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full graph for the manager dashboard.
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

// ParseTargetStatus validates a status requested through the API.
func ParseTargetStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Settable() {
		return "", utils.InvalidStatus("Invalid status '%s'. Must be one of: pending, preparing, completed, out-for-delivery, delivered", raw)
	}
	return status, nil
}

// ParseKitchenStatus validates a status requested from the kitchen dashboard.
func ParseKitchenStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.KitchenStatus() {
		return "", utils.InvalidStatus("Invalid status '%s'. Must be one of: pending, preparing, completed", raw)
	}
	return status, nil
}

// CheckOrderTransition runs the row-state preconditions for moving order to
// the target status. The order must be loaded with its items. It does not
// check the actor; see CanTransition.
func CheckOrderTransition(order *models.Order, to models.OrderStatus) error {
	from := order.Status

	if from.Terminal() {
		return utils.PreconditionFailed("Order is already %s", from)
	}

	switch to {
	case models.OrderPending, models.OrderPreparing:
		if order.Verified || order.Served {
			return utils.PreconditionFailed("Order has already been handed off and cannot return to %s", to)
		}
	case models.OrderCompleted:
		if n := order.IncompleteItems(); n > 0 {
			return utils.PreconditionFailed(
				"Cannot mark order as ready. Some items are not yet complete. (%d of %d items unfinished)",
				n, len(order.Items),
			)
		}
	case models.OrderOutForDelivery:
		if order.ServiceMode != models.ServiceDelivery {
			return utils.PreconditionFailed("Only delivery orders can go out for delivery")
		}
		if !order.Verified {
			return utils.PreconditionFailed("Order must be verified before starting delivery")
		}
		if from != models.OrderCompleted {
			return utils.PreconditionFailed("Order must be completed before starting delivery")
		}
	case models.OrderDelivered:
		if order.ServiceMode != models.ServiceDelivery {
			return utils.PreconditionFailed("Only delivery orders can be marked delivered")
		}
		if !order.Verified {
			return utils.PreconditionFailed("Order must be verified before delivery")
		}
	case models.OrderCancelled:
		if from != models.OrderPending && from != models.OrderPreparing {
			return utils.PreconditionFailed("Only pending or preparing orders can be cancelled")
		}
	}
	return nil
}

// CheckVerify is the gate for the delivery verification step.
func CheckVerify(order *models.Order) error {
	if order.ServiceMode != models.ServiceDelivery {
		return utils.PreconditionFailed("Only delivery orders can be verified")
	}
	if order.Status != models.OrderCompleted {
		return utils.PreconditionFailed("Order must be completed before verification (current status: %s)", order.Status)
	}
	return nil
}

// CheckServe is the gate for a waiter marking a dine-in order served.
func CheckServe(order *models.Order) error {
	if order.ServiceMode != models.ServiceDineIn {
		return utils.PreconditionFailed("Only dine-in orders can be marked as served")
	}
	if order.Status != models.OrderCompleted {
		return utils.PreconditionFailed("Order must be completed before it can be served (current status: %s)", order.Status)
	}
	return nil
}

// CheckPin compares the customer's PIN with the stored one after trimming both.
func CheckPin(order *models.Order, pin string) error {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return utils.Validation("Confirmation PIN is required")
	}
	if order.ConfirmationPin == nil || strings.TrimSpace(*order.ConfirmationPin) != pin {
		return utils.InvalidCredential("Invalid confirmation PIN")
	}
	return nil
}
