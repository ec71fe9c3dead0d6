package statemachine

import (
	"strings"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
)

// ParseItemStatus validates a requested item status.
func ParseItemStatus(raw string) (models.ItemStatus, error) {
	status := models.ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", utils.InvalidStatus("Invalid item status '%s'. Must be one of: pending, preparing, completed", raw)
	}
	return status, nil
}

// CheckItemTransition allows any item status while the kitchen owns the
// order. Items may move backwards so mistakes can be corrected. Once the
// order is completed or further along, an item may only be (re)set to completed.
func CheckItemTransition(orderStatus models.OrderStatus, to models.ItemStatus) error {
	switch orderStatus {
	case models.OrderPending, models.OrderPreparing:
		return nil
	case models.OrderCancelled:
		return utils.PreconditionFailed("Order is cancelled")
	}
	if to == models.ItemCompleted {
		return nil
	}
	return utils.PreconditionFailed("Cannot change item to %s while the order is %s", to, orderStatus)
}
