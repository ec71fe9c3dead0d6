package kds

import "github.com/faressmahmoud/DeliciousBites-RMS/models"

var roleEvents = map[models.Role]map[string]bool{
	models.RoleKitchen: {
		EventNewOrder:           true,
		EventOrderStatusChanged: true,
		EventKitchenOrderUpdate: true,
	},
	models.RoleWaiter: {
		EventNewOrder:            true,
		EventOrderStatusChanged:  true,
		EventKitchenOrderUpdate:  true,
		EventOrderReadyForWaiter: true,
		EventOrderServed:         true,
		EventReservationCreated:  true,
		EventReservationUpdated:  true,
		EventReservationDeleted:  true,
	},
	models.RoleDelivery: {
		EventNewOrder:              true,
		EventOrderStatusChanged:    true,
		EventKitchenOrderUpdate:    true,
		EventOrderPaidChanged:      true,
		EventDeliveryOrderReady:    true,
		EventDeliveryOrderVerified: true,
	},
	models.RoleReception: {
		EventNewOrder:           true,
		EventOrderStatusChanged: true,
		EventOrderServed:        true,
		EventSummaryUpdate:      true,
		EventReservationCreated: true,
		EventReservationUpdated: true,
		EventReservationDeleted: true,
	},
}

// serviceModeFor lists the roles that only care about one service flow.
var serviceModeFor = map[models.Role]models.ServiceMode{
	models.RoleWaiter:   models.ServiceDineIn,
	models.RoleDelivery: models.ServiceDelivery,
}

// RelevantTo is the dashboard-side predicate applied server-side for scoped
// sessions. Managers and guests see every event.
func RelevantTo(role models.Role, msg Message) bool {
	events, ok := roleEvents[role]
	if !ok {
		return true
	}
	if !events[msg.Event] {
		return false
	}
	if mode, ok := serviceModeFor[role]; ok && msg.ServiceMode != "" && msg.ServiceMode != mode {
		return false
	}
	return true
}
