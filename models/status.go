package models

import "strings"

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderPreparing      OrderStatus = "preparing"
	OrderCompleted      OrderStatus = "completed"
	OrderOutForDelivery OrderStatus = "out-for-delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// settableStatuses are the values a caller may request through the status API.
// Cancelled is reachable only through the manager cancel endpoint.
var settableStatuses = map[OrderStatus]bool{
	OrderPending:        true,
	OrderPreparing:      true,
	OrderCompleted:      true,
	OrderOutForDelivery: true,
	OrderDelivered:      true,
}

func (s OrderStatus) Settable() bool {
	return settableStatuses[s]
}

// KitchenStatus reports whether the order is still owned by the kitchen.
func (s OrderStatus) KitchenStatus() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderCompleted
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemCompleted ItemStatus = "completed"
)

func (s ItemStatus) Valid() bool {
	return s == ItemPending || s == ItemPreparing || s == ItemCompleted
}

// OrDefault treats an empty status as pending.
func (s ItemStatus) OrDefault() ItemStatus {
	if s == "" {
		return ItemPending
	}
	return s
}

type ServiceMode string

const (
	ServiceDineIn   ServiceMode = "dine-in"
	ServiceDelivery ServiceMode = "delivery"
	ServicePickUp   ServiceMode = "pick-up"
)

var serviceModeAliases = map[string]ServiceMode{
	"dine-in":  ServiceDineIn,
	"dine_in":  ServiceDineIn,
	"dinein":   ServiceDineIn,
	"dine in":  ServiceDineIn,
	"delivery": ServiceDelivery,
	"pick-up":  ServicePickUp,
	"pick_up":  ServicePickUp,
	"pickup":   ServicePickUp,
	"pick up":  ServicePickUp,
	"takeaway": ServicePickUp,
}

// ParseServiceMode normalises the spellings clients send into one canonical value.
func ParseServiceMode(raw string) (ServiceMode, bool) {
	mode, ok := serviceModeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return mode, ok
}

type Role string

const (
	RoleKitchen   Role = "kitchen"
	RoleWaiter    Role = "waiter"
	RoleDelivery  Role = "delivery"
	RoleReception Role = "reception"
	RoleManager   Role = "manager"
	RoleGuest     Role = "guest"
)

var staffRoles = map[Role]bool{
	RoleKitchen:   true,
	RoleWaiter:    true,
	RoleDelivery:  true,
	RoleReception: true,
	RoleManager:   true,
}

func (r Role) Staff() bool {
	return staffRoles[r]
}
