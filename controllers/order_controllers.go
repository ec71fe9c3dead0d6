package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderController serves the customer-facing order endpoints.
type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type orderItemRequest struct {
	ID         uint    `json:"id"`
	MenuItemID uint    `json:"menuItemId"`
	Quantity   int     `json:"quantity"`
	Notes      *string `json:"notes"`
}

type createOrderRequest struct {
	UserID          *uint              `json:"userId"`
	ReservationID   *uint              `json:"reservationId"`
	ServiceMode     string             `json:"serviceMode"`
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress *string            `json:"deliveryAddress"`
	Paid            bool               `json:"paid"`
	Subtotal        *decimal.Decimal   `json:"subtotal"`
	VAT             *decimal.Decimal   `json:"vat"`
	Total           *decimal.Decimal   `json:"total"`
}

// CreateOrder -> POST /orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.CreateOrderInput{
		UserID:          req.UserID,
		ReservationID:   req.ReservationID,
		ServiceMode:     req.ServiceMode,
		DeliveryAddress: req.DeliveryAddress,
		Paid:            req.Paid,
		Subtotal:        req.Subtotal,
		VAT:             req.VAT,
		Total:           req.Total,
	}
	for _, item := range req.Items {
		menuID := item.MenuItemID
		if menuID == 0 {
			menuID = item.ID
		}
		in.Items = append(in.Items, services.OrderItemInput{
			MenuItemID: menuID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}

	order, err := oc.Orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrder -> GET /orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetUserOrders -> GET /orders/user/:userId
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, err := paramID(c, "userId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	orders, err := oc.Orders.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// TrackOrder -> GET /orders/:id/tracking
func (oc *OrderController) TrackOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	tracking, err := oc.Orders.Track(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order tracking", tracking)
}
