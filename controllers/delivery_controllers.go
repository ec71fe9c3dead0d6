package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// DeliveryController drives the verify, dispatch and handoff steps of delivery orders.
type DeliveryController struct {
	Orders *services.OrderService
}

func NewDeliveryController(orders *services.OrderService) *DeliveryController {
	return &DeliveryController{Orders: orders}
}

type deliverRequest struct {
	ConfirmationPin string `json:"confirmationPin"`
}

type addressRequest struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
}

// GetOrders -> GET /delivery/orders
func (dc *DeliveryController) GetOrders(c *gin.Context) {
	orders, err := dc.Orders.DeliveryOrders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery orders", orders)
}

// GetOrder -> GET /delivery/orders/:id
func (dc *DeliveryController) GetOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := dc.Orders.DeliveryOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery order", order)
}

// UpdateOrder -> PUT /delivery/orders/:id
func (dc *DeliveryController) UpdateOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := dc.Orders.UpdateDeliveryAddress(c.Request.Context(), id, req.DeliveryAddress, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery address updated", staffView(order))
}

// Verify -> POST /delivery/orders/:id/verify
func (dc *DeliveryController) Verify(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := dc.Orders.Verify(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order verified", staffView(order))
}

// StartDelivery -> POST /delivery/orders/:id/start-delivery
func (dc *DeliveryController) StartDelivery(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := dc.Orders.StartDelivery(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order out for delivery", staffView(order))
}

// Deliver -> POST /delivery/orders/:id/deliver
func (dc *DeliveryController) Deliver(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req deliverRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := dc.Orders.Deliver(c.Request.Context(), id, req.ConfirmationPin, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order delivered", staffView(order))
}
