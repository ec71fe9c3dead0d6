package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

type KitchenController struct {
	Orders *services.OrderService
}

func NewKitchenController(orders *services.OrderService) *KitchenController {
	return &KitchenController{Orders: orders}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type itemStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// GetOrders -> GET /kitchen/orders
func (kc *KitchenController) GetOrders(c *gin.Context) {
	orders, err := kc.Orders.KitchenOrders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", orders)
}

// UpdateOrderStatus -> PUT /kitchen/orders/:id/status
func (kc *KitchenController) UpdateOrderStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := kc.Orders.SetKitchenStatus(c.Request.Context(), id, req.Status, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", staffView(order))
}

// UpdateItemStatus -> PUT /kitchen/order-items/:itemId/status
func (kc *KitchenController) UpdateItemStatus(c *gin.Context) {
	itemID, err := paramID(c, "itemId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req itemStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	_, item, err := kc.Orders.SetItemStatus(c.Request.Context(), itemID, req.Status, req.Notes, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}
