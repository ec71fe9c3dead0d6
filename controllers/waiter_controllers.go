package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

type WaiterController struct {
	Orders *services.OrderService
}

func NewWaiterController(orders *services.OrderService) *WaiterController {
	return &WaiterController{Orders: orders}
}

// GetOrders -> GET /waiter/orders?filter=ready|served|all
func (wc *WaiterController) GetOrders(c *gin.Context) {
	orders, err := wc.Orders.WaiterOrders(c.Request.Context(), c.Query("filter"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter orders", orders)
}

// MarkServed -> POST /waiter/orders/:id/mark-served
func (wc *WaiterController) MarkServed(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := wc.Orders.MarkServed(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order served", staffView(order))
}
