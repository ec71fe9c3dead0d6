package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/statemachine"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// AdminController backs the manager dashboard: listings, reports and overrides.
type AdminController struct {
	Orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{Orders: orders}
}

type adminStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ConfirmationPin string `json:"confirmationPin"`
}

type paidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// GetOrders -> GET /admin/orders?type=&status=&timeRange=
func (ac *AdminController) GetOrders(c *gin.Context) {
	orders, err := ac.Orders.AdminOrders(c.Request.Context(), services.AdminOrderQuery{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		TimeRange: c.Query("timeRange"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetSummary -> GET /admin/orders/summary?timeRange=
func (ac *AdminController) GetSummary(c *gin.Context) {
	summary, err := ac.Orders.Summary(c.Request.Context(), c.Query("timeRange"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order summary", summary)
}

// GetRevenue -> GET /admin/revenue?timeRange=
func (ac *AdminController) GetRevenue(c *gin.Context) {
	report, err := ac.Orders.Revenue(c.Request.Context(), c.Query("timeRange"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue report", report)
}

// GetHistory -> GET /admin/orders/:id/history
func (ac *AdminController) GetHistory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	history, err := ac.Orders.History(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", history)
}

// UpdateStatus -> PUT /admin/orders/:id/status
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req adminStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ac.Orders.AdminSetStatus(c.Request.Context(), id, req.Status, req.ConfirmationPin, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", staffView(order))
}

// UpdatePaid -> PUT /admin/orders/:id/paid
func (ac *AdminController) UpdatePaid(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req paidRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ac.Orders.SetPaid(c.Request.Context(), id, *req.Paid, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", staffView(order))
}

// CancelOrder -> POST /admin/orders/:id/cancel
func (ac *AdminController) CancelOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req cancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	order, err := ac.Orders.Cancel(c.Request.Context(), id, req.Reason, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", staffView(order))
}

// GetTransitions -> GET /admin/transitions
func (ac *AdminController) GetTransitions(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Order status graph", statemachine.GetAllTransitions())
}
