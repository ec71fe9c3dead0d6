package controllers

import (
	"net/http"
	"strconv"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// NotificationController lists the ready-for-pickup notices for delivery staff.
type NotificationController struct {
	Orders *services.OrderService
}

func NewNotificationController(orders *services.OrderService) *NotificationController {
	return &NotificationController{Orders: orders}
}

// GetNotifications -> GET /delivery/notifications?unread=true
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	openOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))
	notifs, err := nc.Orders.DeliveryNotifications(c.Request.Context(), openOnly)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery notifications", notifs)
}

// Acknowledge -> POST /delivery/orders/:id/acknowledge
func (nc *NotificationController) Acknowledge(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	n, err := nc.Orders.AcknowledgeDelivery(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications acknowledged", gin.H{
		"order_id":     id,
		"acknowledged": n,
	})
}
