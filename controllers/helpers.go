package controllers

import (
	"strconv"

	"github.com/faressmahmoud/DeliciousBites-RMS/middlewares"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, utils.Validation("Invalid %s '%s'", name, raw)
	}
	return uint(id), nil
}

func actorFrom(c *gin.Context) services.Actor {
	role := middlewares.RoleFrom(c)
	if id, ok := middlewares.StaffIDFrom(c); ok {
		return services.StaffActor(role, id)
	}
	return services.Actor{Role: role}
}

// staffView strips the confirmation PIN before an order leaves a staff endpoint.
func staffView(order *models.Order) models.Order {
	return order.Redacted()
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.Validation("Invalid request body: %v", err))
		return false
	}
	return true
}
