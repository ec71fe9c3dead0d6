package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/middlewares"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// KDSController upgrades dashboard sessions onto the event hub.
type KDSController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

func NewKDSController(hub *kds.Hub, allowOrigin string) *KDSController {
	return &KDSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowOrigin == "" || allowOrigin == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowOrigin
			},
		},
	}
}

// KDSHandler -> GET /ws?token=...&scope=role
func (kc *KDSController) KDSHandler(c *gin.Context) {
	role := middlewares.RoleFrom(c)
	scoped := c.Query("scope") == "role"

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	kc.Hub.ServeConn(ws, role, scoped)
}
