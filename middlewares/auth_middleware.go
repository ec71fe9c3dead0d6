package middlewares

import (
	"strings"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextStaffID = "staffID"
	ContextRole    = "role"
	ContextToken   = "token"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AuthMiddleware requires a valid staff bearer token and stores the caller's
// id and role on the context.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.RespondError(c, utils.Unauthorized("Authorization header missing"))
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, utils.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		role := models.Role(claims.Role)
		if claims.StaffID == 0 || !role.Staff() {
			utils.RespondError(c, utils.Unauthorized("Invalid token claims"))
			c.Abort()
			return
		}

		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextRole, role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// WebSocketAuth reads an optional ?token= query parameter. Without one the
// session is a guest; a bad token is rejected.
func WebSocketAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			tokenString = bearerToken(c)
		}
		if tokenString == "" {
			c.Set(ContextRole, models.RoleGuest)
			c.Next()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil || !models.Role(claims.Role).Staff() {
			utils.RespondError(c, utils.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Next()
	}
}

// RoleFrom returns the caller's role, or guest when no auth middleware ran.
func RoleFrom(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.RoleGuest
}

// StaffIDFrom returns the authenticated staff id, if any.
func StaffIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextStaffID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
