package middlewares

import (
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// RequireRole admits the listed roles. Managers are always admitted.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles)+1)
	for _, r := range roles {
		allowed[r] = true
	}
	allowed[models.RoleManager] = true

	return func(c *gin.Context) {
		role := RoleFrom(c)
		if role == models.RoleGuest {
			utils.RespondError(c, utils.Unauthorized("unauthorized"))
			c.Abort()
			return
		}
		if !allowed[role] {
			utils.RespondError(c, utils.Forbidden("%s access required", describeRoles(roles)))
			c.Abort()
			return
		}
		c.Next()
	}
}

func describeRoles(roles []models.Role) string {
	if len(roles) == 0 {
		return "manager"
	}
	out := string(roles[0])
	for _, r := range roles[1:] {
		out += " or " + string(r)
	}
	return out
}
