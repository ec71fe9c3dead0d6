package services

import (
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
)

// Actor is the authenticated caller behind a state change.
type Actor struct {
	Role    models.Role
	StaffID *uint
}

func StaffActor(role models.Role, staffID uint) Actor {
	return Actor{Role: role, StaffID: &staffID}
}

// requireRole allows the listed roles and managers.
func (a Actor) requireRole(roles ...models.Role) error {
	if a.Role == models.RoleManager {
		return nil
	}
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return utils.Forbidden("role '%s' is not allowed to perform this action", a.Role)
}
