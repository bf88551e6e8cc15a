package lifecycle

import (
	"fmt"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/role"
)

// Actor is the caller of an operation, passed explicitly into every call.
type Actor struct {
	ID   uint
	Role role.Role
}

func (a Actor) String() string {
	return fmt.Sprintf("%s#%d", a.Role, a.ID)
}

func (a Actor) IsAdmin() bool { return a.Role == role.Admin }

func (a Actor) isClientOf(req *ds.Request) bool {
	return a.Role == role.Client && req.ClientID == a.ID
}

func (a Actor) isExpertOf(req *ds.Request) bool {
	return a.Role == role.Expert && req.AssignedExpertID != nil && *req.AssignedExpertID == a.ID
}
