// workflow/actor.go
package workflow

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// Actor is the authenticated identity a workflow operation runs as. The HTTP
// layer builds it from the JWT claims; tests build it directly.
type Actor struct {
	ID      primitive.ObjectID
	Name    string
	Role    string
	SiteIDs []primitive.ObjectID
}

// Elevated reports whether the actor may approve requisitions and transfers.
func (a Actor) Elevated() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleSupervisor
}

// CanDirectGenerateRMA reports whether an RMA created by this actor skips the
// Requested state and starts out Approved.
func (a Actor) CanDirectGenerateRMA() bool {
	return a.Elevated()
}
