// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEngineer   = "engineer"
	RoleViewer     = "viewer"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	Role         string               `bson:"role" json:"role"`
	SiteIDs      []primitive.ObjectID `bson:"siteIds,omitempty" json:"siteIds,omitempty"` // site-scoped grants
	Active       bool                 `bson:"active" json:"active"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
