// models/site.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Site struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Code      string             `bson:"code,omitempty" json:"code,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
