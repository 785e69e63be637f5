// models/stock_replacement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockReplacement records a direct (non-RMA) swap: the ticket's asset keeps
// its code but takes over the identifying fields of a consumed spare. Before
// and after snapshots preserve both identities.
type StockReplacement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID   primitive.ObjectID `bson:"ticketId" json:"ticketId"`
	OldAssetID primitive.ObjectID `bson:"oldAssetId" json:"oldAssetId"` // the surviving record
	NewAssetID primitive.ObjectID `bson:"newAssetId" json:"newAssetId"` // the decommissioned spare
	Before     AssetSnapshot      `bson:"before" json:"before"`
	After      AssetSnapshot      `bson:"after" json:"after"`
	Remarks    string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	ActorID    primitive.ObjectID `bson:"actorId" json:"actorId"`
	ActorName  string             `bson:"actorName,omitempty" json:"actorName,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
