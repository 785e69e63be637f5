// models/stock_movement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MovementType string

const (
	MovementAdded          MovementType = "Added"
	MovementTransfer       MovementType = "Transfer"
	MovementRMATransfer    MovementType = "RMATransfer"
	MovementRepairedReturn MovementType = "RepairedReturn"
	MovementStatusChange   MovementType = "StatusChange"
	MovementReserved       MovementType = "Reserved"
	MovementReleased       MovementType = "Released"
	MovementDisposed       MovementType = "Disposed"
)

// StockMovementLog is one immutable entry in the append-only audit ledger.
// Entries are never updated or deleted; history is reconstructed by reading
// an asset's entries in order.
type StockMovementLog struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AssetID       primitive.ObjectID  `bson:"assetId" json:"assetId"`
	Asset         AssetSnapshot       `bson:"asset" json:"asset"` // identity at time of movement
	MovementType  MovementType        `bson:"movementType" json:"movementType"`
	FromSiteID    primitive.ObjectID  `bson:"fromSiteId,omitempty" json:"fromSiteId,omitempty"`
	ToSiteID      primitive.ObjectID  `bson:"toSiteId,omitempty" json:"toSiteId,omitempty"`
	FromStatus    AssetStatus         `bson:"fromStatus,omitempty" json:"fromStatus,omitempty"`
	ToStatus      AssetStatus         `bson:"toStatus,omitempty" json:"toStatus,omitempty"`
	ActorID       primitive.ObjectID  `bson:"actorId" json:"actorId"`
	ActorName     string              `bson:"actorName,omitempty" json:"actorName,omitempty"`
	TicketID      *primitive.ObjectID `bson:"ticketId,omitempty" json:"ticketId,omitempty"`
	RMAID         *primitive.ObjectID `bson:"rmaId,omitempty" json:"rmaId,omitempty"`
	RequisitionID *primitive.ObjectID `bson:"requisitionId,omitempty" json:"requisitionId,omitempty"`
	TransferID    *primitive.ObjectID `bson:"transferId,omitempty" json:"transferId,omitempty"`
	Remarks       string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
