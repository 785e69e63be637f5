// models/transfer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransferStatus string

const (
	TransferPending    TransferStatus = "Pending"
	TransferApproved   TransferStatus = "Approved"
	TransferDispatched TransferStatus = "Dispatched"
	TransferCompleted  TransferStatus = "Completed"
	TransferCancelled  TransferStatus = "Cancelled"
)

type ShippingInfo struct {
	Carrier        string `bson:"carrier,omitempty" json:"carrier,omitempty"`
	TrackingNumber string `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Remarks        string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// StockTransfer moves a fixed list of spare assets between two sites. It is
// independent of any ticket; partial lists are rejected at initiation.
type StockTransfer struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SourceSiteID      primitive.ObjectID   `bson:"sourceSiteId" json:"sourceSiteId"`
	DestinationSiteID primitive.ObjectID   `bson:"destinationSiteId" json:"destinationSiteId"`
	AssetIDs          []primitive.ObjectID `bson:"assetIds" json:"assetIds"`
	Status            TransferStatus       `bson:"status" json:"status"`
	Shipping          *ShippingInfo        `bson:"shipping,omitempty" json:"shipping,omitempty"`
	Remarks           string               `bson:"remarks,omitempty" json:"remarks,omitempty"`
	ApprovedBy        *primitive.ObjectID  `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time           `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	DispatchedBy      *primitive.ObjectID  `bson:"dispatchedBy,omitempty" json:"dispatchedBy,omitempty"`
	DispatchedAt      *time.Time           `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
	ReceivedBy        *primitive.ObjectID  `bson:"receivedBy,omitempty" json:"receivedBy,omitempty"`
	ReceivedAt        *time.Time           `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
	CancelledBy       *primitive.ObjectID  `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt       *time.Time           `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedBy         primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}
