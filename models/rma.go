// models/rma.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RMAStatus string

const (
	RMARequested  RMAStatus = "Requested"
	RMAApproved   RMAStatus = "Approved"
	RMAOrdered    RMAStatus = "Ordered"
	RMADispatched RMAStatus = "Dispatched"
	RMAReceived   RMAStatus = "Received"
	RMAInstalled  RMAStatus = "Installed"
	RMARejected   RMAStatus = "Rejected"
)

// ReplacementDetails are the identifying fields of the vendor-supplied
// replacement unit, captured at installation time.
type ReplacementDetails struct {
	SerialNumber string `bson:"serialNumber" json:"serialNumber"`
	MACAddress   string `bson:"macAddress" json:"macAddress"`
	IPAddress    string `bson:"ipAddress" json:"ipAddress"`
	Make         string `bson:"make,omitempty" json:"make,omitempty"`
	Model        string `bson:"model" json:"model"`
}

// RMATimelineEntry is one step in the embedded, append-only status history
// of a single RMA. Entries are never reordered or removed.
type RMATimelineEntry struct {
	Status    RMAStatus          `bson:"status" json:"status"`
	ActorID   primitive.ObjectID `bson:"actorId" json:"actorId"`
	ActorName string             `bson:"actorName,omitempty" json:"actorName,omitempty"`
	Remarks   string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	At        time.Time          `bson:"at" json:"at"`
}

type RMARequest struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RMANumber     string              `bson:"rmaNumber" json:"rmaNumber"` // RMA-YYYYMMDD-NNNN
	TicketID      primitive.ObjectID  `bson:"ticketId" json:"ticketId"`
	SiteID        primitive.ObjectID  `bson:"siteId" json:"siteId"`
	AssetID       primitive.ObjectID  `bson:"assetId" json:"assetId"`
	AssetSnapshot AssetSnapshot       `bson:"assetSnapshot" json:"assetSnapshot"` // pre-replacement identity, immutable
	Reason        string              `bson:"reason" json:"reason"`
	Status        RMAStatus           `bson:"status" json:"status"`
	ApprovedBy    *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	Replacement   *ReplacementDetails `bson:"replacement,omitempty" json:"replacement,omitempty"`
	InstalledBy   *primitive.ObjectID `bson:"installedBy,omitempty" json:"installedBy,omitempty"`
	InstalledAt   *time.Time          `bson:"installedAt,omitempty" json:"installedAt,omitempty"`
	RejectedBy    *primitive.ObjectID `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedAt    *time.Time          `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	Timeline      []RMATimelineEntry  `bson:"timeline" json:"timeline"`
	CreatedBy     primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the RMA can no longer change state. A ticket may
// hold at most one non-terminal RMA at a time.
func (s RMAStatus) Terminal() bool {
	return s == RMAInstalled || s == RMARejected
}
