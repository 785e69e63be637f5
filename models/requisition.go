// models/requisition.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequisitionStatus string

const (
	RequisitionPending   RequisitionStatus = "Pending"
	RequisitionApproved  RequisitionStatus = "Approved"
	RequisitionFulfilled RequisitionStatus = "Fulfilled"
	RequisitionRejected  RequisitionStatus = "Rejected"
)

// Requisition asks for spare stock of one asset type to be pulled from a
// source site into active use at the ticket's site.
type Requisition struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TicketID         primitive.ObjectID  `bson:"ticketId" json:"ticketId"`
	SiteID           primitive.ObjectID  `bson:"siteId" json:"siteId"` // destination: the ticket's site
	SourceSiteID     primitive.ObjectID  `bson:"sourceSiteId" json:"sourceSiteId"`
	AssetType        string              `bson:"assetType" json:"assetType"`
	Quantity         int                 `bson:"quantity" json:"quantity"`
	Remarks          string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status           RequisitionStatus   `bson:"status" json:"status"`
	ApprovedBy       *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedBy       *primitive.ObjectID `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedAt       *time.Time          `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason  string              `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	FulfilledAssetID *primitive.ObjectID `bson:"fulfilledAssetId,omitempty" json:"fulfilledAssetId,omitempty"`
	FulfilledBy      *primitive.ObjectID `bson:"fulfilledBy,omitempty" json:"fulfilledBy,omitempty"`
	FulfilledAt      *time.Time          `bson:"fulfilledAt,omitempty" json:"fulfilledAt,omitempty"`
	CreatedBy        primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
