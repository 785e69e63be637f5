// models/ticket.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketOpen               TicketStatus = "Open"
	TicketAssigned           TicketStatus = "Assigned"
	TicketAcknowledged       TicketStatus = "Acknowledged"
	TicketInProgress         TicketStatus = "InProgress"
	TicketOnHold             TicketStatus = "OnHold"
	TicketEscalated          TicketStatus = "Escalated"
	TicketResolved           TicketStatus = "Resolved"
	TicketResolutionRejected TicketStatus = "ResolutionRejected"
	TicketVerified           TicketStatus = "Verified"
	TicketClosed             TicketStatus = "Closed"
	TicketCancelled          TicketStatus = "Cancelled"
)

// ActivityEntry is one note on a ticket's append-only activity stream.
type ActivityEntry struct {
	Category  string             `bson:"category" json:"category"` // RMA, RequisitionCreated, Resolution, ...
	Message   string             `bson:"message" json:"message"`
	ActorID   primitive.ObjectID `bson:"actorId,omitempty" json:"actorId,omitempty"`
	ActorName string             `bson:"actorName,omitempty" json:"actorName,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Ticket struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TicketNumber    string              `bson:"ticketNumber" json:"ticketNumber"` // TKT-YYYYMMDD-NNNN
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Category        string              `bson:"category,omitempty" json:"category,omitempty"`
	SiteID          primitive.ObjectID  `bson:"siteId" json:"siteId"`
	AssetID         *primitive.ObjectID `bson:"assetId,omitempty" json:"assetId,omitempty"`
	Impact          int                 `bson:"impact" json:"impact"`   // 1-5
	Urgency         int                 `bson:"urgency" json:"urgency"` // 1-5
	Priority        string              `bson:"priority" json:"priority"` // P1-P4
	PriorityPinned  bool                `bson:"priorityPinned,omitempty" json:"priorityPinned,omitempty"`
	Status          TicketStatus        `bson:"status" json:"status"`
	EscalationLevel int                 `bson:"escalationLevel" json:"escalationLevel"` // 0-3
	SLAResponseDue  *time.Time          `bson:"slaResponseDue,omitempty" json:"slaResponseDue,omitempty"`
	SLAResolveDue   *time.Time          `bson:"slaResolveDue,omitempty" json:"slaResolveDue,omitempty"`
	SLABreached     bool                `bson:"slaBreached,omitempty" json:"slaBreached,omitempty"`
	AssignedTo      *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Resolution      string              `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedBy      *primitive.ObjectID `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	Activity        []ActivityEntry     `bson:"activity,omitempty" json:"activity,omitempty"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
