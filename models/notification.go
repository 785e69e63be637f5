// models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is the payload handed to the realtime dispatcher after a
// workflow commits. Delivery is best-effort and never fails the workflow.
type Notification struct {
	Type         string               `bson:"type" json:"type"` // RMA_CREATED, TRANSFER_DISPATCHED, ...
	Title        string               `bson:"title" json:"title"`
	Message      string               `bson:"message" json:"message"`
	RecipientIDs []primitive.ObjectID `bson:"recipientIds,omitempty" json:"recipientIds,omitempty"`
	SiteID       primitive.ObjectID   `bson:"siteId,omitempty" json:"siteId,omitempty"`
	TicketID     *primitive.ObjectID  `bson:"ticketId,omitempty" json:"ticketId,omitempty"`
	RMAID        *primitive.ObjectID  `bson:"rmaId,omitempty" json:"rmaId,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}
