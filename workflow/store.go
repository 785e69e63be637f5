// workflow/store.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// The engine talks to persistence through these interfaces. The database
// package implements them on MongoDB; tests use an in-memory fake. Every
// "claim" method is a single conditional write: it matches the current status
// against the expected set and mutates only when the match holds, so exactly
// one concurrent caller wins.

// AssetMutation describes the fields a conditional asset write may set.
// Zero-valued fields are left untouched.
type AssetMutation struct {
	Status             models.AssetStatus
	SiteID             *primitive.ObjectID
	ClearStockLocation bool
	Identity           *models.ReplacementDetails // overwrite serial/MAC/IP/make/model
	ReservedBy         *primitive.ObjectID
	ClearReservedBy    bool
	Active             *bool
}

type AssetStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	Insert(ctx context.Context, a *models.Asset) error
	// CountByStatus counts assets of the given type in the given status at a site.
	CountByStatus(ctx context.Context, siteID primitive.ObjectID, assetType string, status models.AssetStatus) (int64, error)
	SerialExists(ctx context.Context, serial string) (bool, error)
	// ClaimStatus applies mut only if the asset's current status is in from
	// (an empty from means no status guard). It returns the document as it
	// was before the write. A status mismatch yields ConflictError, a missing
	// document NotFoundError.
	ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.AssetStatus, mut AssetMutation) (*models.Asset, error)
}

type TicketMutation struct {
	AssetID         *primitive.ObjectID
	Impact          *int
	Urgency         *int
	Priority        *string
	EscalationLevel *int
	AssignedTo      *primitive.ObjectID
	Resolution      *string
	ResolvedBy      *primitive.ObjectID
	ResolvedAt      *time.Time
}

type TicketStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	Insert(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, id primitive.ObjectID, mut TicketMutation) (*models.Ticket, error)
	// ClaimStatus moves the ticket to the given status only if its current
	// status is in from; otherwise ConflictError.
	ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.TicketStatus, to models.TicketStatus, mut TicketMutation) (*models.Ticket, error)
	AppendActivity(ctx context.Context, id primitive.ObjectID, e models.ActivityEntry) error
}

type RMAMutation struct {
	Status      models.RMAStatus
	ApprovedBy  *primitive.ObjectID
	ApprovedAt  *time.Time
	Replacement *models.ReplacementDetails
	InstalledBy *primitive.ObjectID
	InstalledAt *time.Time
	RejectedBy  *primitive.ObjectID
	RejectedAt  *time.Time
}

type RMAStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RMARequest, error)
	Insert(ctx context.Context, r *models.RMARequest) error
	// FindActiveByTicket returns the ticket's non-terminal RMA, or nil when
	// there is none.
	FindActiveByTicket(ctx context.Context, ticketID primitive.ObjectID) (*models.RMARequest, error)
	// Transition applies mut and appends the timeline entry only if the RMA
	// is still in the from status. This is the atomic read-modify-write that
	// serializes concurrent updates on one RMA.
	Transition(ctx context.Context, id primitive.ObjectID, from models.RMAStatus, mut RMAMutation, entry models.RMATimelineEntry) (*models.RMARequest, error)
}

type RequisitionMutation struct {
	Status           models.RequisitionStatus
	ApprovedBy       *primitive.ObjectID
	ApprovedAt       *time.Time
	RejectedBy       *primitive.ObjectID
	RejectedAt       *time.Time
	RejectionReason  *string
	FulfilledAssetID *primitive.ObjectID
	FulfilledBy      *primitive.ObjectID
	FulfilledAt      *time.Time
}

type RequisitionStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error)
	Insert(ctx context.Context, r *models.Requisition) error
	Transition(ctx context.Context, id primitive.ObjectID, from []models.RequisitionStatus, mut RequisitionMutation) (*models.Requisition, error)
}

type TransferMutation struct {
	Status       models.TransferStatus
	Shipping     *models.ShippingInfo
	ApprovedBy   *primitive.ObjectID
	ApprovedAt   *time.Time
	DispatchedBy *primitive.ObjectID
	DispatchedAt *time.Time
	ReceivedBy   *primitive.ObjectID
	ReceivedAt   *time.Time
	CancelledBy  *primitive.ObjectID
	CancelledAt  *time.Time
}

type TransferStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StockTransfer, error)
	Insert(ctx context.Context, t *models.StockTransfer) error
	Transition(ctx context.Context, id primitive.ObjectID, from []models.TransferStatus, mut TransferMutation) (*models.StockTransfer, error)
}

type LedgerStore interface {
	Append(ctx context.Context, entry *models.StockMovementLog) error
	ListByAsset(ctx context.Context, assetID primitive.ObjectID) ([]models.StockMovementLog, error)
}

// CounterStore backs daily sequence numbers. Next must be an atomic
// increment-and-read: two concurrent calls never observe the same value.
type CounterStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

type ReplacementStore interface {
	Insert(ctx context.Context, r *models.StockReplacement) error
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindActiveByRoles(ctx context.Context, roles []string) ([]models.User, error)
}

// Stores bundles everything the engine needs.
type Stores struct {
	Assets       AssetStore
	Tickets      TicketStore
	RMAs         RMAStore
	Requisitions RequisitionStore
	Transfers    TransferStore
	Ledger       LedgerStore
	Counters     CounterStore
	Replacements ReplacementStore
	Users        UserStore
}
