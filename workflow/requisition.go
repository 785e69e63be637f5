// workflow/requisition.go
package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

type CreateRequisitionInput struct {
	TicketID     primitive.ObjectID `json:"ticketId"`
	SourceSiteID primitive.ObjectID `json:"sourceSiteId"`
	AssetType    string             `json:"assetType"`
	Quantity     int                `json:"quantity"`
	Remarks      string             `json:"remarks,omitempty"`
}

// CreateRequisition asks for spare stock from a source site for the ticket's
// site. The stock check here is optimistic only; the conditional claim at
// fulfillment is what actually guards the inventory.
func (e *Engine) CreateRequisition(ctx context.Context, actor Actor, in CreateRequisitionInput) (*models.Requisition, error) {
	if strings.TrimSpace(in.AssetType) == "" {
		return nil, Validationf("asset type is required")
	}
	if in.Quantity < 1 {
		return nil, Validationf("quantity must be at least 1")
	}
	if in.SourceSiteID.IsZero() {
		return nil, Validationf("source site is required")
	}

	ticket, err := e.stores.Tickets.FindByID(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}

	available, err := e.stores.Assets.CountByStatus(ctx, in.SourceSiteID, in.AssetType, models.AssetSpare)
	if err != nil {
		return nil, err
	}
	if available < int64(in.Quantity) {
		return nil, Validationf("insufficient stock: %d spare %s at source site, %d requested", available, in.AssetType, in.Quantity)
	}

	now := e.now().UTC()
	req := &models.Requisition{
		ID:           primitive.NewObjectID(),
		TicketID:     ticket.ID,
		SiteID:       ticket.SiteID,
		SourceSiteID: in.SourceSiteID,
		AssetType:    in.AssetType,
		Quantity:     in.Quantity,
		Remarks:      in.Remarks,
		Status:       models.RequisitionPending,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.stores.Requisitions.Insert(ctx, req); err != nil {
		return nil, err
	}

	e.appendActivity(ctx, ticket.ID, actor, "RequisitionCreated",
		fmt.Sprintf("Requisition raised for %d x %s from site %s", in.Quantity, in.AssetType, in.SourceSiteID.Hex()))
	return req, nil
}

// ApproveRequisition records the approver. Inventory is untouched.
func (e *Engine) ApproveRequisition(ctx context.Context, actor Actor, reqID primitive.ObjectID) (*models.Requisition, error) {
	req, err := e.stores.Requisitions.FindByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() {
		return nil, Permissionf(req.SiteID.Hex(), "only admins and supervisors can approve requisitions")
	}

	now := e.now().UTC()
	return e.stores.Requisitions.Transition(ctx, reqID,
		[]models.RequisitionStatus{models.RequisitionPending},
		RequisitionMutation{Status: models.RequisitionApproved, ApprovedBy: &actor.ID, ApprovedAt: &now})
}

// RejectRequisition is terminal.
func (e *Engine) RejectRequisition(ctx context.Context, actor Actor, reqID primitive.ObjectID, reason string) (*models.Requisition, error) {
	req, err := e.stores.Requisitions.FindByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() {
		return nil, Permissionf(req.SiteID.Hex(), "only admins and supervisors can reject requisitions")
	}

	now := e.now().UTC()
	updated, err := e.stores.Requisitions.Transition(ctx, reqID,
		[]models.RequisitionStatus{models.RequisitionPending, models.RequisitionApproved},
		RequisitionMutation{Status: models.RequisitionRejected, RejectedBy: &actor.ID, RejectedAt: &now, RejectionReason: &reason})
	if err != nil {
		return nil, err
	}
	e.appendActivity(ctx, req.TicketID, actor, "Requisition",
		fmt.Sprintf("Requisition rejected: %s", reason))
	return updated, nil
}

// FulfillRequisition is the critical section of the stock path. The
// candidate asset is claimed with a single conditional write keyed on Spare;
// when two fulfillments race for the same unit exactly one wins and the
// other gets ConflictError. The engine never retries on the caller's behalf.
func (e *Engine) FulfillRequisition(ctx context.Context, actor Actor, reqID, assetID primitive.ObjectID) (*models.Requisition, error) {
	req, err := e.stores.Requisitions.FindByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequisitionPending && req.Status != models.RequisitionApproved {
		return nil, Conflictf("requisition is %s and cannot be fulfilled", req.Status)
	}
	ticket, err := e.stores.Tickets.FindByID(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	candidate, err := e.stores.Assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if candidate.AssetType != req.AssetType {
		return nil, Validationf("asset %s is a %s, requisition asks for %s", candidate.AssetCode, candidate.AssetType, req.AssetType)
	}

	// Claim the spare. This is the authoritative guard.
	destSite := req.SiteID
	newAsset, err := e.claimAsset(ctx, actor, assetID,
		[]models.AssetStatus{models.AssetSpare},
		AssetMutation{Status: models.AssetOperational, SiteID: &destSite, ClearStockLocation: true},
		models.MovementTransfer,
		LedgerRefs{TicketID: &req.TicketID, RequisitionID: &req.ID},
		fmt.Sprintf("requisition fulfillment for ticket %s", ticket.TicketNumber))
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	mut := RequisitionMutation{
		Status:           models.RequisitionFulfilled,
		FulfilledAssetID: &assetID,
		FulfilledBy:      &actor.ID,
		FulfilledAt:      &now,
	}
	if req.ApprovedBy == nil {
		// Fulfillment from Pending implies approval by the fulfiller.
		mut.ApprovedBy = &actor.ID
		mut.ApprovedAt = &now
	}
	updated, err := e.stores.Requisitions.Transition(ctx, reqID,
		[]models.RequisitionStatus{models.RequisitionPending, models.RequisitionApproved}, mut)
	if err != nil {
		// Another fulfillment won between our status check and now: release
		// the asset we claimed so the winner's view of stock stays correct.
		if _, relErr := e.claimAsset(ctx, actor, assetID,
			[]models.AssetStatus{models.AssetOperational},
			AssetMutation{Status: models.AssetSpare, SiteID: &candidate.SiteID},
			models.MovementReleased,
			LedgerRefs{RequisitionID: &req.ID},
			"released after losing fulfillment race"); relErr != nil {
			log.Printf("failed to release asset %s after fulfillment conflict: %v", candidate.AssetCode, relErr)
		}
		return nil, err
	}

	// The unit being replaced comes out of service.
	if ticket.AssetID != nil && *ticket.AssetID != assetID {
		if _, err := e.claimAsset(ctx, actor, *ticket.AssetID, nil,
			AssetMutation{Status: models.AssetDamaged},
			models.MovementStatusChange,
			LedgerRefs{TicketID: &req.TicketID, RequisitionID: &req.ID},
			"removed during requisition fulfillment"); err != nil {
			log.Printf("failed to mark prior asset damaged for ticket %s: %v", ticket.TicketNumber, err)
		}
	}

	if _, err := e.stores.Tickets.Update(ctx, ticket.ID, TicketMutation{AssetID: &assetID}); err != nil {
		log.Printf("failed to repoint ticket %s to asset %s: %v", ticket.TicketNumber, newAsset.AssetCode, err)
	}

	e.appendActivity(ctx, ticket.ID, actor, "Requisition",
		fmt.Sprintf("Requisition fulfilled with asset %s", newAsset.AssetCode))
	return updated, nil
}

// GetRequisition looks up one requisition.
func (e *Engine) GetRequisition(ctx context.Context, reqID primitive.ObjectID) (*models.Requisition, error) {
	return e.stores.Requisitions.FindByID(ctx, reqID)
}
