// workflow/transfer.go
package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

type InitiateTransferInput struct {
	SourceSiteID      primitive.ObjectID   `json:"sourceSiteId"`
	DestinationSiteID primitive.ObjectID   `json:"destinationSiteId"`
	AssetIDs          []primitive.ObjectID `json:"assetIds"`
	Remarks           string               `json:"remarks,omitempty"`
}

// InitiateTransfer opens a bulk move of spare assets between two sites. The
// asset list is all-or-nothing: every listed unit must be Spare at the
// declared source site, or the whole request is rejected.
func (e *Engine) InitiateTransfer(ctx context.Context, actor Actor, in InitiateTransferInput) (*models.StockTransfer, error) {
	if len(in.AssetIDs) == 0 {
		return nil, Validationf("asset list is empty")
	}
	if in.SourceSiteID.IsZero() || in.DestinationSiteID.IsZero() {
		return nil, Validationf("source and destination sites are required")
	}
	if in.SourceSiteID == in.DestinationSiteID {
		return nil, Validationf("source and destination sites must differ")
	}

	seen := make(map[primitive.ObjectID]bool, len(in.AssetIDs))
	var bad []string
	for _, id := range in.AssetIDs {
		if seen[id] {
			return nil, Validationf("asset %s listed twice", id.Hex())
		}
		seen[id] = true

		a, err := e.stores.Assets.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a.Status != models.AssetSpare || a.SiteID != in.SourceSiteID {
			bad = append(bad, a.AssetCode)
		}
	}
	if len(bad) > 0 {
		return nil, Validationf("assets not spare at source site: %s", strings.Join(bad, ", "))
	}

	now := e.now().UTC()
	t := &models.StockTransfer{
		ID:                primitive.NewObjectID(),
		SourceSiteID:      in.SourceSiteID,
		DestinationSiteID: in.DestinationSiteID,
		AssetIDs:          in.AssetIDs,
		Status:            models.TransferPending,
		Remarks:           in.Remarks,
		CreatedBy:         actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := e.stores.Transfers.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ApproveTransfer records the approver.
func (e *Engine) ApproveTransfer(ctx context.Context, actor Actor, transferID primitive.ObjectID) (*models.StockTransfer, error) {
	t, err := e.stores.Transfers.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() {
		return nil, Permissionf(t.SourceSiteID.Hex(), "only admins and supervisors can approve transfers")
	}

	now := e.now().UTC()
	return e.stores.Transfers.Transition(ctx, transferID,
		[]models.TransferStatus{models.TransferPending},
		TransferMutation{Status: models.TransferApproved, ApprovedBy: &actor.ID, ApprovedAt: &now})
}

// CancelTransfer terminates a transfer that has not been dispatched. Assets
// were never touched, so there is nothing to release.
func (e *Engine) CancelTransfer(ctx context.Context, actor Actor, transferID primitive.ObjectID, reason string) (*models.StockTransfer, error) {
	if !actor.Elevated() {
		t, err := e.stores.Transfers.FindByID(ctx, transferID)
		if err != nil {
			return nil, err
		}
		return nil, Permissionf(t.SourceSiteID.Hex(), "only admins and supervisors can cancel transfers")
	}

	now := e.now().UTC()
	return e.stores.Transfers.Transition(ctx, transferID,
		[]models.TransferStatus{models.TransferPending, models.TransferApproved},
		TransferMutation{Status: models.TransferCancelled, CancelledBy: &actor.ID, CancelledAt: &now})
}

// DispatchTransfer claims every listed asset Spare -> InTransit and stamps
// the shipping metadata. The transfer-status transition goes first so a
// second dispatch attempt fails on the status guard rather than re-claiming
// assets. Per-asset claims are not all-or-nothing: a unit consumed since
// initiation is reported back while the rest ship.
func (e *Engine) DispatchTransfer(ctx context.Context, actor Actor, transferID primitive.ObjectID, shipping models.ShippingInfo) (*models.StockTransfer, error) {
	t, err := e.stores.Transfers.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	updated, err := e.stores.Transfers.Transition(ctx, transferID,
		[]models.TransferStatus{models.TransferPending, models.TransferApproved},
		TransferMutation{Status: models.TransferDispatched, Shipping: &shipping, DispatchedBy: &actor.ID, DispatchedAt: &now})
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, assetID := range t.AssetIDs {
		if _, err := e.claimAsset(ctx, actor, assetID,
			[]models.AssetStatus{models.AssetSpare},
			AssetMutation{Status: models.AssetInTransit},
			models.MovementTransfer,
			LedgerRefs{TransferID: &t.ID},
			fmt.Sprintf("dispatched to site %s", t.DestinationSiteID.Hex())); err != nil {
			log.Printf("transfer %s: dispatch claim failed for asset %s: %v", t.ID.Hex(), assetID.Hex(), err)
			failed = append(failed, assetID.Hex())
		}
	}
	if len(failed) > 0 {
		return updated, Conflictf("transfer dispatched but %d asset(s) could not be claimed: %s", len(failed), strings.Join(failed, ", "))
	}
	return updated, nil
}

// ReceiveTransfer books every unit in at the destination: InTransit -> Spare
// with the site reassigned in the same conditional write. The transfer moves
// to Completed first, which is what makes a repeated Receive idempotent --
// the second call fails the status guard with ConflictError and no asset or
// ledger write is re-applied.
func (e *Engine) ReceiveTransfer(ctx context.Context, actor Actor, transferID primitive.ObjectID) (*models.StockTransfer, error) {
	t, err := e.stores.Transfers.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	updated, err := e.stores.Transfers.Transition(ctx, transferID,
		[]models.TransferStatus{models.TransferDispatched},
		TransferMutation{Status: models.TransferCompleted, ReceivedBy: &actor.ID, ReceivedAt: &now})
	if err != nil {
		return nil, err
	}

	dest := t.DestinationSiteID
	var failed []string
	for _, assetID := range t.AssetIDs {
		if _, err := e.claimAsset(ctx, actor, assetID,
			[]models.AssetStatus{models.AssetInTransit},
			AssetMutation{Status: models.AssetSpare, SiteID: &dest},
			models.MovementTransfer,
			LedgerRefs{TransferID: &t.ID},
			fmt.Sprintf("received at site %s", dest.Hex())); err != nil {
			log.Printf("transfer %s: receive claim failed for asset %s: %v", t.ID.Hex(), assetID.Hex(), err)
			failed = append(failed, assetID.Hex())
		}
	}
	if len(failed) > 0 {
		return updated, Conflictf("transfer completed but %d asset(s) could not be received: %s", len(failed), strings.Join(failed, ", "))
	}
	return updated, nil
}

// GetTransfer looks up one transfer.
func (e *Engine) GetTransfer(ctx context.Context, transferID primitive.ObjectID) (*models.StockTransfer, error) {
	return e.stores.Transfers.FindByID(ctx, transferID)
}
