// workflow/replacement.go
package workflow

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

type StockReplacementInput struct {
	TicketID   primitive.ObjectID `json:"ticketId"`
	OldAssetID primitive.ObjectID `json:"oldAssetId"`
	NewAssetID primitive.ObjectID `json:"newAssetId"`
	Remarks    string             `json:"remarks,omitempty"`
}

// ReplaceStock swaps hardware without a vendor RMA: a spare is consumed and
// its identity moves onto the ticket's asset record. The surviving record
// keeps its asset code so the unit's ticket and movement history stays in
// one place; the donor spare is decommissioned, not deleted.
func (e *Engine) ReplaceStock(ctx context.Context, actor Actor, in StockReplacementInput) (*models.StockReplacement, error) {
	if in.OldAssetID == in.NewAssetID {
		return nil, Validationf("replacement asset must differ from the asset being replaced")
	}

	ticket, err := e.stores.Tickets.FindByID(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}
	oldAsset, err := e.stores.Assets.FindByID(ctx, in.OldAssetID)
	if err != nil {
		return nil, err
	}
	spare, err := e.stores.Assets.FindByID(ctx, in.NewAssetID)
	if err != nil {
		return nil, err
	}

	before := snapshot(oldAsset)

	// Consume the spare first; this conditional claim is the race guard.
	inactive := false
	if _, err := e.claimAsset(ctx, actor, spare.ID,
		[]models.AssetStatus{models.AssetSpare},
		AssetMutation{Status: models.AssetDecommissioned, Active: &inactive},
		models.MovementDisposed,
		LedgerRefs{TicketID: &ticket.ID},
		fmt.Sprintf("consumed as replacement for %s", oldAsset.AssetCode)); err != nil {
		return nil, err
	}

	identity := models.ReplacementDetails{
		SerialNumber: spare.SerialNumber,
		MACAddress:   spare.MACAddress,
		IPAddress:    spare.IPAddress,
		Make:         spare.Make,
		Model:        spare.Model,
	}
	updatedOld, err := e.claimAsset(ctx, actor, oldAsset.ID, nil,
		AssetMutation{Status: models.AssetOperational, Identity: &identity},
		models.MovementStatusChange,
		LedgerRefs{TicketID: &ticket.ID},
		fmt.Sprintf("hardware swapped in from %s", spare.AssetCode))
	if err != nil {
		return nil, err
	}

	rec := &models.StockReplacement{
		ID:         primitive.NewObjectID(),
		TicketID:   ticket.ID,
		OldAssetID: oldAsset.ID,
		NewAssetID: spare.ID,
		Before:     before,
		After:      snapshot(updatedOld),
		Remarks:    in.Remarks,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		CreatedAt:  e.now().UTC(),
	}
	if err := e.stores.Replacements.Insert(ctx, rec); err != nil {
		return nil, err
	}

	e.appendActivity(ctx, ticket.ID, actor, "StockReplacement",
		fmt.Sprintf("Asset %s hardware replaced from spare %s (serial %s -> %s)",
			oldAsset.AssetCode, spare.AssetCode, before.SerialNumber, identity.SerialNumber))
	return rec, nil
}
