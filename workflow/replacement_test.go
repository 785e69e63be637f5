// workflow/replacement_test.go
package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

func TestReplaceStockSwapsIdentityKeepsCode(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	old := seedAsset(t, m, site, "Camera", models.AssetOffline, 2, "OLD-SN")
	spare := seedAsset(t, m, site, "Camera", models.AssetSpare, 2, "SPARE-SN")
	tk := seedTicket(t, m, site, &old.ID, models.TicketInProgress)

	rec, err := e.ReplaceStock(ctx, admin, StockReplacementInput{
		TicketID: tk.ID, OldAssetID: old.ID, NewAssetID: spare.ID, Remarks: "field swap",
	})
	require.NoError(t, err)
	assert.Equal(t, "OLD-SN", rec.Before.SerialNumber)
	assert.Equal(t, "SPARE-SN", rec.After.SerialNumber)
	assert.Equal(t, old.AssetCode, rec.Before.AssetCode)
	assert.Equal(t, old.AssetCode, rec.After.AssetCode, "asset code survives the swap")

	// The serviced record keeps its code, gains the spare's hardware, and is
	// back in service.
	gotOld, err := e.GetAsset(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, old.AssetCode, gotOld.AssetCode)
	assert.Equal(t, "SPARE-SN", gotOld.SerialNumber)
	assert.Equal(t, models.AssetOperational, gotOld.Status)

	// The donor spare is consumed, not deleted.
	gotSpare, err := e.GetAsset(ctx, spare.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetDecommissioned, gotSpare.Status)
	assert.False(t, gotSpare.Active)
	assert.Equal(t, "SPARE-SN", gotSpare.SerialNumber, "donor record keeps its own identity")

	spareEntries, err := e.AssetHistory(ctx, spare.ID)
	require.NoError(t, err)
	require.Len(t, spareEntries, 1)
	assert.Equal(t, models.MovementDisposed, spareEntries[0].MovementType)

	oldEntries, err := e.AssetHistory(ctx, old.ID)
	require.NoError(t, err)
	require.Len(t, oldEntries, 1)
	assert.Equal(t, models.MovementStatusChange, oldEntries[0].MovementType)
}

func TestReplaceStockGuards(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	old := seedAsset(t, m, site, "Camera", models.AssetOffline, 2, "G-OLD")
	inUse := seedAsset(t, m, site, "Camera", models.AssetOperational, 2, "G-USED")
	tk := seedTicket(t, m, site, &old.ID, models.TicketInProgress)

	_, err := e.ReplaceStock(ctx, admin, StockReplacementInput{
		TicketID: tk.ID, OldAssetID: old.ID, NewAssetID: old.ID,
	})
	assert.True(t, IsValidation(err), "asset cannot replace itself")

	// Only a Spare can be consumed.
	_, err = e.ReplaceStock(ctx, admin, StockReplacementInput{
		TicketID: tk.ID, OldAssetID: old.ID, NewAssetID: inUse.ID,
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	gotOld, err := e.GetAsset(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, "G-OLD", gotOld.SerialNumber, "failed swap leaves the asset untouched")
}
