// workflow/asset_registry_test.go
package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to models.AssetStatus
		want     bool
	}{
		{models.AssetSpare, models.AssetReserved, true},
		{models.AssetSpare, models.AssetInTransit, true},
		{models.AssetSpare, models.AssetDecommissioned, true},
		{models.AssetReserved, models.AssetSpare, true},
		{models.AssetInTransit, models.AssetSpare, true},
		{models.AssetOperational, models.AssetDamaged, true},
		{models.AssetDegraded, models.AssetDamaged, true},
		{models.AssetOffline, models.AssetDamaged, true},
		{models.AssetOperational, models.AssetReserved, false},
		{models.AssetDamaged, models.AssetInTransit, false},
		{models.AssetSpare, models.AssetDamaged, false},
		{models.AssetDecommissioned, models.AssetSpare, false},
		{models.AssetMaintenance, models.AssetOperational, true},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, transitionAllowed(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestSetAssetStatusRejectsNonSpareReservation(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	a := seedAsset(t, m, site, "Camera", models.AssetOperational, 2, "SN-1")

	_, err := e.SetAssetStatus(ctx, adminActor(), a.ID, models.AssetReserved, "hold for requisition")
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// The asset must be untouched and the ledger must stay empty.
	got, err := (memAssets{m}).FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetOperational, got.Status)
	entries, err := (memLedger{m}).ListByAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetAssetStatusPairsLedgerEntry(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	a := seedAsset(t, m, site, "Camera", models.AssetSpare, 1, "SN-2")

	updated, err := e.SetAssetStatus(ctx, adminActor(), a.ID, models.AssetReserved, "held")
	require.NoError(t, err)
	assert.Equal(t, models.AssetReserved, updated.Status)

	entries, err := (memLedger{m}).ListByAsset(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MovementReserved, entries[0].MovementType)
	assert.Equal(t, models.AssetSpare, entries[0].FromStatus)
	assert.Equal(t, models.AssetReserved, entries[0].ToStatus)
}

func TestAddAssetDefaultsAndLedger(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()

	a, err := e.AddAsset(ctx, adminActor(), AssetIntake{AssetType: "Switch", SiteID: site, SerialNumber: "SW-9", Criticality: 9})
	require.NoError(t, err)
	assert.Equal(t, "AST-000001", a.AssetCode)
	assert.Equal(t, models.AssetSpare, a.Status)
	assert.Equal(t, 3, a.Criticality, "criticality clamps to 1..3")
	assert.True(t, a.Active)

	entries, err := (memLedger{m}).ListByAsset(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MovementAdded, entries[0].MovementType)
}

func TestAddAssetDuplicateSerial(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()

	_, err := e.AddAsset(ctx, adminActor(), AssetIntake{AssetType: "Camera", SiteID: site, SerialNumber: "DUP-1"})
	require.NoError(t, err)
	_, err = e.AddAsset(ctx, adminActor(), AssetIntake{AssetType: "Camera", SiteID: site, SerialNumber: "DUP-1"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestBulkImportRejectsDuplicates(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()

	_, err := e.AddAsset(ctx, adminActor(), AssetIntake{AssetType: "Camera", SiteID: site, SerialNumber: "EXISTING"})
	require.NoError(t, err)

	result, err := e.BulkImportAssets(ctx, adminActor(), []AssetIntake{
		{AssetType: "Camera", SiteID: site, SerialNumber: "NEW-1"},
		{AssetType: "Camera", SiteID: site, SerialNumber: "NEW-1"},    // duplicate inside batch
		{AssetType: "Camera", SiteID: site, SerialNumber: "EXISTING"}, // duplicate of stock
		{AssetType: "Camera", SiteID: site, SerialNumber: "NEW-2"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
}

func TestAvailableStockCountsSparesOnly(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	seedAsset(t, m, site, "Camera", models.AssetSpare, 1, "S1")
	seedAsset(t, m, site, "Camera", models.AssetOperational, 1, "S2")
	seedAsset(t, m, site, "Switch", models.AssetSpare, 1, "S3")
	seedAsset(t, m, primitive.NewObjectID(), "Camera", models.AssetSpare, 1, "S4")

	n, err := e.AvailableStock(ctx, site, "Camera")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
