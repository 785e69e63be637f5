// workflow/rma_test.go
package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

func TestCreateRMARequiresTicketAsset(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	tk := seedTicket(t, m, primitive.NewObjectID(), nil, models.TicketInProgress)

	_, err := e.CreateRMA(ctx, adminActor(), CreateRMAInput{TicketID: tk.ID, Reason: "dead unit"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateRMAStartStateDependsOnActor(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()

	a1 := seedAsset(t, m, site, "Camera", models.AssetOperational, 2, "SN-R1")
	tk1 := seedTicket(t, m, site, &a1.ID, models.TicketInProgress)

	eng := engineerActor()
	requested, err := e.CreateRMA(ctx, eng, CreateRMAInput{TicketID: tk1.ID, Reason: "water damage"})
	require.NoError(t, err)
	assert.Equal(t, models.RMARequested, requested.Status)
	assert.Nil(t, requested.ApprovedBy)
	require.Len(t, requested.Timeline, 1)
	assert.Equal(t, models.RMARequested, requested.Timeline[0].Status)

	a2 := seedAsset(t, m, site, "Camera", models.AssetOperational, 2, "SN-R2")
	tk2 := seedTicket(t, m, site, &a2.ID, models.TicketInProgress)

	admin := adminActor()
	approved, err := e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk2.ID, Reason: "lens cracked"})
	require.NoError(t, err)
	assert.Equal(t, models.RMAApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
}

func TestAtMostOneActiveRMAPerTicket(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	a := seedAsset(t, m, site, "Camera", models.AssetOperational, 2, "SN-ONE")
	tk := seedTicket(t, m, site, &a.ID, models.TicketInProgress)

	first, err := e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "dead"})
	require.NoError(t, err)

	_, err = e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "still dead"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// Once the active RMA terminates, a new one may open.
	_, err = e.TransitionRMA(ctx, admin, first.ID, models.RMARejected, "vendor refused")
	require.NoError(t, err)
	_, err = e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "retry"})
	require.NoError(t, err)
}

func TestRMAWalkToInstallation(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	a := seedAsset(t, m, site, "Camera", models.AssetOffline, 3, "OLD-SERIAL")
	tk := seedTicket(t, m, site, &a.ID, models.TicketInProgress)

	rma, err := e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "no power"})
	require.NoError(t, err)
	require.Equal(t, models.RMAApproved, rma.Status)
	assert.Equal(t, "OLD-SERIAL", rma.AssetSnapshot.SerialNumber)

	for _, next := range []models.RMAStatus{models.RMAOrdered, models.RMADispatched, models.RMAReceived} {
		rma, err = e.TransitionRMA(ctx, admin, rma.ID, next, "")
		require.NoError(t, err)
		require.Equal(t, next, rma.Status)
	}

	// Skipping ahead is a conflict, and plain transition cannot install.
	_, err = e.TransitionRMA(ctx, admin, rma.ID, models.RMAOrdered, "")
	assert.True(t, IsConflict(err))
	_, err = e.TransitionRMA(ctx, admin, rma.ID, models.RMAInstalled, "")
	assert.True(t, IsValidation(err))

	repl := models.ReplacementDetails{SerialNumber: "NEW-SERIAL", MACAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "10.0.0.42", Model: "M-200"}
	installed, err := e.InstallRMA(ctx, admin, rma.ID, repl, "swapped on site")
	require.NoError(t, err)
	assert.Equal(t, models.RMAInstalled, installed.Status)
	require.NotNil(t, installed.Replacement)
	require.NotNil(t, installed.InstalledAt)
	assert.Len(t, installed.Timeline, 5)

	// The asset keeps its code but carries the replacement's identity.
	got, err := e.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.AssetCode, got.AssetCode)
	assert.Equal(t, "NEW-SERIAL", got.SerialNumber)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got.MACAddress)
	assert.Equal(t, "M-200", got.Model)
	assert.Equal(t, models.AssetOperational, got.Status)

	entries, err := e.AssetHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MovementRMATransfer, entries[0].MovementType)
	assert.Equal(t, "OLD-SERIAL", entries[0].Asset.SerialNumber, "ledger snapshot is pre-swap")

	// The ticket is left for a human to advance.
	gotTicket, err := e.GetTicket(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketInProgress, gotTicket.Status)
}

func TestInstallRequiresReplacementDetails(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	a := seedAsset(t, m, site, "Camera", models.AssetOffline, 1, "SN-V")
	tk := seedTicket(t, m, site, &a.ID, models.TicketInProgress)
	rma, err := e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "dead"})
	require.NoError(t, err)

	_, err = e.InstallRMA(ctx, admin, rma.ID, models.ReplacementDetails{SerialNumber: "X"}, "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestInstallRaceHasSingleWinner(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	a := seedAsset(t, m, site, "Camera", models.AssetOffline, 1, "SN-RACE")
	tk := seedTicket(t, m, site, &a.ID, models.TicketInProgress)
	rma, err := e.CreateRMA(ctx, admin, CreateRMAInput{TicketID: tk.ID, Reason: "dead"})
	require.NoError(t, err)
	for _, next := range []models.RMAStatus{models.RMAOrdered, models.RMADispatched, models.RMAReceived} {
		_, err = e.TransitionRMA(ctx, admin, rma.ID, next, "")
		require.NoError(t, err)
	}

	repl := models.ReplacementDetails{SerialNumber: "W-1", MACAddress: "m", IPAddress: "i", Model: "M"}
	_, err = e.InstallRMA(ctx, admin, rma.ID, repl, "first installer")
	require.NoError(t, err)

	_, err = e.InstallRMA(ctx, admin, rma.ID, models.ReplacementDetails{SerialNumber: "W-2", MACAddress: "m", IPAddress: "i", Model: "M"}, "second installer")
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	got, err := e.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "W-1", got.SerialNumber, "only the first installer's hardware wins")
}

func TestRMACreationNotifies(t *testing.T) {
	m := newMemStore()
	notifier := &captureNotifier{}
	e := NewEngine(m.stores(), nil, notifier)
	ctx := context.Background()
	site := primitive.NewObjectID()

	supervisor := &models.User{ID: primitive.NewObjectID(), Name: "sup", Role: models.RoleSupervisor, Active: true}
	require.NoError(t, func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.users[supervisor.ID] = supervisor
		return nil
	}())

	a := seedAsset(t, m, site, "Camera", models.AssetOperational, 1, "SN-N")
	tk := seedTicket(t, m, site, &a.ID, models.TicketInProgress)

	rma, err := e.CreateRMA(ctx, adminActor(), CreateRMAInput{TicketID: tk.ID, Reason: "dead"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	ev := notifier.events[0]
	assert.Equal(t, "RMA_CREATED", ev.Type)
	assert.Equal(t, rma.ID, *ev.RMAID)
	assert.Contains(t, ev.RecipientIDs, tk.CreatedBy)
	assert.Contains(t, ev.RecipientIDs, supervisor.ID)
}
