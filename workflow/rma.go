// workflow/rma.go
package workflow

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// rmaNext is the forward chain of the RMA machine. Rejected is reachable
// from any non-terminal state and handled separately.
var rmaNext = map[models.RMAStatus]models.RMAStatus{
	models.RMARequested:  models.RMAApproved,
	models.RMAApproved:   models.RMAOrdered,
	models.RMAOrdered:    models.RMADispatched,
	models.RMADispatched: models.RMAReceived,
	models.RMAReceived:   models.RMAInstalled,
}

type CreateRMAInput struct {
	TicketID primitive.ObjectID `json:"ticketId"`
	Reason   string             `json:"reason"`
	Remarks  string             `json:"remarks,omitempty"`
}

// CreateRMA opens a replace-via-vendor cycle for the ticket's asset. A
// ticket holds at most one active RMA; actors with direct-generate rights
// start the new RMA in Approved with themselves as approver.
func (e *Engine) CreateRMA(ctx context.Context, actor Actor, in CreateRMAInput) (*models.RMARequest, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, Validationf("reason is required")
	}

	ticket, err := e.stores.Tickets.FindByID(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket.AssetID == nil {
		return nil, Validationf("ticket %s has no asset to replace", ticket.TicketNumber)
	}
	asset, err := e.stores.Assets.FindByID(ctx, *ticket.AssetID)
	if err != nil {
		return nil, err
	}

	siteID := ticket.SiteID
	if siteID.IsZero() {
		siteID = asset.SiteID
	}
	if siteID.IsZero() {
		return nil, Validationf("cannot resolve a site for ticket %s", ticket.TicketNumber)
	}

	active, err := e.stores.RMAs.FindActiveByTicket(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, Conflictf("ticket %s already has active RMA %s (%s)", ticket.TicketNumber, active.RMANumber, active.Status)
	}

	number, err := e.nextNumber(ctx, "RMA")
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	rma := &models.RMARequest{
		ID:            primitive.NewObjectID(),
		RMANumber:     number,
		TicketID:      in.TicketID,
		SiteID:        siteID,
		AssetID:       asset.ID,
		AssetSnapshot: snapshot(asset),
		Reason:        in.Reason,
		Status:        models.RMARequested,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if actor.CanDirectGenerateRMA() {
		rma.Status = models.RMAApproved
		rma.ApprovedBy = &actor.ID
		rma.ApprovedAt = &now
	}
	rma.Timeline = []models.RMATimelineEntry{{
		Status:    rma.Status,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Remarks:   in.Remarks,
		At:        now,
	}}

	if err := e.stores.RMAs.Insert(ctx, rma); err != nil {
		return nil, err
	}

	e.appendActivity(ctx, ticket.ID, actor, "RMA",
		fmt.Sprintf("RMA %s raised for asset %s: %s", rma.RMANumber, asset.AssetCode, in.Reason))
	e.dispatch(e.rmaNotification(ctx, rma, ticket, asset))

	return rma, nil
}

// rmaNotification builds the payload for the realtime dispatcher: active
// admins and supervisors plus the ticket creator.
func (e *Engine) rmaNotification(ctx context.Context, rma *models.RMARequest, ticket *models.Ticket, asset *models.Asset) models.Notification {
	recipients := []primitive.ObjectID{ticket.CreatedBy}
	if users, err := e.stores.Users.FindActiveByRoles(ctx, []string{models.RoleAdmin, models.RoleSupervisor}); err == nil {
		for _, u := range users {
			if u.ID != ticket.CreatedBy {
				recipients = append(recipients, u.ID)
			}
		}
	}
	return models.Notification{
		Type:         "RMA_CREATED",
		Title:        "RMA " + rma.RMANumber,
		Message:      fmt.Sprintf("RMA %s raised for %s (%s) on ticket %s: %s", rma.RMANumber, asset.AssetCode, asset.AssetType, ticket.TicketNumber, rma.Reason),
		RecipientIDs: recipients,
		SiteID:       rma.SiteID,
		TicketID:     &ticket.ID,
		RMAID:        &rma.ID,
		CreatedAt:    e.now().UTC(),
	}
}

// TransitionRMA advances the RMA one step along the chain, or rejects it.
// The store-level transition matches the status read here, so two concurrent
// updates serialize and the loser gets ConflictError.
func (e *Engine) TransitionRMA(ctx context.Context, actor Actor, rmaID primitive.ObjectID, to models.RMAStatus, remarks string) (*models.RMARequest, error) {
	rma, err := e.stores.RMAs.FindByID(ctx, rmaID)
	if err != nil {
		return nil, err
	}
	if rma.Status.Terminal() {
		return nil, Conflictf("RMA %s is already %s", rma.RMANumber, rma.Status)
	}
	if to == models.RMAInstalled {
		return nil, Validationf("installation requires replacement details; use the install operation")
	}
	if to != models.RMARejected && rmaNext[rma.Status] != to {
		return nil, Conflictf("RMA %s cannot move from %s to %s", rma.RMANumber, rma.Status, to)
	}

	now := e.now().UTC()
	mut := RMAMutation{Status: to}
	switch to {
	case models.RMAApproved:
		if !actor.Elevated() {
			return nil, Permissionf(rma.SiteID.Hex(), "only admins and supervisors can approve RMAs")
		}
		mut.ApprovedBy = &actor.ID
		mut.ApprovedAt = &now
	case models.RMARejected:
		if !actor.Elevated() {
			return nil, Permissionf(rma.SiteID.Hex(), "only admins and supervisors can reject RMAs")
		}
		mut.RejectedBy = &actor.ID
		mut.RejectedAt = &now
	}

	entry := models.RMATimelineEntry{Status: to, ActorID: actor.ID, ActorName: actor.Name, Remarks: remarks, At: now}
	updated, err := e.stores.RMAs.Transition(ctx, rmaID, rma.Status, mut, entry)
	if err != nil {
		return nil, err
	}

	e.appendActivity(ctx, rma.TicketID, actor, "RMA",
		fmt.Sprintf("RMA %s moved to %s", rma.RMANumber, to))
	return updated, nil
}

// InstallRMA completes the cycle: the replacement's identity is copied onto
// the RMA and onto the original asset record (the asset code never changes),
// and the asset returns to Operational. The ticket is left alone; closing it
// stays a human decision.
func (e *Engine) InstallRMA(ctx context.Context, actor Actor, rmaID primitive.ObjectID, repl models.ReplacementDetails, remarks string) (*models.RMARequest, error) {
	if repl.SerialNumber == "" || repl.IPAddress == "" || repl.MACAddress == "" || repl.Model == "" {
		return nil, Validationf("replacement serial, IP, MAC and model are required")
	}

	rma, err := e.stores.RMAs.FindByID(ctx, rmaID)
	if err != nil {
		return nil, err
	}
	if rma.Status.Terminal() {
		return nil, Conflictf("RMA %s is already %s", rma.RMANumber, rma.Status)
	}
	if rma.Status != models.RMAReceived {
		return nil, Conflictf("RMA %s must be Received before installation (currently %s)", rma.RMANumber, rma.Status)
	}

	now := e.now().UTC()
	mut := RMAMutation{
		Status:      models.RMAInstalled,
		Replacement: &repl,
		InstalledBy: &actor.ID,
		InstalledAt: &now,
	}
	entry := models.RMATimelineEntry{Status: models.RMAInstalled, ActorID: actor.ID, ActorName: actor.Name, Remarks: remarks, At: now}

	// Only one installer can win this conditional transition; the loser sees
	// ConflictError and the asset below is mutated exactly once.
	updated, err := e.stores.RMAs.Transition(ctx, rmaID, models.RMAReceived, mut, entry)
	if err != nil {
		return nil, err
	}

	if _, err := e.claimAsset(ctx, actor, rma.AssetID, nil,
		AssetMutation{Status: models.AssetOperational, Identity: &repl},
		models.MovementRMATransfer,
		LedgerRefs{TicketID: &rma.TicketID, RMAID: &rma.ID},
		fmt.Sprintf("RMA %s installed, serial %s -> %s", rma.RMANumber, rma.AssetSnapshot.SerialNumber, repl.SerialNumber),
	); err != nil {
		return nil, err
	}

	e.appendActivity(ctx, rma.TicketID, actor, "RMA",
		fmt.Sprintf("RMA %s installed; asset %s now carries serial %s", rma.RMANumber, rma.AssetSnapshot.AssetCode, repl.SerialNumber))
	return updated, nil
}

// GetRMA looks up one RMA.
func (e *Engine) GetRMA(ctx context.Context, rmaID primitive.ObjectID) (*models.RMARequest, error) {
	return e.stores.RMAs.FindByID(ctx, rmaID)
}
