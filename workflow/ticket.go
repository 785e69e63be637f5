// workflow/ticket.go
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// SLATarget holds the response/resolution windows for one priority tier.
type SLATarget struct {
	Response time.Duration
	Resolve  time.Duration
}

// SLAPolicy maps a priority tier to its SLA targets.
type SLAPolicy map[string]SLATarget

func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		"P1": {Response: 30 * time.Minute, Resolve: 4 * time.Hour},
		"P2": {Response: 2 * time.Hour, Resolve: 8 * time.Hour},
		"P3": {Response: 8 * time.Hour, Resolve: 48 * time.Hour},
		"P4": {Response: 24 * time.Hour, Resolve: 5 * 24 * time.Hour},
	}
}

// PriorityScore is impact x urgency x asset criticality.
func PriorityScore(impact, urgency, criticality int) int {
	return impact * urgency * criticality
}

// PriorityForScore maps a score onto a tier. Thresholds are inclusive.
func PriorityForScore(score int) string {
	switch {
	case score >= 50:
		return "P1"
	case score >= 25:
		return "P2"
	case score >= 10:
		return "P3"
	default:
		return "P4"
	}
}

// ticketTransitions is the human-driven edge table. Workflow completions
// never advance a ticket on their own; they only annotate its activity.
var ticketTransitions = map[models.TicketStatus][]models.TicketStatus{
	models.TicketOpen:               {models.TicketAssigned, models.TicketEscalated, models.TicketCancelled},
	models.TicketAssigned:           {models.TicketAcknowledged, models.TicketInProgress, models.TicketEscalated, models.TicketCancelled},
	models.TicketAcknowledged:       {models.TicketInProgress, models.TicketOnHold, models.TicketEscalated, models.TicketCancelled},
	models.TicketInProgress:         {models.TicketOnHold, models.TicketResolved, models.TicketEscalated, models.TicketCancelled},
	models.TicketOnHold:             {models.TicketInProgress, models.TicketEscalated, models.TicketCancelled},
	models.TicketEscalated:          {models.TicketAssigned, models.TicketInProgress, models.TicketResolved, models.TicketCancelled},
	models.TicketResolved:           {models.TicketResolutionRejected, models.TicketVerified},
	models.TicketResolutionRejected: {models.TicketInProgress},
	models.TicketVerified:           {models.TicketClosed},
	models.TicketClosed:             {},
	models.TicketCancelled:          {},
}

func ticketTransitionAllowed(from, to models.TicketStatus) bool {
	for _, s := range ticketTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type CreateTicketInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Category    string              `json:"category,omitempty"`
	SiteID      primitive.ObjectID  `json:"siteId"`
	AssetID     *primitive.ObjectID `json:"assetId,omitempty"`
	Impact      int                 `json:"impact"`
	Urgency     int                 `json:"urgency"`
	Priority    string              `json:"priority,omitempty"` // explicit value pins the priority
}

// CreateTicket opens a ticket: daily sequential number, derived priority
// (unless pinned), SLA due stamps, initial activity note.
func (e *Engine) CreateTicket(ctx context.Context, actor Actor, in CreateTicketInput) (*models.Ticket, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, Validationf("title is required")
	}
	if in.SiteID.IsZero() {
		return nil, Validationf("site is required")
	}
	if in.Impact < 1 || in.Impact > 5 {
		return nil, Validationf("impact must be between 1 and 5")
	}
	if in.Urgency < 1 || in.Urgency > 5 {
		return nil, Validationf("urgency must be between 1 and 5")
	}

	criticality := 1
	if in.AssetID != nil {
		a, err := e.stores.Assets.FindByID(ctx, *in.AssetID)
		if err != nil {
			return nil, err
		}
		criticality = a.Criticality
	}

	priority := in.Priority
	pinned := priority != ""
	if !pinned {
		priority = PriorityForScore(PriorityScore(in.Impact, in.Urgency, criticality))
	}

	number, err := e.nextNumber(ctx, "TKT")
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	t := &models.Ticket{
		ID:             primitive.NewObjectID(),
		TicketNumber:   number,
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		SiteID:         in.SiteID,
		AssetID:        in.AssetID,
		Impact:         in.Impact,
		Urgency:        in.Urgency,
		Priority:       priority,
		PriorityPinned: pinned,
		Status:         models.TicketOpen,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if target, ok := e.sla[priority]; ok {
		responseDue := now.Add(target.Response)
		resolveDue := now.Add(target.Resolve)
		t.SLAResponseDue = &responseDue
		t.SLAResolveDue = &resolveDue
	}

	if err := e.stores.Tickets.Insert(ctx, t); err != nil {
		return nil, err
	}

	e.appendActivity(ctx, t.ID, actor, "Created", fmt.Sprintf("Ticket %s opened with priority %s", t.TicketNumber, t.Priority))
	return t, nil
}

// UpdateTicketSeverity changes impact/urgency and re-derives the priority
// tier, unless the priority was explicitly pinned at creation.
func (e *Engine) UpdateTicketSeverity(ctx context.Context, actor Actor, ticketID primitive.ObjectID, impact, urgency *int) (*models.Ticket, error) {
	t, err := e.stores.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	newImpact, newUrgency := t.Impact, t.Urgency
	if impact != nil {
		if *impact < 1 || *impact > 5 {
			return nil, Validationf("impact must be between 1 and 5")
		}
		newImpact = *impact
	}
	if urgency != nil {
		if *urgency < 1 || *urgency > 5 {
			return nil, Validationf("urgency must be between 1 and 5")
		}
		newUrgency = *urgency
	}

	mut := TicketMutation{Impact: &newImpact, Urgency: &newUrgency}
	if !t.PriorityPinned {
		criticality := 1
		if t.AssetID != nil {
			if a, err := e.stores.Assets.FindByID(ctx, *t.AssetID); err == nil {
				criticality = a.Criticality
			}
		}
		priority := PriorityForScore(PriorityScore(newImpact, newUrgency, criticality))
		mut.Priority = &priority
	}
	return e.stores.Tickets.Update(ctx, ticketID, mut)
}

// AssignTicket hands the ticket to an engineer. Requires an elevated role.
func (e *Engine) AssignTicket(ctx context.Context, actor Actor, ticketID, assigneeID primitive.ObjectID) (*models.Ticket, error) {
	t, err := e.stores.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() {
		return nil, Permissionf(t.SiteID.Hex(), "only admins and supervisors can assign tickets")
	}
	if !ticketTransitionAllowed(t.Status, models.TicketAssigned) {
		return nil, Conflictf("ticket %s cannot be assigned while %s", t.TicketNumber, t.Status)
	}

	updated, err := e.stores.Tickets.ClaimStatus(ctx, ticketID, []models.TicketStatus{t.Status},
		models.TicketAssigned, TicketMutation{AssignedTo: &assigneeID})
	if err != nil {
		return nil, err
	}
	e.appendActivity(ctx, ticketID, actor, "Assignment", fmt.Sprintf("Ticket assigned to %s", assigneeID.Hex()))
	return updated, nil
}

// TransitionTicket performs one human-driven status move. Resolution text is
// required when moving to Resolved.
func (e *Engine) TransitionTicket(ctx context.Context, actor Actor, ticketID primitive.ObjectID, to models.TicketStatus, note string) (*models.Ticket, error) {
	t, err := e.stores.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticketTransitionAllowed(t.Status, to) {
		return nil, Conflictf("ticket %s cannot move from %s to %s", t.TicketNumber, t.Status, to)
	}

	switch to {
	case models.TicketVerified, models.TicketClosed:
		if !actor.Elevated() && actor.ID != t.CreatedBy {
			return nil, Permissionf(t.SiteID.Hex(), "only the reporter or a supervisor can %s a ticket", strings.ToLower(string(to)))
		}
	case models.TicketResolved:
		if strings.TrimSpace(note) == "" {
			return nil, Validationf("resolution notes are required")
		}
	}

	mut := TicketMutation{}
	category := "Status"
	message := fmt.Sprintf("Status changed from %s to %s", t.Status, to)
	if to == models.TicketResolved {
		now := e.now().UTC()
		mut.Resolution = &note
		mut.ResolvedBy = &actor.ID
		mut.ResolvedAt = &now
		category = "Resolution"
		message = "Ticket resolved: " + note
	}

	updated, err := e.stores.Tickets.ClaimStatus(ctx, ticketID, []models.TicketStatus{t.Status}, to, mut)
	if err != nil {
		return nil, err
	}
	e.appendActivity(ctx, ticketID, actor, category, message)
	return updated, nil
}

// EscalateTicket raises the escalation level (capped at 3) and moves the
// ticket to Escalated.
func (e *Engine) EscalateTicket(ctx context.Context, actor Actor, ticketID primitive.ObjectID, note string) (*models.Ticket, error) {
	t, err := e.stores.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticketTransitionAllowed(t.Status, models.TicketEscalated) {
		return nil, Conflictf("ticket %s cannot be escalated while %s", t.TicketNumber, t.Status)
	}

	level := t.EscalationLevel + 1
	if level > 3 {
		level = 3
	}
	updated, err := e.stores.Tickets.ClaimStatus(ctx, ticketID, []models.TicketStatus{t.Status},
		models.TicketEscalated, TicketMutation{EscalationLevel: &level})
	if err != nil {
		return nil, err
	}
	e.appendActivity(ctx, ticketID, actor, "Escalation", fmt.Sprintf("Escalated to level %d: %s", level, note))
	return updated, nil
}

// GetTicket looks up one ticket.
func (e *Engine) GetTicket(ctx context.Context, ticketID primitive.ObjectID) (*models.Ticket, error) {
	return e.stores.Tickets.FindByID(ctx, ticketID)
}
