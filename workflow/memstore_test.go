// workflow/memstore_test.go
package workflow

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// memStore holds all test state behind one mutex so the conditional-write
// semantics match the Mongo layer: each claim is an atomic check-then-set.
// Per-entity wrapper types implement the store interfaces.
type memStore struct {
	mu           sync.Mutex
	assets       map[primitive.ObjectID]*models.Asset
	tickets      map[primitive.ObjectID]*models.Ticket
	rmas         map[primitive.ObjectID]*models.RMARequest
	requisitions map[primitive.ObjectID]*models.Requisition
	transfers    map[primitive.ObjectID]*models.StockTransfer
	ledger       []models.StockMovementLog
	counters     map[string]int64
	replacements []models.StockReplacement
	users        map[primitive.ObjectID]*models.User
}

func newMemStore() *memStore {
	return &memStore{
		assets:       make(map[primitive.ObjectID]*models.Asset),
		tickets:      make(map[primitive.ObjectID]*models.Ticket),
		rmas:         make(map[primitive.ObjectID]*models.RMARequest),
		requisitions: make(map[primitive.ObjectID]*models.Requisition),
		transfers:    make(map[primitive.ObjectID]*models.StockTransfer),
		counters:     make(map[string]int64),
		users:        make(map[primitive.ObjectID]*models.User),
	}
}

func (m *memStore) stores() Stores {
	return Stores{
		Assets:       memAssets{m},
		Tickets:      memTickets{m},
		RMAs:         memRMAs{m},
		Requisitions: memRequisitions{m},
		Transfers:    memTransfers{m},
		Ledger:       memLedger{m},
		Counters:     memCounters{m},
		Replacements: memReplacements{m},
		Users:        memUsers{m},
	}
}

func statusIn[S comparable](status S, set []S) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// --- assets ---

type memAssets struct{ m *memStore }

func (s memAssets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.assets[id]
	if !ok {
		return nil, NotFound("asset", id.Hex())
	}
	cp := *a
	return &cp, nil
}

func (s memAssets) Insert(ctx context.Context, a *models.Asset) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *a
	s.m.assets[a.ID] = &cp
	return nil
}

func (s memAssets) CountByStatus(ctx context.Context, siteID primitive.ObjectID, assetType string, status models.AssetStatus) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var n int64
	for _, a := range s.m.assets {
		if a.SiteID == siteID && a.AssetType == assetType && a.Status == status {
			n++
		}
	}
	return n, nil
}

func (s memAssets) SerialExists(ctx context.Context, serial string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, a := range s.m.assets {
		if a.SerialNumber == serial {
			return true, nil
		}
	}
	return false, nil
}

func (s memAssets) ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.AssetStatus, mut AssetMutation) (*models.Asset, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.assets[id]
	if !ok {
		return nil, NotFound("asset", id.Hex())
	}
	if len(from) > 0 && !statusIn(a.Status, from) {
		return nil, Conflictf("asset %s is %s, expected one of %v", a.AssetCode, a.Status, from)
	}
	before := *a
	applyAssetMutation(a, mut, time.Now().UTC())
	return &before, nil
}

// --- tickets ---

type memTickets struct{ m *memStore }

func applyTicketMutation(t *models.Ticket, mut TicketMutation) {
	if mut.AssetID != nil {
		id := *mut.AssetID
		t.AssetID = &id
	}
	if mut.Impact != nil {
		t.Impact = *mut.Impact
	}
	if mut.Urgency != nil {
		t.Urgency = *mut.Urgency
	}
	if mut.Priority != nil {
		t.Priority = *mut.Priority
	}
	if mut.EscalationLevel != nil {
		t.EscalationLevel = *mut.EscalationLevel
	}
	if mut.AssignedTo != nil {
		id := *mut.AssignedTo
		t.AssignedTo = &id
	}
	if mut.Resolution != nil {
		t.Resolution = *mut.Resolution
	}
	if mut.ResolvedBy != nil {
		id := *mut.ResolvedBy
		t.ResolvedBy = &id
	}
	if mut.ResolvedAt != nil {
		at := *mut.ResolvedAt
		t.ResolvedAt = &at
	}
	t.UpdatedAt = time.Now().UTC()
}

func (s memTickets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.tickets[id]
	if !ok {
		return nil, NotFound("ticket", id.Hex())
	}
	cp := *t
	return &cp, nil
}

func (s memTickets) Insert(ctx context.Context, t *models.Ticket) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *t
	s.m.tickets[t.ID] = &cp
	return nil
}

func (s memTickets) Update(ctx context.Context, id primitive.ObjectID, mut TicketMutation) (*models.Ticket, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.tickets[id]
	if !ok {
		return nil, NotFound("ticket", id.Hex())
	}
	applyTicketMutation(t, mut)
	cp := *t
	return &cp, nil
}

func (s memTickets) ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.TicketStatus, to models.TicketStatus, mut TicketMutation) (*models.Ticket, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.tickets[id]
	if !ok {
		return nil, NotFound("ticket", id.Hex())
	}
	if !statusIn(t.Status, from) {
		return nil, Conflictf("ticket %s is %s, expected one of %v", t.TicketNumber, t.Status, from)
	}
	applyTicketMutation(t, mut)
	t.Status = to
	cp := *t
	return &cp, nil
}

func (s memTickets) AppendActivity(ctx context.Context, id primitive.ObjectID, e models.ActivityEntry) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.tickets[id]
	if !ok {
		return NotFound("ticket", id.Hex())
	}
	t.Activity = append(t.Activity, e)
	return nil
}

// --- RMAs ---

type memRMAs struct{ m *memStore }

func (s memRMAs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RMARequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.rmas[id]
	if !ok {
		return nil, NotFound("RMA", id.Hex())
	}
	cp := *r
	return &cp, nil
}

func (s memRMAs) Insert(ctx context.Context, r *models.RMARequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *r
	s.m.rmas[r.ID] = &cp
	return nil
}

func (s memRMAs) FindActiveByTicket(ctx context.Context, ticketID primitive.ObjectID) (*models.RMARequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.rmas {
		if r.TicketID == ticketID && !r.Status.Terminal() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s memRMAs) Transition(ctx context.Context, id primitive.ObjectID, from models.RMAStatus, mut RMAMutation, entry models.RMATimelineEntry) (*models.RMARequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.rmas[id]
	if !ok {
		return nil, NotFound("RMA", id.Hex())
	}
	if r.Status != from {
		return nil, Conflictf("RMA %s is %s, expected %s", r.RMANumber, r.Status, from)
	}
	r.Status = mut.Status
	if mut.ApprovedBy != nil {
		r.ApprovedBy, r.ApprovedAt = mut.ApprovedBy, mut.ApprovedAt
	}
	if mut.Replacement != nil {
		r.Replacement = mut.Replacement
	}
	if mut.InstalledBy != nil {
		r.InstalledBy, r.InstalledAt = mut.InstalledBy, mut.InstalledAt
	}
	if mut.RejectedBy != nil {
		r.RejectedBy, r.RejectedAt = mut.RejectedBy, mut.RejectedAt
	}
	r.Timeline = append(r.Timeline, entry)
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

// --- requisitions ---

type memRequisitions struct{ m *memStore }

func (s memRequisitions) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.requisitions[id]
	if !ok {
		return nil, NotFound("requisition", id.Hex())
	}
	cp := *r
	return &cp, nil
}

func (s memRequisitions) Insert(ctx context.Context, r *models.Requisition) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *r
	s.m.requisitions[r.ID] = &cp
	return nil
}

func (s memRequisitions) Transition(ctx context.Context, id primitive.ObjectID, from []models.RequisitionStatus, mut RequisitionMutation) (*models.Requisition, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.requisitions[id]
	if !ok {
		return nil, NotFound("requisition", id.Hex())
	}
	if !statusIn(r.Status, from) {
		return nil, Conflictf("requisition is %s, expected one of %v", r.Status, from)
	}
	r.Status = mut.Status
	if mut.ApprovedBy != nil {
		r.ApprovedBy, r.ApprovedAt = mut.ApprovedBy, mut.ApprovedAt
	}
	if mut.RejectedBy != nil {
		r.RejectedBy, r.RejectedAt = mut.RejectedBy, mut.RejectedAt
	}
	if mut.RejectionReason != nil {
		r.RejectionReason = *mut.RejectionReason
	}
	if mut.FulfilledAssetID != nil {
		r.FulfilledAssetID = mut.FulfilledAssetID
		r.FulfilledBy, r.FulfilledAt = mut.FulfilledBy, mut.FulfilledAt
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

// --- transfers ---

type memTransfers struct{ m *memStore }

func (s memTransfers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StockTransfer, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.transfers[id]
	if !ok {
		return nil, NotFound("transfer", id.Hex())
	}
	cp := *t
	return &cp, nil
}

func (s memTransfers) Insert(ctx context.Context, t *models.StockTransfer) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *t
	s.m.transfers[t.ID] = &cp
	return nil
}

func (s memTransfers) Transition(ctx context.Context, id primitive.ObjectID, from []models.TransferStatus, mut TransferMutation) (*models.StockTransfer, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.transfers[id]
	if !ok {
		return nil, NotFound("transfer", id.Hex())
	}
	if !statusIn(t.Status, from) {
		return nil, Conflictf("transfer is %s, expected one of %v", t.Status, from)
	}
	t.Status = mut.Status
	if mut.Shipping != nil {
		t.Shipping = mut.Shipping
	}
	if mut.ApprovedBy != nil {
		t.ApprovedBy, t.ApprovedAt = mut.ApprovedBy, mut.ApprovedAt
	}
	if mut.DispatchedBy != nil {
		t.DispatchedBy, t.DispatchedAt = mut.DispatchedBy, mut.DispatchedAt
	}
	if mut.ReceivedBy != nil {
		t.ReceivedBy, t.ReceivedAt = mut.ReceivedBy, mut.ReceivedAt
	}
	if mut.CancelledBy != nil {
		t.CancelledBy, t.CancelledAt = mut.CancelledBy, mut.CancelledAt
	}
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

// --- ledger ---

type memLedger struct{ m *memStore }

func (s memLedger) Append(ctx context.Context, entry *models.StockMovementLog) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.ledger = append(s.m.ledger, *entry)
	return nil
}

func (s memLedger) ListByAsset(ctx context.Context, assetID primitive.ObjectID) ([]models.StockMovementLog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.StockMovementLog
	for _, e := range s.m.ledger {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- counters ---

type memCounters struct{ m *memStore }

func (s memCounters) Next(ctx context.Context, name string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.counters[name]++
	return s.m.counters[name], nil
}

// --- replacements ---

type memReplacements struct{ m *memStore }

func (s memReplacements) Insert(ctx context.Context, r *models.StockReplacement) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.replacements = append(s.m.replacements, *r)
	return nil
}

// --- users ---

type memUsers struct{ m *memStore }

func (s memUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, NotFound("user", id.Hex())
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) FindActiveByRoles(ctx context.Context, roles []string) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.User
	for _, u := range s.m.users {
		if !u.Active {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}
