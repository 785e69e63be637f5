// workflow/helpers_test.go
package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	m := newMemStore()
	return NewEngine(m.stores(), nil, nil), m
}

func adminActor() Actor {
	return Actor{ID: primitive.NewObjectID(), Name: "alice", Role: models.RoleAdmin}
}

func engineerActor() Actor {
	return Actor{ID: primitive.NewObjectID(), Name: "bob", Role: models.RoleEngineer}
}

func seedAsset(t *testing.T, m *memStore, siteID primitive.ObjectID, assetType string, status models.AssetStatus, criticality int, serial string) *models.Asset {
	t.Helper()
	now := time.Now().UTC()
	a := &models.Asset{
		ID:           primitive.NewObjectID(),
		AssetCode:    "AST-" + primitive.NewObjectID().Hex()[18:],
		AssetType:    assetType,
		Model:        "M-100",
		SerialNumber: serial,
		MACAddress:   "00:11:22:33:44:55",
		IPAddress:    "10.0.0.9",
		SiteID:       siteID,
		Status:       status,
		Criticality:  criticality,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := (memAssets{m}).Insert(context.Background(), a); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func seedTicket(t *testing.T, m *memStore, siteID primitive.ObjectID, assetID *primitive.ObjectID, status models.TicketStatus) *models.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk := &models.Ticket{
		ID:           primitive.NewObjectID(),
		TicketNumber: "TKT-20250101-0001",
		Title:        "camera offline",
		SiteID:       siteID,
		AssetID:      assetID,
		Impact:       3,
		Urgency:      3,
		Priority:     "P3",
		Status:       status,
		CreatedBy:    primitive.NewObjectID(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := (memTickets{m}).Insert(context.Background(), tk); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return tk
}

// captureNotifier records published notifications for assertions.
type captureNotifier struct {
	mu     sync.Mutex
	events []models.Notification
}

func (n *captureNotifier) Publish(ev models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
