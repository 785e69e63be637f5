// workflow/ticket_test.go
package workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

func TestTicketNumbersSequentialWithinDay(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	date := time.Now().UTC().Format("20060102")

	for i := 1; i <= 3; i++ {
		tk, err := e.CreateTicket(ctx, engineerActor(), CreateTicketInput{
			Title: fmt.Sprintf("incident %d", i), SiteID: site, Impact: 2, Urgency: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("TKT-%s-%04d", date, i), tk.TicketNumber)
	}
}

func TestTicketNumbersUniqueUnderConcurrency(t *testing.T) {
	e, _ := newTestEngine(t)
	site := primitive.NewObjectID()

	const n = 32
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk, err := e.CreateTicket(context.Background(), engineerActor(), CreateTicketInput{
				Title: "racing incident", SiteID: site, Impact: 1, Urgency: 1,
			})
			if err == nil {
				numbers <- tk.TicketNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	count := 0
	for num := range numbers {
		assert.Falsef(t, seen[num], "duplicate ticket number %s", num)
		seen[num] = true
		count++
	}
	assert.Equal(t, n, count)
}

func TestPriorityScoring(t *testing.T) {
	assert.Equal(t, 75, PriorityScore(5, 5, 3))
	assert.Equal(t, "P1", PriorityForScore(75))
	assert.Equal(t, "P1", PriorityForScore(50))
	assert.Equal(t, "P2", PriorityForScore(49))
	assert.Equal(t, "P2", PriorityForScore(25))
	assert.Equal(t, "P3", PriorityForScore(24))
	assert.Equal(t, "P3", PriorityForScore(10))
	assert.Equal(t, "P4", PriorityForScore(9))
}

func tierRank(p string) int {
	switch p {
	case "P1":
		return 4
	case "P2":
		return 3
	case "P3":
		return 2
	default:
		return 1
	}
}

func TestPriorityMonotonicInImpactAndUrgency(t *testing.T) {
	for crit := 1; crit <= 3; crit++ {
		for urgency := 1; urgency <= 5; urgency++ {
			prev := 0
			for impact := 1; impact <= 5; impact++ {
				rank := tierRank(PriorityForScore(PriorityScore(impact, urgency, crit)))
				assert.GreaterOrEqualf(t, rank, prev, "impact=%d urgency=%d crit=%d", impact, urgency, crit)
				prev = rank
			}
		}
		for impact := 1; impact <= 5; impact++ {
			prev := 0
			for urgency := 1; urgency <= 5; urgency++ {
				rank := tierRank(PriorityForScore(PriorityScore(impact, urgency, crit)))
				assert.GreaterOrEqual(t, rank, prev)
				prev = rank
			}
		}
	}
}

func TestCreateTicketDerivesPriorityFromAssetCriticality(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	a := seedAsset(t, m, site, "Camera", models.AssetOperational, 3, "SN-P1")

	tk, err := e.CreateTicket(ctx, engineerActor(), CreateTicketInput{
		Title: "dome camera dead", SiteID: site, AssetID: &a.ID, Impact: 5, Urgency: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "P1", tk.Priority)
	assert.False(t, tk.PriorityPinned)
	require.NotNil(t, tk.SLAResponseDue)
	require.NotNil(t, tk.SLAResolveDue)
	assert.True(t, tk.SLAResolveDue.After(*tk.SLAResponseDue))
}

func TestCreateTicketValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateTicket(ctx, engineerActor(), CreateTicketInput{SiteID: primitive.NewObjectID(), Impact: 2, Urgency: 2})
	assert.True(t, IsValidation(err))

	_, err = e.CreateTicket(ctx, engineerActor(), CreateTicketInput{Title: "x", SiteID: primitive.NewObjectID(), Impact: 6, Urgency: 2})
	assert.True(t, IsValidation(err))
}

func TestSeverityUpdateRecomputesUnlessPinned(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	a := seedAsset(t, m, site, "Camera", models.AssetOperational, 3, "SN-PIN")

	derived, err := e.CreateTicket(ctx, engineerActor(), CreateTicketInput{
		Title: "flaky feed", SiteID: site, AssetID: &a.ID, Impact: 2, Urgency: 2, // score 12 -> P3
	})
	require.NoError(t, err)
	require.Equal(t, "P3", derived.Priority)

	five := 5
	updated, err := e.UpdateTicketSeverity(ctx, engineerActor(), derived.ID, &five, &five)
	require.NoError(t, err)
	assert.Equal(t, "P1", updated.Priority)

	pinned, err := e.CreateTicket(ctx, engineerActor(), CreateTicketInput{
		Title: "pinned", SiteID: site, AssetID: &a.ID, Impact: 2, Urgency: 2, Priority: "P4",
	})
	require.NoError(t, err)
	updated, err = e.UpdateTicketSeverity(ctx, engineerActor(), pinned.ID, &five, &five)
	require.NoError(t, err)
	assert.Equal(t, "P4", updated.Priority, "pinned priority must not be recomputed")
}

func TestTicketTransitions(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	site := primitive.NewObjectID()
	admin := adminActor()

	tk := seedTicket(t, m, site, nil, models.TicketOpen)

	_, err := e.TransitionTicket(ctx, admin, tk.ID, models.TicketResolved, "done")
	assert.True(t, IsConflict(err), "Open cannot jump to Resolved")

	_, err = e.AssignTicket(ctx, engineerActor(), tk.ID, primitive.NewObjectID())
	assert.True(t, IsPermission(err))

	assigned, err := e.AssignTicket(ctx, admin, tk.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, models.TicketAssigned, assigned.Status)

	_, err = e.TransitionTicket(ctx, admin, tk.ID, models.TicketInProgress, "")
	require.NoError(t, err)

	_, err = e.TransitionTicket(ctx, admin, tk.ID, models.TicketResolved, "")
	assert.True(t, IsValidation(err), "resolution requires notes")

	resolved, err := e.TransitionTicket(ctx, admin, tk.ID, models.TicketResolved, "swapped the PSU")
	require.NoError(t, err)
	assert.Equal(t, models.TicketResolved, resolved.Status)
	assert.Equal(t, "swapped the PSU", resolved.Resolution)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestEscalationCapsAtThree(t *testing.T) {
	e, m := newTestEngine(t)
	ctx := context.Background()
	admin := adminActor()
	tk := seedTicket(t, m, primitive.NewObjectID(), nil, models.TicketOpen)

	for i := 0; i < 5; i++ {
		esc, err := e.EscalateTicket(ctx, admin, tk.ID, "still broken")
		require.NoError(t, err)
		assert.LessOrEqual(t, esc.EscalationLevel, 3)
		// Escalated -> InProgress so the next escalation is legal again.
		_, err = e.TransitionTicket(ctx, admin, tk.ID, models.TicketInProgress, "")
		require.NoError(t, err)
	}

	got, err := e.GetTicket(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.EscalationLevel)
}
