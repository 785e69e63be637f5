// workflow/engine.go
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// Notifier delivers notification payloads to whatever realtime transport is
// wired in. Delivery is best-effort: the engine dispatches after the primary
// write commits and logs failures without propagating them.
type Notifier interface {
	Publish(n models.Notification) error
}

// Engine runs the asset lifecycle and replacement workflows. All state
// machine decisions live here; persistence details live behind Stores.
type Engine struct {
	stores   Stores
	sla      SLAPolicy
	notifier Notifier
	now      func() time.Time
}

func NewEngine(stores Stores, sla SLAPolicy, notifier Notifier) *Engine {
	if sla == nil {
		sla = DefaultSLAPolicy()
	}
	return &Engine{
		stores:   stores,
		sla:      sla,
		notifier: notifier,
		now:      time.Now,
	}
}

// dispatch hands a notification to the notifier on its own goroutine. A
// failed or panicking notifier must never fail the workflow that produced
// the payload.
func (e *Engine) dispatch(n models.Notification) {
	if e.notifier == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("notification dispatch panic: %v", r)
			}
		}()
		if err := e.notifier.Publish(n); err != nil {
			log.Printf("notification dispatch failed: %v", err)
		}
	}()
}

// appendActivity writes a note to the ticket's activity stream. Fire and
// forget: a failed append is logged, never surfaced.
func (e *Engine) appendActivity(ctx context.Context, ticketID primitive.ObjectID, actor Actor, category, message string) {
	entry := models.ActivityEntry{
		Category:  category,
		Message:   message,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		CreatedAt: e.now().UTC(),
	}
	if err := e.stores.Tickets.AppendActivity(ctx, ticketID, entry); err != nil {
		log.Printf("activity append failed for ticket %s: %v", ticketID.Hex(), err)
	}
}

// nextNumber builds a daily sequential reference like TKT-20250901-0007. The
// counter key embeds the date so the sequence resets each day.
func (e *Engine) nextNumber(ctx context.Context, prefix string) (string, error) {
	date := e.now().UTC().Format("20060102")
	n, err := e.stores.Counters.Next(ctx, fmt.Sprintf("%s-%s", prefix, date))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, date, n), nil
}
