// websocket/notifications.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// Publish fans a workflow notification out over the hub. Addressed
// notifications go only to the listed recipients; unaddressed ones go to
// everyone connected. Implements the workflow engine's Notifier.
func (h *Hub) Publish(n models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("failed to marshal notification: %v", err)
		return err
	}

	if len(n.RecipientIDs) == 0 {
		h.sendAll(data)
		return nil
	}
	for _, id := range n.RecipientIDs {
		h.sendTo(id.Hex(), data)
	}
	return nil
}
