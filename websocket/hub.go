// websocket/hub.go
package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one connected browser session, keyed by user.
type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks connected clients per user and fans messages out to them. A
// user may hold several connections (multiple tabs); each gets every
// message addressed to that user.
type Hub struct {
	mutex   sync.Mutex
	clients map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*Client]bool)
	}
	h.clients[c.userID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if set, ok := h.clients[c.userID]; ok {
		if set[c] {
			delete(set, c)
			close(c.send)
			if len(set) == 0 {
				delete(h.clients, c.userID)
			}
		}
	}
}

// sendTo queues data for every connection of one user. A client that cannot
// keep up is dropped rather than blocking the broadcast.
func (h *Hub) sendTo(userID string, data []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients[userID], client)
		}
	}
}

// sendAll queues data for every connected client.
func (h *Hub) sendAll(data []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, set := range h.clients {
		for client := range set {
			select {
			case client.send <- data:
			default:
				close(client.send)
				delete(set, client)
			}
		}
	}
}

// ServeWS upgrades the connection after validating the token passed as a
// query parameter (browsers cannot set Authorization headers on WebSocket
// dials).
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		userID: claims.UserID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound frames so pings and close frames are processed.
// Clients are listen-only; any payload they send is discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error for user %s: %v", c.userID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
