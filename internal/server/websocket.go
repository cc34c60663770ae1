package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	model "token-exchange/internal/models"
	"token-exchange/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// ChannelAll receives every event
	ChannelAll = "all"

	sendBuffer   = 256
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	writeWait    = 10 * time.Second
)

// TokenChannel names the channel carrying events for one token
func TokenChannel(tokenID model.TokenID) string {
	return fmt.Sprintf("token:%d", tokenID)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are enforced by the CORS wrapper in front of the router
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SubscribeRequest is what clients send to manage their channels
type SubscribeRequest struct {
	Op       string   `json:"op"` // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"`
}

// Ack confirms a subscription change
type Ack struct {
	Type     string   `json:"type"`
	Op       string   `json:"op"`
	Channels []string `json:"channels"`
}

// EventMessage wraps an event pushed to a subscriber
type EventMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Event   model.Event `json:"event"`
}

// Hub tracks websocket subscribers and pushes committed events to them.
// It is an event bus sink.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Name() string { return "websocket" }

// Handle delivers ev to every client subscribed to "all" or to the event's token.
// Clients whose buffer is full are dropped.
func (h *Hub) Handle(_ context.Context, ev model.Event) error {
	tokenCh := TokenChannel(ev.TokenID)

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		channel := ""
		switch {
		case client.IsSubscribed(tokenCh):
			channel = tokenCh
		case client.IsSubscribed(ChannelAll):
			channel = ChannelAll
		default:
			continue
		}

		msg, err := json.Marshal(EventMessage{Type: "event", Channel: channel, Event: ev})
		if err != nil {
			return fmt.Errorf("marshal event %d: %w", ev.Seq, err)
		}
		select {
		case client.send <- msg:
		default:
			utils.Warn("ws: client too slow, disconnecting", map[string]any{"client": client.id})
			h.removeLocked(client)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.removeLocked(client)
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	utils.Info("ws: client connected", map[string]any{"client": c.id, "total": total})
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
		utils.Info("ws: client disconnected", map[string]any{"client": c.id, "total": len(h.clients)})
	}
}

func (h *Hub) removeLocked(c *Client) {
	delete(h.clients, c)
	close(c.send)
}

// ServeWS handles GET /ws
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Warn("ws: upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	client := &Client{
		hub:           h,
		conn:          conn,
		send:          make(chan []byte, sendBuffer),
		id:            conn.RemoteAddr().String(),
		subscriptions: make(map[string]bool),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

// Client is one websocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	subsMu        sync.RWMutex
	subscriptions map[string]bool
}

func (c *Client) IsSubscribed(channel string) bool {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	return c.subscriptions[channel]
}

func (c *Client) setSubscribed(channels []string, on bool) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range channels {
		if on {
			c.subscriptions[ch] = true
		} else {
			delete(c.subscriptions, ch)
		}
	}
}

// reply queues msg unless the hub already dropped the client
func (c *Client) reply(msg []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.Warn("ws: read error", map[string]any{"client": c.id, "error": err.Error()})
			}
			return
		}

		var req SubscribeRequest
		if err := json.Unmarshal(message, &req); err != nil {
			utils.Debug("ws: invalid message", map[string]any{"client": c.id, "error": err.Error()})
			continue
		}

		switch req.Op {
		case "subscribe":
			c.setSubscribed(req.Channels, true)
		case "unsubscribe":
			c.setSubscribed(req.Channels, false)
		default:
			utils.Debug("ws: unknown op", map[string]any{"client": c.id, "op": req.Op})
			continue
		}

		ack, err := json.Marshal(Ack{Type: "ack", Op: req.Op, Channels: req.Channels})
		if err != nil {
			continue
		}
		c.reply(ack)
	}
}

// writePump is the only writer on the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
