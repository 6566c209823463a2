package ws

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"AssistHub/pkg/zlog"

	"github.com/gorilla/websocket"
)

// Envelope is the frame pushed to clients. Destination mirrors the per-context
// chat queue a client subscribes to ("chat/<contextId>").
type Envelope struct {
	Destination string      `json:"destination"`
	Body        interface{} `json:"body"`
}

// Hub tracks the live connections per user and notifies lifecycle observers.
// A user counts as connected while at least one client is registered.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	onConnect    []func(userID string)
	onDisconnect []func(userID string)
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

// OnConnect registers a callback fired whenever a client for a user registers.
// Must be called before the hub starts accepting connections.
func (h *Hub) OnConnect(fn func(userID string)) {
	h.onConnect = append(h.onConnect, fn)
}

// OnDisconnect registers a callback fired when a user's last client goes away.
// Must be called before the hub starts accepting connections.
func (h *Hub) OnDisconnect(fn func(userID string)) {
	h.onDisconnect = append(h.onDisconnect, fn)
}

func (h *Hub) Register(c *Client) {
	if c == nil || c.userID == "" {
		return
	}
	h.mu.Lock()
	set := h.clients[c.userID]
	if set == nil {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	for _, fn := range h.onConnect {
		fn(c.userID)
	}
}

func (h *Hub) Unregister(c *Client) {
	if c == nil || c.userID == "" {
		return
	}
	h.mu.Lock()
	last := false
	set := h.clients[c.userID]
	if set != nil {
		if _, ok := set[c]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, c.userID)
				last = true
			}
		}
	}
	h.mu.Unlock()
	c.Close()

	if last {
		for _, fn := range h.onDisconnect {
			fn(c.userID)
		}
	}
}

// SendToUser pushes a payload to all live clients of a user. Best effort: a
// false return means no client received it, the caller decides whether that
// matters.
func (h *Hub) SendToUser(userID string, contextID string, body interface{}) bool {
	if contextID == "" {
		contextID = "0"
	}
	payload, err := json.Marshal(Envelope{
		Destination: "chat/" + contextID,
		Body:        body,
	})
	if err != nil {
		zlog.Error("ws payload marshal failed: " + err.Error())
		return false
	}
	return h.send(userID, payload)
}

func (h *Hub) send(userID string, payload []byte) bool {
	if userID == "" || len(payload) == 0 {
		return false
	}

	h.mu.RLock()
	set := h.clients[userID]
	stale := make([]*Client, 0)
	ok := false
	for c := range set {
		select {
		case c.send <- payload:
			ok = true
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.Unregister(c)
	}
	return ok
}

// ConnectedUsers lists the user ids with at least one live client.
func (h *Hub) ConnectedUsers() []string {
	h.mu.RLock()
	users := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	h.mu.RUnlock()
	sort.Strings(users)
	return users
}

type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte

	closeOnce sync.Once
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
}

func (c *Client) UserID() string {
	return c.userID
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) WritePump() {
	if c.conn == nil {
		return
	}
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
