package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/gitgraph/pkg/observability"
)

// Message types sent and received over the websocket.
const (
	// MessageMouseover is broadcast when the pointer enters a commit dot.
	MessageMouseover = "commit:mouseover"
	// MessageTooltip answers a pointer message with the tooltip state.
	MessageTooltip = "tooltip"
	// MessagePointer is sent by clients to hit-test a position.
	MessagePointer = "pointer"
	// MessageError reports a rejected client message.
	MessageError = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	broadcastQueue = 256
	clientQueue    = 32
)

// Message is the websocket envelope.
type Message struct {
	Type    string  `json:"type"`
	Diagram string  `json:"diagram,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Data    any     `json:"data,omitempty"`
}

// Hub fans messages out to connected websocket clients.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]bool

	broadcast chan Message
	onPointer func(ctx context.Context, m Message) (Message, error)
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// NewHub creates a hub. An empty origins list accepts any origin.
func NewHub(logger *log.Logger, origins []string) *Hub {
	h := &Hub{
		logger:    logger,
		clients:   make(map[*client]bool),
		broadcast: make(chan Message, broadcastQueue),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}
	return h
}

// Run delivers broadcasts until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("websocket client is slow, dropping message", "type", msg.Type)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues msg for every client. It never blocks.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping message", "type", msg.Type)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan Message, clientQueue)}

	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "clients", n)
	observability.Hover().OnClients(r.Context(), n)

	go h.writeLoop(c)
	h.readLoop(r.Context(), c)
}

func (h *Hub) remove(ctx context.Context, c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected", "clients", n)
	observability.Hover().OnClients(ctx, n)
}

func (h *Hub) readLoop(ctx context.Context, c *client) {
	defer func() {
		h.remove(context.WithoutCancel(ctx), c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxScriptBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil || m.Type != MessagePointer || h.onPointer == nil {
			h.reply(c, Message{Type: MessageError, Data: "expected a pointer message"})
			continue
		}
		resp, err := h.onPointer(ctx, m)
		if err != nil {
			h.reply(c, Message{Type: MessageError, Diagram: m.Diagram, Data: err.Error()})
			continue
		}
		h.reply(c, resp)
	}
}

// reply sends to one client without blocking the read loop.
func (h *Hub) reply(c *client, m Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- m:
	default:
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
