// Package overlayws broadcasts overlay projections to any number of
// connected display pages over websocket. Delivery is best-effort: slow
// or dead clients are dropped rather than ever blocking the engine side.
package overlayws

import (
	"context"
	"encoding/json"
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"agency-live/internal/overlay"
)

var (
	metricBroadcastTotal = expvar.NewInt("overlay_broadcast_total")
	metricDroppedTotal   = expvar.NewInt("overlay_dropped_total")
	metricClients        = expvar.NewInt("overlay_clients")
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	sendBuffer     = 32
	broadcastDepth = 256
)

// Frame is the wire envelope the overlay page receives.
type Frame struct {
	Type string             `json:"type"`
	Data overlay.Projection `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans one projection stream out to all connected overlay pages. It
// satisfies overlay.Publisher.
type Hub struct {
	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]bool

	mu        sync.RWMutex
	lastFrame []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastDepth),
		clients:    map[*client]bool{},
	}
}

// Publish marshals the projection and queues it for every connected page.
// When the queue is full the frame is discarded; the next one supersedes
// it anyway.
func (h *Hub) Publish(p overlay.Projection) {
	payload, err := json.Marshal(Frame{Type: "overlay_state", Data: p})
	if err != nil {
		log.Error().Err(err).Msg("marshal overlay frame failed")
		return
	}
	h.mu.Lock()
	h.lastFrame = payload
	h.mu.Unlock()

	select {
	case h.broadcast <- payload:
		metricBroadcastTotal.Add(1)
	default:
		metricDroppedTotal.Add(1)
	}
}

// Run owns the client set. It exits when ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			metricClients.Set(int64(len(h.clients)))
			log.Info().Int("clients", len(h.clients)).Msg("overlay client connected")
			// Late joiners get the last known state immediately.
			h.mu.RLock()
			last := h.lastFrame
			h.mu.RUnlock()
			if last != nil {
				select {
				case c.send <- last:
				default:
				}
			}
		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				log.Info().Int("clients", len(h.clients)).Msg("overlay client disconnected")
			}
		case payload := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					metricDroppedTotal.Add(1)
					h.drop(c)
				}
			}
		case <-ticker.C:
			for c := range h.clients {
				if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	_ = c.conn.Close()
	metricClients.Set(int64(len(h.clients)))
}

// HandleWS upgrades the request and attaches the page to the hub.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("overlay upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register <- c

	go c.writePump()
	c.readPump(h)
}

func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// Overlay pages are listen-only; anything they send is discarded.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
}
