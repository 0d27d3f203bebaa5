package ws

import (
	"context"
	"net/http"
	"time"

	"catering/rules"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Event is what subscribers receive. "rules" carries a saved config;
// "refresh" tells dashboards to recompute time-dependent fields.
type Event struct {
	Type  string            `json:"type"`
	At    time.Time         `json:"at"`
	Rules *rules.RuleConfig `json:"rules,omitempty"`
}

// RulesHub fans rule changes and periodic refresh ticks out to every
// connected dashboard. Run owns the connection set.
type RulesHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}

	clock    rules.Clock
	interval time.Duration
	log      zerolog.Logger
}

func NewRulesHub(clock rules.Clock, interval time.Duration, log zerolog.Logger) *RulesHub {
	return &RulesHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 8),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		clock:      clock,
		interval:   interval,
		log:        log,
	}
}

// Run serves register/unregister/broadcast until ctx is cancelled, then
// closes every connection.
func (h *RulesHub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	defer close(h.done)
	defer func() {
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case conn := <-h.register:
			h.clients[conn] = true
			h.send(conn, Event{Type: "hello", At: h.clock.Now()})

		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}

		case ev := <-h.broadcast:
			for conn := range h.clients {
				h.send(conn, ev)
			}

		case <-ticker.C:
			ev := Event{Type: "refresh", At: h.clock.Now()}
			for conn := range h.clients {
				h.send(conn, ev)
			}
		}
	}
}

func (h *RulesHub) send(conn *websocket.Conn, ev Event) {
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(ev); err != nil {
		h.log.Warn().Err(err).Msg("ws write error")
		conn.Close()
		delete(h.clients, conn)
	}
}

// BroadcastRules queues a saved config for every subscriber. It never
// blocks the caller; when the queue is full the event is dropped and the
// next refresh tick still reaches dashboards.
func (h *RulesHub) BroadcastRules(cfg rules.RuleConfig) {
	ev := Event{Type: "rules", At: h.clock.Now(), Rules: &cfg}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn().Msg("rules broadcast dropped: queue full")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/rules
func (h *RulesHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade error")
		return
	}
	select {
	case h.register <- conn:
		go h.drain(conn)
	case <-h.done:
		conn.Close()
	}
}

// drain reads until the client goes away; dashboards never send anything
// meaningful.
func (h *RulesHub) drain(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
