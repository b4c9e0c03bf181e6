package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/davmoros/cronograma-backend/internal/model"
)

const writeTimeout = 10 * time.Second

// Hub fans schedule-change events out to every connected timetable view.
// It implements service.ChangeNotifier; broadcasting happens on the caller's
// goroutine and a slow or dead client is dropped rather than blocking the
// accept path.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// NotifyScheduleChanged broadcasts a schedule mutation to all listeners.
func (h *Hub) NotifyScheduleChanged(action model.AuditAction, groupKey string) {
	payload := ScheduleChangedPayload{
		Event:    EventScheduleChanged,
		Action:   action,
		GroupKey: groupKey,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(payload); err != nil {
			h.log.Debug().Err(err).Msg("Dropping dead listener")
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// Len reports the number of connected listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
