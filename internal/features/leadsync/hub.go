package leadsync

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	subscriberBuffer = 16
	writeTimeout     = 10 * time.Second
)

// Publisher receives a summary of every finished run.
type Publisher interface {
	Publish(event RunEvent)
}

type subscriber interface {
	WriteJSON(v interface{}) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

type outbox struct {
	send chan RunEvent
	done chan struct{}
}

// Hub fans run events out to connected websocket clients. Each client has
// its own queue and writer, so a slow client only loses its own events.
type Hub struct {
	mu          sync.Mutex
	subscribers map[subscriber]*outbox
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[subscriber]*outbox),
		logger:      logger.Named("lead_sync_hub"),
	}
}

func (h *Hub) subscribe(s subscriber) *outbox {
	box := &outbox{
		send: make(chan RunEvent, subscriberBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.subscribers[s] = box
	h.mu.Unlock()

	go h.writeLoop(s, box)
	return box
}

func (h *Hub) unsubscribe(s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if box, ok := h.subscribers[s]; ok {
		delete(h.subscribers, s)
		close(box.send)
	}
}

func (h *Hub) writeLoop(s subscriber, box *outbox) {
	defer close(box.done)
	for event := range box.send {
		if d, ok := s.(writeDeadliner); ok {
			_ = d.SetWriteDeadline(time.Now().Add(writeTimeout))
		}
		if err := s.WriteJSON(event); err != nil {
			h.logger.Debug("Dropping websocket subscriber", zap.Error(err))
			h.unsubscribe(s)
			return
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish never blocks: a subscriber with a full queue misses the event.
func (h *Hub) Publish(event RunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, box := range h.subscribers {
		select {
		case box.send <- event:
		default:
			h.logger.Debug("Websocket subscriber queue full, event dropped", zap.String("run_id", event.RunID))
		}
	}
}

// HandleWebSocket keeps the connection registered until the client goes away.
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	box := h.subscribe(c)
	defer func() {
		h.unsubscribe(c)
		<-box.done
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
