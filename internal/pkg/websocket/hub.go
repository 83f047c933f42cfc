// Package websocket pushes live notifications to signed-in users.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/futureintern/platform/internal/events"
	"github.com/rs/zerolog"
)

// NotificationApplicationStatus is the Type of status-change notifications
const NotificationApplicationStatus = "application_status"

// Notification is one message pushed to a user's open connections
type Notification struct {
	Type           string    `json:"type"`
	ApplicationID  int64     `json:"application_id,omitempty"`
	InternshipID   int64     `json:"internship_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type delivery struct {
	userID int64
	data   []byte
}

// Hub maintains the set of active clients, keyed by user, and fans
// notifications out to them. All map writes happen on the Run goroutine.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	// closed when Run returns
	done chan struct{}

	// guards clients for ClientCount
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverMessage(d)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Debug().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Debug().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client unregistered")
}

func (h *Hub) deliverMessage(d delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[d.userID] {
		select {
		case client.send <- d.data:
		default:
			// Slow consumer; its write pump exits when send is closed
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Notify queues n for every open connection of userID. It drops the
// notification when the hub has stopped.
func (h *Hub) Notify(userID int64, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to marshal notification")
		return
	}

	select {
	case h.deliver <- delivery{userID: userID, data: data}:
	case <-h.done:
	}
}

// HandleApplicationStatusChanged tells the student about a decision on their
// application. Their own withdrawals are not echoed back.
func (h *Hub) HandleApplicationStatusChanged(_ context.Context, evt events.ApplicationStatusChanged) error {
	if evt.ChangedBy == evt.StudentID {
		return nil
	}
	h.Notify(evt.StudentID, Notification{
		Type:           NotificationApplicationStatus,
		ApplicationID:  evt.ApplicationID,
		InternshipID:   evt.InternshipID,
		Status:         evt.NewStatus,
		PreviousStatus: evt.OldStatus,
	})
	return nil
}

// ClientCount returns the number of open connections for a user
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
