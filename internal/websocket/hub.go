package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSessionChanged   MessageType = "session_changed"
	MessageTypeSearchCompleted  MessageType = "search_completed"
	MessageTypeFlightSelected   MessageType = "flight_selected"
	MessageTypeSeatsUpdated     MessageType = "seats_updated"
	MessageTypeStateChanged     MessageType = "state_changed"
	MessageTypeBookingConfirmed MessageType = "booking_confirmed"
)

// AllFlights is the topic of clients that want every dashboard event
const AllFlights = ""

// Message represents a WebSocket message
type Message struct {
	Type      MessageType           `json:"type"`
	FlightID  string                `json:"flightId,omitempty"`
	State     models.DashboardState `json:"state,omitempty"`
	SeatIDs   []string              `json:"seatIds,omitempty"`
	Total     float64               `json:"totalPrice,omitempty"`
	BookingID string                `json:"bookingId,omitempty"`
	UserID    string                `json:"userId,omitempty"`
	Message   string                `json:"message,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

// Hub fans dashboard events out to the clients watching a flight. Clients
// registered on AllFlights receive everything, and events without a flight
// go to every client.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	logger     *slog.Logger
	now        func() time.Time
}

// NewHub creates a new Hub; call Run to start it
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Run starts the hub's main loop; it returns after Stop
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightID] == nil {
				h.clients[client.flightID] = make(map[*Client]bool)
			}
			h.clients[client.flightID][client] = true
			h.logger.Debug("WebSocket client registered", "flightId", client.flightID, "total", len(h.clients[client.flightID]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("WebSocket: failed to marshal message", "error", err)
				continue
			}

			h.mu.Lock()
			targets := h.targets(message.FlightID)
			h.logger.Debug("WebSocket broadcast", "type", message.Type, "clients", len(targets), "flightId", message.FlightID)
			for _, client := range targets {
				select {
				case client.send <- data:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// targets must be called with mu held
func (h *Hub) targets(flightID string) []*Client {
	var out []*Client
	for topic, clients := range h.clients {
		if flightID != AllFlights && topic != AllFlights && topic != flightID {
			continue
		}
		for client := range clients {
			out = append(out, client)
		}
	}
	return out
}

// remove must be called with mu held
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.flightID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.flightID)
	}
}

// Stop ends Run and disconnects every client
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.remove(client)
		}
	}
}

// Publish queues a message, stamping it if needed. A full buffer drops the
// message rather than blocking the caller.
func (h *Hub) Publish(msg Message) {
	if msg.Timestamp == 0 {
		msg.Timestamp = h.now().UnixMilli()
	}
	select {
	case h.broadcast <- &msg:
	default:
		h.logger.Warn("WebSocket broadcast buffer full, dropping message", "type", msg.Type)
	}
}

// BroadcastSession announces a login, registration, restore or logout
func (h *Hub) BroadcastSession(session models.AuthSession) {
	msg := Message{Type: MessageTypeSessionChanged}
	if session.User != nil {
		msg.UserID = session.User.ID
	}
	h.Publish(msg)
}

// BroadcastView announces a dashboard transition
func (h *Hub) BroadcastView(t MessageType, view models.DashboardView) {
	msg := Message{
		Type:    t,
		State:   view.State,
		SeatIDs: view.SelectedSeats,
		Total:   view.TotalPrice,
	}
	if view.SelectedFlight != nil {
		msg.FlightID = view.SelectedFlight.ID
	}
	h.Publish(msg)
}

// BroadcastBookingConfirmed tells watchers of the flight that seats were booked
func (h *Hub) BroadcastBookingConfirmed(b models.Booking) {
	h.Publish(Message{
		Type:      MessageTypeBookingConfirmed,
		FlightID:  b.FlightID,
		SeatIDs:   b.Seats,
		Total:     b.TotalPrice,
		BookingID: b.ID,
		UserID:    b.UserID,
		Message:   "Booking confirmed",
	})
}

// ClientCount returns the number of clients watching a flight
func (h *Hub) ClientCount(flightID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightID])
}
