package ws

import (
	"log/slog"
	"sync"

	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/session"
)

// Hub tracks live connections and their room subscriptions, and
// implements the coordinator's Broadcaster capability. Delivery is
// fire-and-forget: a slow consumer has frames dropped rather than
// stalling the room.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.ConnectionID]*Client
	rooms   map[model.RoomKey]map[model.ConnectionID]*Client
	logger  *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.ConnectionID]*Client),
		rooms:   make(map[model.RoomKey]map[model.ConnectionID]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Ensure Hub implements the Broadcaster capability
var _ session.Broadcaster = (*Hub)(nil)

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("connection opened",
		slog.String("connection_id", string(client.id)),
		slog.Int("total_connections", total))
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		for room, members := range h.rooms {
			if _, in := members[client.id]; in {
				delete(members, client.id)
				if len(members) == 0 {
					delete(h.rooms, room)
				}
			}
		}
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("connection closed",
		slog.String("connection_id", string(client.id)),
		slog.Int("total_connections", total))
}

// Subscribe adds a connection to a room's broadcast group
func (h *Hub) Subscribe(id model.ConnectionID, room model.RoomKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[id]
	if !ok {
		return
	}
	members := h.rooms[room]
	if members == nil {
		members = make(map[model.ConnectionID]*Client)
		h.rooms[room] = members
	}
	members[id] = client
}

// Unsubscribe removes a connection from a room's broadcast group
func (h *Hub) Unsubscribe(id model.ConnectionID, room model.RoomKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// ToRoom delivers an event to every member of a room. An empty room
// is a no-op, not an error.
func (h *Hub) ToRoom(room model.RoomKey, event model.EventName, payload any) {
	frame := ServerEvent{Event: string(event), Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[room] {
		h.deliver(client, frame)
	}
}

// ToRoomExcept delivers an event to every member of a room except the
// named connection
func (h *Hub) ToRoomExcept(id model.ConnectionID, room model.RoomKey, event model.EventName, payload any) {
	frame := ServerEvent{Event: string(event), Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for memberID, client := range h.rooms[room] {
		if memberID == id {
			continue
		}
		h.deliver(client, frame)
	}
}

// ToConnection delivers an event to a single connection
func (h *Hub) ToConnection(id model.ConnectionID, event model.EventName, payload any) {
	frame := ServerEvent{Event: string(event), Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[id]; ok {
		h.deliver(client, frame)
	}
}

// deliver assumes h.mu is held at least for reading
func (h *Hub) deliver(client *Client, frame ServerEvent) {
	select {
	case client.send <- frame:
	default:
		h.logger.Warn("frame dropped - client buffer full",
			slog.String("connection_id", string(client.id)),
			slog.String("event", frame.Event))
	}
}

// ConnectionCount returns the number of live connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
