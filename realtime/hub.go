package realtime

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/syedahibahasan/study-sync-backend/models"

	"go.uber.org/zap"
)

// MaxRoomsPerSubscriber caps how many rooms one connection may join.
const MaxRoomsPerSubscriber = 32

// ErrRoomLimit is returned when a subscriber exceeds the room cap.
var ErrRoomLimit = errors.New("room limit reached for connection")

// Subscriber is a live connection the hub can deliver to. Deliver must not
// block; it reports false when the subscriber can no longer accept events,
// at which point the hub evicts and closes it.
type Subscriber interface {
	ID() string
	Deliver(payload []byte) bool
	Close()
}

// Hub tracks which live connections are viewing which group and fans chat
// events out to them. It owns no persistence: broadcasts are best-effort
// notifications layered over the stored message log. The hub is
// constructor-injected wherever broadcasts are triggered; all state lives
// behind its own mutex.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Subscriber]struct{}
	// joined mirrors rooms per subscriber so disconnect cleanup does not
	// scan every room.
	joined map[Subscriber]map[string]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[Subscriber]struct{}),
		joined: make(map[Subscriber]map[string]struct{}),
		logger: logger,
	}
}

// JoinRoom adds the subscriber to the group's room. Joining a room twice is
// a no-op.
func (h *Hub) JoinRoom(sub Subscriber, groupID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms := h.joined[sub]
	if rooms == nil {
		rooms = make(map[string]struct{})
		h.joined[sub] = rooms
	}
	if _, ok := rooms[groupID]; ok {
		return nil
	}
	if len(rooms) >= MaxRoomsPerSubscriber {
		return ErrRoomLimit
	}

	room := h.rooms[groupID]
	if room == nil {
		room = make(map[Subscriber]struct{})
		h.rooms[groupID] = room
	}
	room[sub] = struct{}{}
	rooms[groupID] = struct{}{}
	return nil
}

// LeaveRoom removes the subscriber from the group's room. Leaving a room
// the subscriber never joined is a no-op.
func (h *Hub) LeaveRoom(sub Subscriber, groupID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(sub, groupID)
}

// RemoveSubscriber detaches the subscriber from every room it joined.
// Safe to call more than once; disconnect paths rely on that.
func (h *Hub) RemoveSubscriber(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for groupID := range h.joined[sub] {
		h.leaveLocked(sub, groupID)
	}
	delete(h.joined, sub)
}

func (h *Hub) leaveLocked(sub Subscriber, groupID string) {
	if room, ok := h.rooms[groupID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, groupID)
		}
	}
	if rooms, ok := h.joined[sub]; ok {
		delete(rooms, groupID)
	}
}

// Broadcast fans a persisted chat message out to every connection currently
// in the group's room. Callers invoke this only after the message has been
// appended to the stored log, so live delivery order matches append order.
// A room with no connections is a no-op. Delivery failures evict the dead
// subscriber and are logged, never returned: persistence already succeeded.
func (h *Hub) Broadcast(groupID string, msg models.ChatMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode chat event", zap.String("groupID", groupID), zap.Error(err))
		return
	}

	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.rooms[groupID]))
	for sub := range h.rooms[groupID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if !sub.Deliver(payload) {
			h.logger.Warn("evicting unresponsive chat connection",
				zap.String("groupID", groupID), zap.String("connID", sub.ID()))
			h.RemoveSubscriber(sub)
			sub.Close()
		}
	}
}

// RoomSize reports how many connections are currently in the group's room.
func (h *Hub) RoomSize(groupID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[groupID])
}
