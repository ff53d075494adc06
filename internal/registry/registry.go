// Package registry tracks which live channels are subscribed to which
// chatroom and fans broadcast messages out to them.
package registry

import (
	"sync"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

// Registry maps a room to its set of live channels. All methods are safe
// for concurrent use; an instance is shared between the websocket session
// handler and the REST message-send path.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[int64]map[model.Channel]struct{}
	logger *logger.Logger
}

// New creates an empty Registry.
func New(logger *logger.Logger) *Registry {
	return &Registry{
		rooms:  make(map[int64]map[model.Channel]struct{}),
		logger: logger,
	}
}

// Connect registers ch as a subscriber of roomID, creating the room set
// if absent.
func (r *Registry) Connect(roomID int64, ch model.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.rooms[roomID]
	if !ok {
		set = make(map[model.Channel]struct{})
		r.rooms[roomID] = set
	}
	set[ch] = struct{}{}
}

// Disconnect removes ch from the room's set and drops the room entry when
// the set empties. Removing an absent channel is a no-op.
func (r *Registry) Disconnect(roomID int64, ch model.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(r.rooms, roomID)
	}
}

// Broadcast delivers msg to every channel currently subscribed to roomID.
// A channel whose send fails is treated as disconnected: it is pruned and
// closed, and delivery continues to the rest.
func (r *Registry) Broadcast(roomID int64, msg model.BroadcastMessage) {
	r.mu.RLock()
	channels := make([]model.Channel, 0, len(r.rooms[roomID]))
	for ch := range r.rooms[roomID] {
		channels = append(channels, ch)
	}
	r.mu.RUnlock()

	for _, ch := range channels {
		if err := ch.Send(msg); err != nil {
			r.logger.Info("pruning dead channel from room",
				"room_id", roomID,
				"error", err.Error())
			r.Disconnect(roomID, ch)
			_ = ch.Close()
		}
	}
}

// RoomSize reports how many channels are subscribed to roomID.
func (r *Registry) RoomSize(roomID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}

// hasRoom reports whether the registry holds an entry for roomID at all.
// Disconnect removes the room entry when its last channel leaves, so an
// empty-but-present set never occurs.
func (r *Registry) hasRoom(roomID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}
