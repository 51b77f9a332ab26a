package server

import (
	"sync"
)

// Registry is the authoritative in-memory index of which connections are
// joined to which rooms. Both directions are tracked together so that
// broadcast is O(room size) and disconnect cleanup is O(membership count).
// Invariant: a client appears in a room's member set iff that room id
// appears in the client's membership set.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]map[*Client]struct{}),
		members: make(map[*Client]map[string]struct{}),
	}
}

// Join adds the client to the room's member set. Joining a room the client
// already belongs to is a no-op; Join reports whether membership changed.
func (r *Registry) Join(c *Client, roomId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[c][roomId]; ok {
		return false
	}

	if r.rooms[roomId] == nil {
		r.rooms[roomId] = make(map[*Client]struct{})
	}
	r.rooms[roomId][c] = struct{}{}

	if r.members[c] == nil {
		r.members[c] = make(map[string]struct{})
	}
	r.members[c][roomId] = struct{}{}

	return true
}

// Broadcast queues msg on every connection currently joined to the room,
// including the sender's own connection if joined. Delivery is
// fire-and-forget: a client whose send buffer is full drops its copy
// without affecting the others.
func (r *Registry) Broadcast(roomId string, msg *ServerMessage) {
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.rooms[roomId]))
	for c := range r.rooms[roomId] {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		c.queueMessage(msg)
	}
}

// LeaveAll removes the client from every room it joined and discards its
// membership set. Safe to call for a client that never joined anything.
func (r *Registry) LeaveAll(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomId := range r.members[c] {
		delete(r.rooms[roomId], c)
		if len(r.rooms[roomId]) == 0 {
			delete(r.rooms, roomId)
		}
	}

	delete(r.members, c)
}

// NumMembers returns the number of connections currently joined to the room.
func (r *Registry) NumMembers(roomId string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[roomId])
}

// NumRooms returns the number of rooms the client is currently joined to.
func (r *Registry) NumRooms(c *Client) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members[c])
}
