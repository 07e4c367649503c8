// Package realtime provides the websocket delivery layer: a presence
// registry keyed by user ID and per-connection clients with buffered
// push channels.
package realtime

import (
	"sync"

	notifusecase "social_backend/internal/feature/notifications/usecase"
)

// State tracks the lifecycle of a connection.
//
// Connecting -> Authenticated -> Joined -> Disconnected
// Connecting -> Rejected
type State int

const (
	// StateConnecting is the initial state before the token is resolved.
	StateConnecting State = iota
	// StateAuthenticated means the token resolved to a user.
	StateAuthenticated
	// StateJoined means the connection is registered for delivery.
	StateJoined
	// StateRejected means the token did not resolve; the connection is closed.
	StateRejected
	// StateDisconnected is terminal; the connection left the registry.
	StateDisconnected
)

// String returns a human-readable name for logging.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateJoined:
		return "joined"
	case StateRejected:
		return "rejected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Registry maps user IDs to their live connections. A user may hold
// several connections at once (multiple tabs or devices); each is
// tracked by its own handle.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	byUser  map[uint]map[string]*Client
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		byUser:  make(map[uint]map[string]*Client),
	}
}

var _ notifusecase.Presence = (*Registry)(nil)

// Register adds a client to the registry. Registering the same handle
// twice is idempotent.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.ID()]; ok {
		return
	}
	r.clients[c.ID()] = c
	conns, ok := r.byUser[c.UserID()]
	if !ok {
		conns = make(map[string]*Client)
		r.byUser[c.UserID()] = conns
	}
	conns[c.ID()] = c
}

// Unregister removes a client. Removing an absent handle is a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.ID()]; !ok {
		return
	}
	delete(r.clients, c.ID())
	if conns, ok := r.byUser[c.UserID()]; ok {
		delete(conns, c.ID())
		if len(conns) == 0 {
			delete(r.byUser, c.UserID())
		}
	}
}

// ConnectionsFor returns a snapshot of the user's live connections.
// The returned slice is safe to iterate after the lock is released.
func (r *Registry) ConnectionsFor(userID uint) []notifusecase.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	if len(conns) == 0 {
		return nil
	}
	out := make([]notifusecase.Connection, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	return out
}

// Size reports the total number of registered connections.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
