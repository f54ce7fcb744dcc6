package session

import (
	"log/slog"
	"sync"

	"oantuti/internal/session/message"
)

// Registry owns every live PlayerSession, keyed by connection id. All
// profile and seat mutations go through it; nothing else writes session
// fields after creation.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*PlayerSession
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*PlayerSession),
		logger:   logger,
	}
}

// Register creates an empty profile entry for connID. Registering an
// already-known id returns the existing session unchanged.
func (r *Registry) Register(connID string, client message.Sender) *PlayerSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[connID]; ok {
		return s
	}
	s := &PlayerSession{ID: connID, Client: client}
	r.sessions[connID] = s
	r.logger.Info("session registered", "conn_id", connID, "total", len(r.sessions))
	return s
}

// SetProfile stores the display name and avatar. Unknown ids are a
// silent no-op: a profile message may race the connect acknowledgment.
func (r *Registry) SetProfile(connID, name, avatar string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return
	}
	s.Name = name
	s.Avatar = avatar
}

// AssignSeat puts connID into a room. The caller must know the id is
// live; assigning an unknown id reports false.
func (r *Registry) AssignSeat(connID, roomID string, seat int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.RoomID = roomID
	s.Seat = seat
	return true
}

// ClearSeat releases connID's room assignment and records lastRoomID for
// rematch lookup. Clearing an already-removed id is a no-op so teardown
// paths can race a disconnect safely.
func (r *Registry) ClearSeat(connID, lastRoomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return
	}
	s.RoomID = ""
	s.Seat = 0
	s.LastRoomID = lastRoomID
}

// LookupByLastRoom scans for a session whose last finished room is
// roomID, skipping excludeID. It returns nil when no former partner is
// still connected. A linear scan is fine at this scale.
func (r *Registry) LookupByLastRoom(roomID, excludeID string) *PlayerSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, s := range r.sessions {
		if id == excludeID {
			continue
		}
		if s.LastRoomID == roomID {
			return s
		}
	}
	return nil
}

// Remove deletes the session entirely (full disconnect).
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connID]; !ok {
		return
	}
	delete(r.sessions, connID)
	r.logger.Info("session removed", "conn_id", connID, "total", len(r.sessions))
}

// Get returns the session for connID, or nil.
func (r *Registry) Get(connID string) *PlayerSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[connID]
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
