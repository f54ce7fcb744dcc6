package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Matchmaker owns the FIFO waiting queue. Pairing is strictly first come
// first served: the head of the queue meets the next caller, no skill or
// preference filtering.
type Matchmaker struct {
	mu       sync.Mutex
	queue    []string
	registry *Registry
	rooms    *RoomTable
	logger   *slog.Logger
}

func NewMatchmaker(registry *Registry, rooms *RoomTable, logger *slog.Logger) *Matchmaker {
	return &Matchmaker{
		registry: registry,
		rooms:    rooms,
		logger:   logger,
	}
}

// PairResult describes a fresh pairing. Opponent held seat 1 (it was
// waiting first); Self, the triggering caller, holds seat 2.
type PairResult struct {
	RoomID   string
	Opponent *PlayerSession
	Self     *PlayerSession
}

// FindMatch pairs connID with the queue head, or enqueues it. The first
// return is non-nil on a pairing. queued reports whether connID is (still
// or newly) waiting; a second call without an intervening disconnect
// never duplicates the queue entry, and a currently seated connection is
// ignored entirely.
func (m *Matchmaker) FindMatch(connID string) (pair *PairResult, queued bool) {
	self := m.registry.Get(connID)
	if self == nil || self.Seated() {
		return nil, false
	}

	m.mu.Lock()
	for _, id := range m.queue {
		if id == connID {
			m.mu.Unlock()
			return nil, true
		}
	}

	// Pop until a live waiter is found. Disconnects dequeue eagerly, so
	// the loop almost always runs zero or one time.
	var opponent *PlayerSession
	for opponent == nil && len(m.queue) > 0 {
		head := m.queue[0]
		m.queue = m.queue[1:]
		opponent = m.registry.Get(head)
	}

	if opponent == nil {
		m.queue = append(m.queue, connID)
		size := len(m.queue)
		m.mu.Unlock()
		m.logger.Info("player enqueued", "conn_id", connID, "queue_size", size)
		return nil, true
	}
	m.mu.Unlock()

	roomID := uuid.NewString()
	m.rooms.Create(roomID, opponent.ID, connID)
	m.logger.Info("match found", "room_id", roomID, "seat1", opponent.ID, "seat2", connID)

	return &PairResult{RoomID: roomID, Opponent: opponent, Self: self}, false
}

// RemoveFromQueue drops connID from the waiting queue if present.
func (m *Matchmaker) RemoveFromQueue(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, id := range m.queue {
		if id == connID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.logger.Info("player dequeued", "conn_id", connID, "queue_size", len(m.queue))
			return
		}
	}
}

// Waiting reports whether connID is currently queued.
func (m *Matchmaker) Waiting(connID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.queue {
		if id == connID {
			return true
		}
	}
	return false
}

// QueueLen reports the current queue size.
func (m *Matchmaker) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
