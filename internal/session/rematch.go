package session

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrNoOpponent means no former partner of the named room is still
// connected; the rematch is declined, not failed.
var ErrNoOpponent = errors.New("no opponent found for rematch")

// rematchRequest is the pending mutual-consent record for one finished
// room. seats[0] is whoever asked first.
type rematchRequest struct {
	seats [2]string
	ready [2]bool
}

// RematchCoordinator tracks rematch handshakes keyed by the finished
// room's id. A request is created lazily on the first ask, promoted to a
// live room on mutual consent, and destroyed on decline. Promoted and
// destroyed are terminal: a later rematch starts from scratch.
type RematchCoordinator struct {
	mu       sync.Mutex
	pending  map[string]*rematchRequest
	registry *Registry
	rooms    *RoomTable
	logger   *slog.Logger
}

func NewRematchCoordinator(registry *Registry, rooms *RoomTable, logger *slog.Logger) *RematchCoordinator {
	return &RematchCoordinator{
		pending:  make(map[string]*rematchRequest),
		registry: registry,
		rooms:    rooms,
		logger:   logger,
	}
}

// RematchDecision is the outcome of a consent. When Accepted, the room
// has already been recreated with Seat1/Seat2 re-seated.
type RematchDecision struct {
	RoomID string
	Seat1  *PlayerSession
	Seat2  *PlayerSession
}

// Request records connID's consent to replay roomID. It returns
// ErrNoOpponent when no former partner is connected, (nil, nil) while
// the other side's consent is still outstanding, and a decision once
// both sides agreed. Consenting twice is idempotent.
func (c *RematchCoordinator) Request(connID, roomID string) (*RematchDecision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, ok := c.pending[roomID]
	if !ok {
		partner := c.registry.LookupByLastRoom(roomID, connID)
		if partner == nil {
			return nil, ErrNoOpponent
		}
		req = &rematchRequest{seats: [2]string{connID, partner.ID}}
		c.pending[roomID] = req
		c.logger.Info("rematch requested", "room_id", roomID, "by", connID, "partner", partner.ID)
	}

	switch connID {
	case req.seats[0]:
		req.ready[0] = true
	case req.seats[1]:
		req.ready[1] = true
	default:
		// Not a participant of this handshake.
		return nil, ErrNoOpponent
	}

	if !req.ready[0] || !req.ready[1] {
		return nil, nil
	}

	// Mutual consent. The request is terminal either way: if a side
	// vanished between consents the survivor has to start over.
	delete(c.pending, roomID)

	s1 := c.registry.Get(req.seats[0])
	s2 := c.registry.Get(req.seats[1])
	if s1 == nil || s2 == nil {
		return nil, ErrNoOpponent
	}

	c.rooms.Create(roomID, s1.ID, s2.ID)
	c.logger.Info("rematch accepted", "room_id", roomID)

	return &RematchDecision{RoomID: roomID, Seat1: s1, Seat2: s2}, nil
}

// Decline destroys the pending request for roomID unconditionally,
// whichever party asks. It returns the other participant so the caller
// can notify them, or nil when the decliner was not part of the
// handshake.
func (c *RematchCoordinator) Decline(connID, roomID string) (*PlayerSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, ok := c.pending[roomID]
	if !ok {
		return nil, false
	}
	delete(c.pending, roomID)
	c.logger.Info("rematch declined", "room_id", roomID, "by", connID)

	var otherID string
	switch connID {
	case req.seats[0]:
		otherID = req.seats[1]
	case req.seats[1]:
		otherID = req.seats[0]
	default:
		return nil, true
	}
	return c.registry.Get(otherID), true
}

// DropParticipant destroys every pending request involving connID. Used
// during disconnect teardown so dead handshakes cannot linger.
func (c *RematchCoordinator) DropParticipant(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for roomID, req := range c.pending {
		if req.seats[0] == connID || req.seats[1] == connID {
			delete(c.pending, roomID)
		}
	}
}

// Pending reports whether roomID has an open handshake.
func (c *RematchCoordinator) Pending(roomID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[roomID]
	return ok
}
