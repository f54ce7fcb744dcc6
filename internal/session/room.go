package session

import (
	"errors"
	"log/slog"
	"sync"

	"oantuti/internal/game"
	"oantuti/internal/session/message"
)

var (
	// ErrUnknownRoom means the named room has no active session, either
	// because it never existed or because it already resolved.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrNotSeated means the submitting connection holds no seat in the
	// named room.
	ErrNotSeated = errors.New("not a seat holder in this room")

	// ErrInvalidMove means the move is not one of the three kinds.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMoveAlreadySet means the seat already submitted this round.
	// First submission wins; duplicates are rejected, never overwritten.
	ErrMoveAlreadySet = errors.New("move already submitted")
)

// Room is one active match: two seats and their hidden moves. A room
// lives from pairing until both moves are in, then it is resolved and
// destroyed in one step.
type Room struct {
	ID    string
	seats [2]string // connection ids, index 0 is seat 1
	moves [2]*game.Move
}

// SeatOf returns the 1-based seat number of connID, or 0.
func (r *Room) SeatOf(connID string) int {
	for i, id := range r.seats {
		if id == connID {
			return i + 1
		}
	}
	return 0
}

// ResultDelivery is one seat's share of a resolved match, ready to be
// turned into a game_result message. Each seat sees its own relative
// outcome so clients never need to know which seat they held.
type ResultDelivery struct {
	ConnID       string
	Client       message.Sender
	Result       game.Outcome
	YourMove     game.Move
	OpponentMove game.Move
	YourName     string
	OpponentName string
}

// RoomTable owns every active room. The table mutex is held across the
// whole record-resolve-destroy sequence of SubmitMove, which is what
// makes resolution a proper barrier: a match can never resolve twice or
// be observed half-updated.
type RoomTable struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	registry *Registry
	logger   *slog.Logger
}

func NewRoomTable(registry *Registry, logger *slog.Logger) *RoomTable {
	return &RoomTable{
		rooms:    make(map[string]*Room),
		registry: registry,
		logger:   logger,
	}
}

// Create opens a room with p1 in seat 1 and p2 in seat 2 and records the
// assignment in the registry.
func (t *RoomTable) Create(roomID, p1, p2 string) *Room {
	t.mu.Lock()
	room := &Room{ID: roomID, seats: [2]string{p1, p2}}
	t.rooms[roomID] = room
	t.mu.Unlock()

	t.registry.AssignSeat(p1, roomID, Seat1)
	t.registry.AssignSeat(p2, roomID, Seat2)

	t.logger.Info("room created", "room_id", roomID, "seat1", p1, "seat2", p2)
	return room
}

// Exists reports whether roomID has an active session.
func (t *RoomTable) Exists(roomID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.rooms[roomID]
	return ok
}

// SubmitMove records connID's move in roomID. The first successful
// submission stores and returns nil deliveries; the second triggers
// resolution and returns one delivery per seat, after which the room no
// longer exists. Failures leave the room untouched.
func (t *RoomTable) SubmitMove(roomID, connID string, mv game.Move) ([]ResultDelivery, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	room, ok := t.rooms[roomID]
	if !ok {
		return nil, ErrUnknownRoom
	}

	seat := room.SeatOf(connID)
	if seat == 0 {
		return nil, ErrNotSeated
	}

	if !game.IsValidMove(mv) {
		return nil, ErrInvalidMove
	}

	idx := seat - 1
	if room.moves[idx] != nil {
		return nil, ErrMoveAlreadySet
	}
	room.moves[idx] = &mv

	if room.moves[0] == nil || room.moves[1] == nil {
		// First move in: store and wait for the other seat. The room
		// stays in this half-filled state until the second move or a
		// disconnect tears it down.
		return nil, nil
	}

	deliveries := t.resolveLocked(room)
	return deliveries, nil
}

// resolveLocked computes both outcomes, clears both seats (keeping the
// room id for rematch eligibility) and destroys the room. Caller holds
// the table mutex.
func (t *RoomTable) resolveLocked(room *Room) []ResultDelivery {
	move1, move2 := *room.moves[0], *room.moves[1]
	out1, out2 := game.Resolve(move1, move2)

	s1 := t.registry.Get(room.seats[0])
	s2 := t.registry.Get(room.seats[1])
	name1 := displayName(s1, Seat1)
	name2 := displayName(s2, Seat2)

	var deliveries []ResultDelivery
	if s1 != nil {
		deliveries = append(deliveries, ResultDelivery{
			ConnID:       room.seats[0],
			Client:       s1.Client,
			Result:       out1,
			YourMove:     move1,
			OpponentMove: move2,
			YourName:     name1,
			OpponentName: name2,
		})
	}
	if s2 != nil {
		deliveries = append(deliveries, ResultDelivery{
			ConnID:       room.seats[1],
			Client:       s2.Client,
			Result:       out2,
			YourMove:     move2,
			OpponentMove: move1,
			YourName:     name2,
			OpponentName: name1,
		})
	}

	delete(t.rooms, room.ID)
	t.registry.ClearSeat(room.seats[0], room.ID)
	t.registry.ClearSeat(room.seats[1], room.ID)

	t.logger.Info("room resolved",
		"room_id", room.ID,
		"move1", move1, "move2", move2,
		"result1", out1, "result2", out2)

	return deliveries
}

// TearDown destroys roomID because connID disconnected. It returns the
// surviving opponent, whose seat is cleared without rematch eligibility.
// Tearing down a room that already resolved is a safe no-op.
func (t *RoomTable) TearDown(roomID, connID string) (*PlayerSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	room, ok := t.rooms[roomID]
	if !ok || room.SeatOf(connID) == 0 {
		return nil, false
	}

	delete(t.rooms, room.ID)

	var opponent *PlayerSession
	for _, id := range room.seats {
		if id == connID {
			continue
		}
		opponent = t.registry.Get(id)
		t.registry.ClearSeat(id, "")
	}

	t.logger.Info("room torn down", "room_id", roomID, "disconnected", connID)
	return opponent, true
}

// displayName falls back to a seat-derived label for sessions that never
// set a profile, or that disconnected mid-resolution.
func displayName(s *PlayerSession, seat int) string {
	if s != nil && s.Name != "" {
		return s.Name
	}
	if seat == Seat1 {
		return "Player 1"
	}
	return "Player 2"
}
