package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"oantuti/internal/game"
	"oantuti/internal/network"
	"oantuti/internal/services/events"
	"oantuti/internal/session/message"
)

// Profile defaults, matching what anonymous browser clients expect.
const (
	defaultName        = "Player"
	defaultAvatar      = "😀"
	defaultSeat2Avatar = "😎"
)

// eventFunc is the signature of every event handler: the caller's
// session plus the raw payload of the message.
type eventFunc func(h *GameHandler, s *PlayerSession, payload json.RawMessage)

// GameHandler implements network.EventHandler and owns the whole session
// layer: registry, waiting queue, active rooms and rematch handshakes.
// The network Hub calls it from a single goroutine; each component is
// additionally synchronized so tests and other transports can drive the
// handler directly.
type GameHandler struct {
	registry   *Registry
	matchmaker *Matchmaker
	rooms      *RoomTable
	rematch    *RematchCoordinator

	// clients maps a transport connection to its assigned id.
	clientsMu sync.Mutex
	clients   map[message.Sender]string

	events *events.Publisher
	logger *slog.Logger
	router map[string]eventFunc
}

// NewGameHandler wires the session components together. publisher may be
// nil when no event bus is configured.
func NewGameHandler(logger *slog.Logger, publisher *events.Publisher) *GameHandler {
	registry := NewRegistry(logger)
	rooms := NewRoomTable(registry, logger)

	h := &GameHandler{
		registry:   registry,
		rooms:      rooms,
		matchmaker: NewMatchmaker(registry, rooms, logger),
		rematch:    NewRematchCoordinator(registry, rooms, logger),
		clients:    make(map[message.Sender]string),
		events:     publisher,
		logger:     logger,
	}

	h.router = map[string]eventFunc{
		"set_player_info": (*GameHandler).handleSetPlayerInfo,
		"find_match":      (*GameHandler).handleFindMatch,
		"send_move":       (*GameHandler).handleSendMove,
		"request_rematch": (*GameHandler).handleRequestRematch,
		"find_new_match":  (*GameHandler).handleFindNewMatch,
	}
	return h
}

// Registry exposes the session registry, mainly for health reporting.
func (h *GameHandler) Registry() *Registry { return h.registry }

// --- network.EventHandler ---

func (h *GameHandler) OnConnect(c *network.Client) {
	h.Connect(c)
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.clientsMu.Lock()
	connID, ok := h.clients[c]
	h.clientsMu.Unlock()
	if !ok {
		return
	}
	h.HandleEvent(connID, msg)
}

func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.clientsMu.Lock()
	connID, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.clientsMu.Unlock()
	if !ok {
		return
	}
	h.Disconnect(connID)
}

// --- transport-independent event surface ---

// Connect registers a new connection, assigns it an id and acknowledges
// it to the client. Exposed separately from OnConnect so tests can
// connect fake senders.
func (h *GameHandler) Connect(sender message.Sender) string {
	connID := uuid.NewString()
	h.clientsMu.Lock()
	h.clients[sender] = connID
	h.clientsMu.Unlock()
	h.registry.Register(connID, sender)

	sender.Send() <- message.Connected(connID)
	return connID
}

// HandleEvent routes one inbound message for connID. Unknown ids and
// unknown event types are reported to the caller only; no failure here
// is ever fatal.
func (h *GameHandler) HandleEvent(connID string, msg network.Message) {
	s := h.registry.Get(connID)
	if s == nil {
		return
	}

	handler, found := h.router[msg.Type]
	if !found {
		s.Client.Send() <- message.Error("Unknown event: " + msg.Type)
		return
	}
	handler(h, s, msg.Payload)
}

// Disconnect tears down everything tied to connID: queue position, any
// live room (notifying the opponent exactly once), pending rematch
// handshakes and finally the registry entry. Safe to call for a
// connection that was never paired.
func (h *GameHandler) Disconnect(connID string) {
	s := h.registry.Get(connID)
	if s == nil {
		return
	}

	h.matchmaker.RemoveFromQueue(connID)

	if s.Seated() {
		if opponent, ok := h.rooms.TearDown(s.RoomID, connID); ok {
			if opponent != nil {
				opponent.Client.Send() <- message.OpponentDisconnected()
			}
			h.events.MatchAborted(s.RoomID, "player disconnected")
		}
	}

	h.rematch.DropParticipant(connID)
	h.registry.Remove(connID)
}

// --- event handlers ---

func (h *GameHandler) handleSetPlayerInfo(s *PlayerSession, payload json.RawMessage) {
	var info message.PlayerInfoPayload
	if payload != nil {
		if err := json.Unmarshal(payload, &info); err != nil {
			s.Client.Send() <- message.Error("Malformed player info")
			return
		}
	}
	if info.Name == "" {
		info.Name = defaultName
	}
	if info.Avatar == "" {
		info.Avatar = defaultAvatar
	}

	h.registry.SetProfile(s.ID, info.Name, info.Avatar)
	h.logger.Info("player info set", "conn_id", s.ID, "name", info.Name, "avatar", info.Avatar)
}

func (h *GameHandler) handleFindMatch(s *PlayerSession, _ json.RawMessage) {
	pair, queued := h.matchmaker.FindMatch(s.ID)
	if pair == nil {
		if queued {
			s.Client.Send() <- message.Waiting()
		}
		return
	}

	// Each side is told about the other, with seat-derived fallbacks for
	// players that never set a profile.
	pair.Opponent.Client.Send() <- message.MatchFound(
		pair.RoomID,
		displayName(pair.Self, Seat2),
		fallbackAvatar(pair.Self, Seat2),
	)
	pair.Self.Client.Send() <- message.MatchFound(
		pair.RoomID,
		displayName(pair.Opponent, Seat1),
		fallbackAvatar(pair.Opponent, Seat1),
	)

	h.events.MatchStarted(pair.RoomID, pair.Opponent.ID, pair.Self.ID)
}

func (h *GameHandler) handleSendMove(s *PlayerSession, payload json.RawMessage) {
	var mp message.MovePayload
	if payload != nil {
		if err := json.Unmarshal(payload, &mp); err != nil {
			s.Client.Send() <- message.Error("Malformed move")
			return
		}
	}

	// Accept both "ROCK" and the framed-protocol form "MOVE:ROCK".
	// Invalid strings pass through so SubmitMove reports failures in its
	// contract order (room, seat, then move).
	mv, ok := game.NormalizeMove(mp.Move)
	if !ok {
		mv = game.Move(mp.Move)
	}

	roomID := s.RoomID
	if roomID == "" {
		s.Client.Send() <- message.Error("Not in a game")
		return
	}

	deliveries, err := h.rooms.SubmitMove(roomID, s.ID, mv)
	if err != nil {
		s.Client.Send() <- message.Error(submitErrorText(err))
		return
	}
	if deliveries == nil {
		// First move stored; the opponent's submission will resolve.
		return
	}

	for _, d := range deliveries {
		d.Client.Send() <- message.GameResult(message.GameResultPayload{
			Result:       d.Result,
			YourMove:     d.YourMove,
			OpponentMove: d.OpponentMove,
			YourName:     d.YourName,
			OpponentName: d.OpponentName,
		})
	}

	seats := make([]events.SeatResult, 0, len(deliveries))
	for _, d := range deliveries {
		seats = append(seats, events.SeatResult{
			ConnID: d.ConnID,
			Move:   string(d.YourMove),
			Result: string(d.Result),
		})
	}
	h.events.MatchResolved(roomID, seats)
}

func (h *GameHandler) handleRequestRematch(s *PlayerSession, payload json.RawMessage) {
	var rp message.RoomPayload
	if payload != nil {
		if err := json.Unmarshal(payload, &rp); err != nil {
			s.Client.Send() <- message.Error("Malformed rematch request")
			return
		}
	}
	if rp.RoomID == "" {
		return
	}

	decision, err := h.rematch.Request(s.ID, rp.RoomID)
	if err != nil {
		if errors.Is(err, ErrNoOpponent) {
			s.Client.Send() <- message.RematchDeclined("No opponent found for a rematch")
		}
		return
	}
	if decision == nil {
		// Consent recorded; waiting on the other side.
		return
	}

	decision.Seat1.Client.Send() <- message.RematchAccepted(decision.RoomID)
	decision.Seat2.Client.Send() <- message.RematchAccepted(decision.RoomID)

	h.events.RematchAccepted(decision.RoomID, decision.Seat1.ID, decision.Seat2.ID)
}

func (h *GameHandler) handleFindNewMatch(s *PlayerSession, payload json.RawMessage) {
	var rp message.RoomPayload
	if payload != nil {
		if err := json.Unmarshal(payload, &rp); err != nil {
			return
		}
	}
	if rp.RoomID == "" {
		return
	}

	other, ok := h.rematch.Decline(s.ID, rp.RoomID)
	if ok && other != nil {
		other.Client.Send() <- message.RematchDeclined("Opponent is looking for a new match")
	}
}

// submitErrorText maps SubmitMove failures to client-facing messages.
func submitErrorText(err error) string {
	switch {
	case errors.Is(err, ErrUnknownRoom):
		return "Game not found"
	case errors.Is(err, ErrNotSeated):
		return "You are not part of this game"
	case errors.Is(err, ErrInvalidMove):
		return "Invalid move"
	case errors.Is(err, ErrMoveAlreadySet):
		return "Move already submitted"
	default:
		return err.Error()
	}
}

func fallbackAvatar(s *PlayerSession, seat int) string {
	if s != nil && s.Avatar != "" {
		return s.Avatar
	}
	if seat == Seat1 {
		return defaultAvatar
	}
	return defaultSeat2Avatar
}
