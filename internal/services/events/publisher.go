// Package events publishes match lifecycle events to NATS so external
// observers (dashboards, loggers, other services) can follow matches
// without touching the game server. The publisher is fire-and-forget:
// a failed publish is logged and the match goes on.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects for the match event stream.
const (
	SubjectMatchStarted    = "oantuti.match.started"
	SubjectMatchResolved   = "oantuti.match.resolved"
	SubjectMatchAborted    = "oantuti.match.aborted"
	SubjectRematchAccepted = "oantuti.match.rematch"
)

// SeatResult is one seat's share of a resolved match event.
type SeatResult struct {
	ConnID string `json:"conn_id"`
	Move   string `json:"move"`
	Result string `json:"result"`
}

type matchStartedEvent struct {
	RoomID string    `json:"room_id"`
	Seat1  string    `json:"seat1"`
	Seat2  string    `json:"seat2"`
	At     time.Time `json:"at"`
}

type matchResolvedEvent struct {
	RoomID string       `json:"room_id"`
	Seats  []SeatResult `json:"seats"`
	At     time.Time    `json:"at"`
}

type matchAbortedEvent struct {
	RoomID string    `json:"room_id"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// Publisher wraps a NATS connection. A nil *Publisher is valid and
// publishes nothing, so callers never need to branch on configuration.
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// Connect dials the NATS server at url.
func Connect(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("oantuti-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to NATS", "url", url)
	return &Publisher{conn: conn, logger: logger}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Drain()
}

func (p *Publisher) publish(subject string, event any) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("event marshal failed", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

// MatchStarted announces a fresh pairing.
func (p *Publisher) MatchStarted(roomID, seat1, seat2 string) {
	p.publish(SubjectMatchStarted, matchStartedEvent{
		RoomID: roomID, Seat1: seat1, Seat2: seat2, At: time.Now().UTC(),
	})
}

// MatchResolved announces the outcome of a finished match.
func (p *Publisher) MatchResolved(roomID string, seats []SeatResult) {
	p.publish(SubjectMatchResolved, matchResolvedEvent{
		RoomID: roomID, Seats: seats, At: time.Now().UTC(),
	})
}

// MatchAborted announces a match torn down before resolution.
func (p *Publisher) MatchAborted(roomID, reason string) {
	p.publish(SubjectMatchAborted, matchAbortedEvent{
		RoomID: roomID, Reason: reason, At: time.Now().UTC(),
	})
}

// RematchAccepted announces a room reactivated by mutual consent.
func (p *Publisher) RematchAccepted(roomID, seat1, seat2 string) {
	p.publish(SubjectRematchAccepted, matchStartedEvent{
		RoomID: roomID, Seat1: seat1, Seat2: seat2, At: time.Now().UTC(),
	})
}
