package session

import "oantuti/internal/session/message"

// Seat numbers inside a room.
const (
	Seat1 = 1
	Seat2 = 2
)

// PlayerSession is the transient identity of one live connection: its
// profile plus its current match assignment. A session exists from
// connect to disconnect; nothing survives the process.
//
// RoomID and Seat are either both zero or both set. LastRoomID survives a
// resolved match so the rematch coordinator can find former partners.
type PlayerSession struct {
	ID     string
	Client message.Sender

	Name   string
	Avatar string

	RoomID     string
	Seat       int
	LastRoomID string
}

// Seated reports whether the session currently occupies a room seat.
func (s *PlayerSession) Seated() bool {
	return s.RoomID != ""
}
