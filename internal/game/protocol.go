package game

import "strings"

// Textual protocol shared by every transport. A move travels as
// "MOVE:<kind>", a result as "RESULT:<outcome>", and errors as messages
// prefixed with "ERROR". The encoding round-trips identically whether it
// crosses a length-prefixed socket or rides inside a JSON event payload.
const (
	MovePrefix   = "MOVE:"
	ResultPrefix = "RESULT:"
	ErrorPrefix  = "ERROR"

	// Status words for the framed-socket flavor of the protocol.
	StatusWaiting       = "WAITING"
	StatusStart         = "START"
	StatusOpponentFound = "OPPONENT_FOUND"

	// Canonical error messages.
	ErrMsgTimeout     = "ERROR:TIMEOUT"
	ErrMsgInvalidMove = "ERROR:INVALID"
	ErrMsgDisconnect  = "ERROR:DISCONNECT"
)

// EncodeMoveMessage formats m as a wire message ("MOVE:ROCK"). The empty
// string is returned for invalid moves; callers validate first.
func EncodeMoveMessage(m Move) string {
	if !IsValidMove(m) {
		return ""
	}
	return MovePrefix + string(m)
}

// ParseMoveMessage extracts the move from a "MOVE:<kind>" message.
// It returns false when the prefix is missing or the kind is not one of
// the three valid moves.
func ParseMoveMessage(msg string) (Move, bool) {
	if !strings.HasPrefix(msg, MovePrefix) {
		return "", false
	}
	m := Move(strings.TrimPrefix(msg, MovePrefix))
	if !IsValidMove(m) {
		return "", false
	}
	return m, true
}

// NormalizeMove accepts either a bare kind ("ROCK") or the prefixed wire
// form ("MOVE:ROCK") and returns the validated move.
func NormalizeMove(raw string) (Move, bool) {
	if m, ok := ParseMoveMessage(raw); ok {
		return m, true
	}
	m := Move(raw)
	if IsValidMove(m) {
		return m, true
	}
	return "", false
}

// FormatResultMessage formats an outcome as a wire message ("RESULT:WIN").
func FormatResultMessage(o Outcome) string {
	return ResultPrefix + string(o)
}

// IsResultMessage reports whether msg is a well-formed result message.
func IsResultMessage(msg string) bool {
	switch msg {
	case ResultPrefix + string(OutcomeWin),
		ResultPrefix + string(OutcomeLose),
		ResultPrefix + string(OutcomeDraw):
		return true
	}
	return false
}

// IsErrorMessage reports whether msg carries a protocol error.
func IsErrorMessage(msg string) bool {
	return strings.HasPrefix(msg, ErrorPrefix)
}
