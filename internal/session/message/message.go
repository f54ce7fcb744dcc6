// Package message builds the server→client messages of the matchmaking
// protocol and declares the client→server payload shapes. Keeping every
// payload as a named struct gives the protocol a closed set of variants
// instead of free-form maps.
package message

import (
	"encoding/json"

	"oantuti/internal/game"
	"oantuti/internal/network"
)

// Sender is anything that can receive an outbound message. It decouples
// this package (and the session logic) from the concrete network.Client,
// which is what lets tests drive the whole session layer without a
// live socket.
type Sender interface {
	Send() chan<- network.Message
}

// --- client → server payloads ---

// PlayerInfoPayload carries the profile from set_player_info.
type PlayerInfoPayload struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MovePayload carries the move from send_move. Move may be the bare kind
// ("ROCK") or the prefixed wire form ("MOVE:ROCK").
type MovePayload struct {
	Move string `json:"move"`
}

// RoomPayload names a finished room for request_rematch / find_new_match.
type RoomPayload struct {
	RoomID string `json:"room_id"`
}

// --- server → client payloads ---

type connectedPayload struct {
	SID string `json:"sid"`
}

type matchFoundPayload struct {
	RoomID         string `json:"room_id"`
	OpponentName   string `json:"opponent_name"`
	OpponentAvatar string `json:"opponent_avatar"`
}

// GameResultPayload is exported so tests and clients can decode results.
type GameResultPayload struct {
	Result       game.Outcome `json:"result"`
	YourMove     game.Move    `json:"your_move"`
	OpponentMove game.Move    `json:"opponent_move"`
	YourName     string       `json:"your_name"`
	OpponentName string       `json:"opponent_name"`
}

type roomIDPayload struct {
	RoomID string `json:"room_id"`
}

type textPayload struct {
	Message string `json:"message"`
}

func build(msgType string, payload any) network.Message {
	if payload == nil {
		return network.Message{Type: msgType}
	}
	// Marshal of our own payload structs cannot fail.
	payloadBytes, _ := json.Marshal(payload)
	return network.Message{Type: msgType, Payload: payloadBytes}
}

// Connected acknowledges a new connection with its assigned id.
func Connected(sid string) network.Message {
	return build("connected", connectedPayload{SID: sid})
}

// Waiting tells a caller it entered the matchmaking queue.
func Waiting() network.Message {
	return build("waiting", nil)
}

// MatchFound tells one side of a fresh pair about its opponent.
func MatchFound(roomID, opponentName, opponentAvatar string) network.Message {
	return build("match_found", matchFoundPayload{
		RoomID:         roomID,
		OpponentName:   opponentName,
		OpponentAvatar: opponentAvatar,
	})
}

// GameResult carries one seat's view of a resolved match.
func GameResult(p GameResultPayload) network.Message {
	return build("game_result", p)
}

// RematchAccepted tells both former players their room is live again.
func RematchAccepted(roomID string) network.Message {
	return build("rematch_accepted", roomIDPayload{RoomID: roomID})
}

// RematchDeclined reports that no rematch will happen.
func RematchDeclined(msg string) network.Message {
	return build("rematch_declined", textPayload{Message: msg})
}

// OpponentDisconnected notifies the surviving side of a dead match.
func OpponentDisconnected() network.Message {
	return build("opponent_disconnected", nil)
}

// Error reports a non-fatal protocol error to the offending caller only.
func Error(msg string) network.Message {
	return build("error", textPayload{Message: msg})
}
