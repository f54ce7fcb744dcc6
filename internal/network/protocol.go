package network

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
)

// Message is the envelope for all client/server communication. Type routes
// the message to a handler; Payload stays raw JSON so each handler decodes
// its own shape.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MaxMessageSize bounds a single framed message on the wire.
const MaxMessageSize = 1024 * 1024

// WriteMessage writes msg to conn using a 4-byte little-endian length
// prefix followed by the JSON body. This framing lets the same envelope
// run over a raw TCP socket as well as a websocket.
func WriteMessage(conn net.Conn, msg Message) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(msgBytes)))

	if _, err := conn.Write(lenBuf); err != nil {
		return err
	}
	if _, err := conn.Write(msgBytes); err != nil {
		return err
	}
	return nil
}

// ReadMessage reads one length-prefixed message from conn. io.EOF means
// the peer disconnected cleanly.
func ReadMessage(conn net.Conn) (*Message, error) {
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(conn, lenBuf); err != nil {
		return nil, err
	}

	msgLen := binary.LittleEndian.Uint32(lenBuf)
	// A peer announcing a body larger than the limit is misbehaving;
	// reject before allocating.
	if msgLen > MaxMessageSize {
		return nil, fmt.Errorf("message too large: size %d exceeds max size %d", msgLen, MaxMessageSize)
	}

	msgBytes := make([]byte, msgLen)
	if _, err := io.ReadFull(conn, msgBytes); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(msgBytes, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
