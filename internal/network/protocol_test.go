package network

import (
	"encoding/binary"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramedMessageRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	sent := Message{
		Type:    "send_move",
		Payload: json.RawMessage(`{"move":"ROCK"}`),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteMessage(client, sent)
	}()

	got, err := ReadMessage(server)
	require.NoError(t, err)
	require.NoError(t, <-errCh)

	assert.Equal(t, sent.Type, got.Type)
	assert.JSONEq(t, string(sent.Payload), string(got.Payload))
}

func TestReadMessageRejectsOversizedFrame(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		lenBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(lenBuf, MaxMessageSize+1)
		client.Write(lenBuf)
	}()

	_, err := ReadMessage(server)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message too large")
}

func TestReadMessageRejectsInvalidJSON(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		body := []byte("not json")
		lenBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(lenBuf, uint32(len(body)))
		client.Write(lenBuf)
		client.Write(body)
	}()

	_, err := ReadMessage(server)
	require.Error(t, err)
}
