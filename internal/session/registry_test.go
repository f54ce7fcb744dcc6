package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oantuti/internal/network"
)

// fakeSender collects outbound messages for assertions, standing in for
// a network.Client.
type fakeSender struct {
	ch chan network.Message
}

func newFakeSender() *fakeSender {
	return &fakeSender{ch: make(chan network.Message, 32)}
}

func (f *fakeSender) Send() chan<- network.Message {
	return f.ch
}

// next pops the next outbound message, failing the test when none is
// pending.
func (f *fakeSender) next(t *testing.T) network.Message {
	t.Helper()
	select {
	case msg := <-f.ch:
		return msg
	default:
		t.Fatal("expected an outbound message, got none")
		return network.Message{}
	}
}

func (f *fakeSender) assertSilent(t *testing.T) {
	t.Helper()
	select {
	case msg := <-f.ch:
		t.Fatalf("expected no outbound message, got %q", msg.Type)
	default:
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry(testLogger())
	sender := newFakeSender()

	s1 := r.Register("conn-1", sender)
	s1.Name = "Alice"

	s2 := r.Register("conn-1", newFakeSender())
	assert.Same(t, s1, s2)
	assert.Equal(t, "Alice", s2.Name)
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySetProfileUnknownIsNoOp(t *testing.T) {
	r := NewRegistry(testLogger())
	// Must not panic or create an entry.
	r.SetProfile("ghost", "Alice", "😀")
	assert.Nil(t, r.Get("ghost"))
}

func TestRegistrySeatLifecycle(t *testing.T) {
	r := NewRegistry(testLogger())
	r.Register("conn-1", newFakeSender())

	require.True(t, r.AssignSeat("conn-1", "room-1", Seat1))
	s := r.Get("conn-1")
	assert.Equal(t, "room-1", s.RoomID)
	assert.Equal(t, Seat1, s.Seat)
	assert.True(t, s.Seated())

	r.ClearSeat("conn-1", "room-1")
	assert.Empty(t, s.RoomID)
	assert.Zero(t, s.Seat)
	assert.Equal(t, "room-1", s.LastRoomID)
	assert.False(t, s.Seated())

	assert.False(t, r.AssignSeat("ghost", "room-1", Seat2))
	r.ClearSeat("ghost", "room-1") // no-op, must not panic
}

func TestRegistryLookupByLastRoom(t *testing.T) {
	r := NewRegistry(testLogger())
	r.Register("conn-1", newFakeSender())
	r.Register("conn-2", newFakeSender())
	r.Register("conn-3", newFakeSender())

	r.ClearSeat("conn-1", "room-9")
	r.ClearSeat("conn-2", "room-9")

	partner := r.LookupByLastRoom("room-9", "conn-1")
	require.NotNil(t, partner)
	assert.Equal(t, "conn-2", partner.ID)

	assert.Nil(t, r.LookupByLastRoom("room-404", "conn-1"))

	// The excluded connection itself never matches.
	r.Remove("conn-2")
	assert.Nil(t, r.LookupByLastRoom("room-9", "conn-1"))
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry(testLogger())
	r.Register("conn-1", newFakeSender())
	r.Remove("conn-1")
	assert.Nil(t, r.Get("conn-1"))
	assert.Zero(t, r.Len())
	r.Remove("conn-1") // removing twice is fine
}
