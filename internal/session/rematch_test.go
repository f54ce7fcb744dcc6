package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFinishedMatch returns a fixture where x and y just resolved a match
// in room "room-1" and are rematch-eligible.
func newFinishedMatch(t *testing.T) (*Registry, *RoomTable, *RematchCoordinator) {
	t.Helper()
	logger := testLogger()
	registry := NewRegistry(logger)
	rooms := NewRoomTable(registry, logger)
	coord := NewRematchCoordinator(registry, rooms, logger)

	registry.Register("x", newFakeSender())
	registry.Register("y", newFakeSender())
	registry.ClearSeat("x", "room-1")
	registry.ClearSeat("y", "room-1")
	return registry, rooms, coord
}

func TestRematchMutualConsentPromotes(t *testing.T) {
	registry, rooms, coord := newFinishedMatch(t)

	decision, err := coord.Request("x", "room-1")
	require.NoError(t, err)
	assert.Nil(t, decision)
	assert.True(t, coord.Pending("room-1"))

	decision, err = coord.Request("y", "room-1")
	require.NoError(t, err)
	require.NotNil(t, decision)

	// The first requester takes seat 1 in the reactivated room, which
	// reuses the finished room's id.
	assert.Equal(t, "room-1", decision.RoomID)
	assert.Equal(t, "x", decision.Seat1.ID)
	assert.Equal(t, "y", decision.Seat2.ID)
	assert.True(t, rooms.Exists("room-1"))
	assert.Equal(t, Seat1, registry.Get("x").Seat)
	assert.Equal(t, Seat2, registry.Get("y").Seat)

	// The handshake is terminal once promoted.
	assert.False(t, coord.Pending("room-1"))
}

func TestRematchConsentIsIdempotent(t *testing.T) {
	_, rooms, coord := newFinishedMatch(t)

	for i := 0; i < 3; i++ {
		decision, err := coord.Request("x", "room-1")
		require.NoError(t, err)
		assert.Nil(t, decision)
	}
	assert.False(t, rooms.Exists("room-1"))
}

func TestRematchNoOpponent(t *testing.T) {
	logger := testLogger()
	registry := NewRegistry(logger)
	rooms := NewRoomTable(registry, logger)
	coord := NewRematchCoordinator(registry, rooms, logger)

	registry.Register("x", newFakeSender())
	registry.ClearSeat("x", "room-1")

	_, err := coord.Request("x", "room-1")
	assert.ErrorIs(t, err, ErrNoOpponent)
	assert.False(t, coord.Pending("room-1"))
}

func TestRematchDecline(t *testing.T) {
	_, rooms, coord := newFinishedMatch(t)

	_, err := coord.Request("x", "room-1")
	require.NoError(t, err)

	other, ok := coord.Decline("y", "room-1")
	require.True(t, ok)
	require.NotNil(t, other)
	assert.Equal(t, "x", other.ID)

	// Destroyed unconditionally; no session was created.
	assert.False(t, coord.Pending("room-1"))
	assert.False(t, rooms.Exists("room-1"))

	// Consent after decline starts a brand new handshake.
	decision, err := coord.Request("y", "room-1")
	require.NoError(t, err)
	assert.Nil(t, decision)
	assert.True(t, coord.Pending("room-1"))

	_, ok = coord.Decline("y", "room-404")
	assert.False(t, ok)
}

func TestRematchDropParticipant(t *testing.T) {
	_, _, coord := newFinishedMatch(t)

	_, err := coord.Request("x", "room-1")
	require.NoError(t, err)

	coord.DropParticipant("y")
	assert.False(t, coord.Pending("room-1"))
}

func TestRematchPartnerVanishesBetweenConsents(t *testing.T) {
	registry, rooms, coord := newFinishedMatch(t)

	_, err := coord.Request("x", "room-1")
	require.NoError(t, err)

	// y goes away without the coordinator hearing about it.
	registry.Remove("y")

	_, err = coord.Request("x", "room-1")
	assert.Nil(t, err)

	// x keeps waiting on a handshake y can never complete; only the
	// disconnect teardown path clears it.
	assert.True(t, coord.Pending("room-1"))
	assert.False(t, rooms.Exists("room-1"))
}
