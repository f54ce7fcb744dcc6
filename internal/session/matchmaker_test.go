package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchmakerFixture(t *testing.T) (*Registry, *RoomTable, *Matchmaker) {
	t.Helper()
	logger := testLogger()
	registry := NewRegistry(logger)
	rooms := NewRoomTable(registry, logger)
	return registry, rooms, NewMatchmaker(registry, rooms, logger)
}

func TestFindMatchPairsFIFO(t *testing.T) {
	registry, rooms, mm := newMatchmakerFixture(t)
	registry.Register("x", newFakeSender())
	registry.Register("y", newFakeSender())

	pair, queued := mm.FindMatch("x")
	assert.Nil(t, pair)
	assert.True(t, queued)
	assert.True(t, mm.Waiting("x"))

	pair, queued = mm.FindMatch("y")
	require.NotNil(t, pair)
	assert.False(t, queued)

	// The earlier waiter holds seat 1, the triggering caller seat 2.
	assert.Equal(t, "x", pair.Opponent.ID)
	assert.Equal(t, "y", pair.Self.ID)
	assert.Equal(t, Seat1, registry.Get("x").Seat)
	assert.Equal(t, Seat2, registry.Get("y").Seat)
	assert.Equal(t, pair.RoomID, registry.Get("x").RoomID)
	assert.Equal(t, pair.RoomID, registry.Get("y").RoomID)

	assert.True(t, rooms.Exists(pair.RoomID))
	assert.Zero(t, mm.QueueLen())
	assert.False(t, mm.Waiting("x"))
}

func TestFindMatchDoubleCallDoesNotDuplicate(t *testing.T) {
	registry, _, mm := newMatchmakerFixture(t)
	registry.Register("x", newFakeSender())

	_, queued := mm.FindMatch("x")
	assert.True(t, queued)
	_, queued = mm.FindMatch("x")
	assert.True(t, queued)
	assert.Equal(t, 1, mm.QueueLen())
}

func TestFindMatchIgnoresSeatedConnection(t *testing.T) {
	registry, _, mm := newMatchmakerFixture(t)
	registry.Register("x", newFakeSender())
	registry.Register("y", newFakeSender())

	mm.FindMatch("x")
	pair, _ := mm.FindMatch("y")
	require.NotNil(t, pair)

	// A seated connection never re-enters the queue.
	res, queued := mm.FindMatch("x")
	assert.Nil(t, res)
	assert.False(t, queued)
	assert.Zero(t, mm.QueueLen())
}

func TestFindMatchSkipsVanishedWaiter(t *testing.T) {
	registry, _, mm := newMatchmakerFixture(t)
	registry.Register("x", newFakeSender())
	registry.Register("y", newFakeSender())

	mm.FindMatch("x")
	// x disappears without a proper dequeue; the queue entry is stale.
	registry.Remove("x")

	pair, queued := mm.FindMatch("y")
	assert.Nil(t, pair)
	assert.True(t, queued)
	assert.True(t, mm.Waiting("y"))
}

func TestRemoveFromQueue(t *testing.T) {
	registry, _, mm := newMatchmakerFixture(t)
	registry.Register("x", newFakeSender())
	registry.Register("y", newFakeSender())

	mm.FindMatch("x")
	mm.RemoveFromQueue("x")
	assert.Zero(t, mm.QueueLen())

	// y queues alone afterwards instead of pairing with the removed x.
	pair, queued := mm.FindMatch("y")
	assert.Nil(t, pair)
	assert.True(t, queued)

	mm.RemoveFromQueue("ghost") // unknown id is a no-op
	assert.Equal(t, 1, mm.QueueLen())
}
