package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveMessageRoundTrip(t *testing.T) {
	for _, m := range Moves {
		encoded := EncodeMoveMessage(m)
		require.NotEmpty(t, encoded)

		decoded, ok := ParseMoveMessage(encoded)
		require.True(t, ok)
		assert.Equal(t, m, decoded)
	}
}

func TestParseMoveMessageRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
	}{
		{"no prefix", "ROCK"},
		{"unknown kind", "MOVE:LIZARD"},
		{"lowercase kind", "MOVE:rock"},
		{"result message", "RESULT:WIN"},
		{"empty", ""},
		{"prefix only", "MOVE:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseMoveMessage(tt.msg)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeMove(t *testing.T) {
	m, ok := NormalizeMove("MOVE:PAPER")
	require.True(t, ok)
	assert.Equal(t, MovePaper, m)

	m, ok = NormalizeMove("SCISSORS")
	require.True(t, ok)
	assert.Equal(t, MoveScissors, m)

	_, ok = NormalizeMove("MOVE:SPOCK")
	assert.False(t, ok)

	_, ok = NormalizeMove("")
	assert.False(t, ok)
}

func TestEncodeMoveMessageInvalid(t *testing.T) {
	assert.Empty(t, EncodeMoveMessage("SPOCK"))
}

func TestResultAndErrorClassifiers(t *testing.T) {
	for _, o := range []Outcome{OutcomeWin, OutcomeLose, OutcomeDraw} {
		assert.True(t, IsResultMessage(FormatResultMessage(o)))
	}
	assert.False(t, IsResultMessage("RESULT:MAYBE"))
	assert.False(t, IsResultMessage("WIN"))

	assert.True(t, IsErrorMessage(ErrMsgTimeout))
	assert.True(t, IsErrorMessage(ErrMsgInvalidMove))
	assert.True(t, IsErrorMessage(ErrMsgDisconnect))
	assert.True(t, IsErrorMessage("ERROR"))
	assert.False(t, IsErrorMessage("RESULT:WIN"))
}
