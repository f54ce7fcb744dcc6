package game

// Move is one of the three throwable kinds.
type Move string

const (
	MoveRock     Move = "ROCK"
	MovePaper    Move = "PAPER"
	MoveScissors Move = "SCISSORS"
)

// Outcome is the result of one resolved round, from the point of view
// of a single seat.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
	OutcomeDraw Outcome = "DRAW"
)

// beats maps every move to the move it defeats. The map doubles as the
// set of valid moves.
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// Moves lists the valid moves in a stable order.
var Moves = []Move{MoveRock, MovePaper, MoveScissors}

// IsValidMove reports whether m is one of the three playable kinds.
func IsValidMove(m Move) bool {
	_, ok := beats[m]
	return ok
}

// Resolve maps a pair of moves to a pair of outcomes, first for a, then
// for b. The second outcome is always the complement of the first:
// WIN/LOSE swap, DRAW mirrors. Resolve is total over valid moves and has
// no failure mode.
func Resolve(a, b Move) (Outcome, Outcome) {
	switch {
	case a == b:
		return OutcomeDraw, OutcomeDraw
	case beats[a] == b:
		return OutcomeWin, OutcomeLose
	default:
		return OutcomeLose, OutcomeWin
	}
}

// displayNames holds the terminal-friendly labels used by the CLI client.
var displayNames = map[Move]string{
	MoveRock:     "✊ Rock",
	MovePaper:    "✋ Paper",
	MoveScissors: "✌️ Scissors",
}

// DisplayName returns a human-readable label for m, or the raw kind if m
// is not a valid move.
func DisplayName(m Move) string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}
