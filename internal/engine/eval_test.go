package engine

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merakichess/meraki/internal/board"
)

func mustPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.FromFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	score := Handcrafted{}.Evaluate(board.NewPosition())
	assert.Equal(t, 0, score, "starting position is symmetric")
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a queen; evaluation is from the side to move.
	pos := mustPos(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	white := Handcrafted{}.Evaluate(pos)
	assert.Greater(t, white, 800)

	flipped := mustPos(t, "4k3/8/8/8/3Q4/8/8/4K3 b - - 0 1")
	black := Handcrafted{}.Evaluate(flipped)
	assert.Less(t, black, -800)
}

func TestEvaluateTerminalStates(t *testing.T) {
	mated := mustPos(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	assert.Equal(t, -MateScore, Handcrafted{}.Evaluate(mated))

	stalemate := mustPos(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, 0, Handcrafted{}.Evaluate(stalemate))

	bareKings := mustPos(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, 0, Handcrafted{}.Evaluate(bareKings), "insufficient material is a draw")
}

// mirrorFEN swaps colors, mirrors ranks, and flips the side to move. The
// evaluation must be invariant under this transformation.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)

	ranks := strings.Split(fields[0], "/")
	mirrored := make([]string, 8)
	for i, rank := range ranks {
		mirrored[7-i] = swapCase(rank)
	}
	fields[0] = strings.Join(mirrored, "/")

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[2] = swapCase(fields[2])

	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}

func TestEvaluateSymmetry(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r1bqkb1r/pp3ppp/2n1pn2/2pp4/3P1B2/2P1PN2/PP1N1PPP/R2QKB1R w KQkq - 0 6",
		"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1",
		"8/5pk1/6p1/8/3K4/8/5PP1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos := mustPos(t, fen)
		mirror := mustPos(t, mirrorFEN(fen))

		assert.Equal(t,
			Handcrafted{}.Evaluate(pos),
			Handcrafted{}.Evaluate(mirror),
			"side-to-move-relative score must survive mirroring: %s", fen)
	}
}

func TestNonPawnMaterial(t *testing.T) {
	start := NonPawnMaterial(board.NewPosition())
	assert.Equal(t, 2*(2*KnightValue+2*BishopValue+2*RookValue+QueenValue), start)

	pawnEnding := NonPawnMaterial(mustPos(t, "8/5pk1/6p1/8/3K4/8/5PP1/8 w - - 0 1"))
	assert.Equal(t, 0, pawnEnding)
}
