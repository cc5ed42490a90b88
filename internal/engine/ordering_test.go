package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merakichess/meraki/internal/board"
)

func TestOrderPutsTTMoveFirst(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()

	ttMove := pos.FindMove("g1f3")
	require.NotEqual(t, board.NoMove, ttMove)

	ordered := NewMoveOrderer().Order(pos, moves, ttMove, 0)
	assert.Equal(t, ttMove, ordered[0])
}

func TestOrderPutsCapturesBeforeQuiets(t *testing.T) {
	pos := mustPos(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	moves := pos.LegalMoves()

	ordered := NewMoveOrderer().Order(pos, moves, board.NoMove, 0)
	assert.Equal(t, "e4d5", ordered[0].String(), "pawn takes queen is ordered first")
}

func TestMVVLVA(t *testing.T) {
	pos := mustPos(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	pxq := pos.FindMove("e4d5")
	require.NotEqual(t, board.NoMove, pxq)

	// Pawn takes queen: 100*queen - pawn.
	assert.Equal(t, 100*int(board.Queen)-int(board.Pawn), MVVLVA(pos, pxq))

	quiet := pos.FindMove("e1d1")
	require.NotEqual(t, board.NoMove, quiet)
	assert.Zero(t, MVVLVA(pos, quiet))
}

func TestMVVLVAEnPassantVictimIsPawn(t *testing.T) {
	pos := mustPos(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	ep := pos.FindMove("e5d6")
	require.NotEqual(t, board.NoMove, ep)

	assert.Equal(t, 100*int(board.Pawn)-int(board.Pawn), MVVLVA(pos, ep))
}

func TestOrderKillersBeforeQuietHistory(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()
	mo := NewMoveOrderer()

	killer := pos.FindMove("b1c3")
	require.NotEqual(t, board.NoMove, killer)
	mo.NoteKiller(3, killer)

	ordered := mo.Order(pos, moves, board.NoMove, 3)
	assert.Equal(t, killer, ordered[0])

	// A second killer shifts the first down a slot.
	second := pos.FindMove("g1f3")
	mo.NoteKiller(3, second)
	ordered = mo.Order(pos, moves, board.NoMove, 3)
	assert.Equal(t, second, ordered[0])
	assert.Equal(t, killer, ordered[1])
}

func TestNoteKillerDoesNotDuplicate(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := pos.FindMove("e2e4")

	mo.NoteKiller(0, m)
	mo.NoteKiller(0, m)
	assert.Equal(t, m, mo.killers[0][0])
	assert.Equal(t, board.NoMove, mo.killers[0][1], "re-noting the same killer must not fill both slots")
}

func TestHistoryInfluencesOrdering(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()
	mo := NewMoveOrderer()

	favored := pos.FindMove("a2a3")
	require.NotEqual(t, board.NoMove, favored)
	mo.BumpHistory(board.White, favored.To(), 7)
	assert.Equal(t, 49, mo.HistoryScore(board.White, favored.To()))

	ordered := mo.Order(pos, moves, board.NoMove, 0)
	assert.Equal(t, favored, ordered[0])
}

func TestOrderIsStableOnTies(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()

	// No TT move, killers, or history: every quiet move scores zero, so the
	// generation order must be preserved exactly.
	ordered := NewMoveOrderer().Order(pos, moves, board.NoMove, 0)
	assert.Equal(t, moves, ordered)
}

func TestNewSearchClearsKillersAndDecaysHistory(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := pos.FindMove("e2e4")

	mo.NoteKiller(1, m)
	mo.BumpHistory(board.Black, 20, 4)

	mo.NewSearch()
	assert.Equal(t, board.NoMove, mo.killers[1][0])
	assert.Equal(t, 8, mo.HistoryScore(board.Black, 20), "history decays by half")
}
