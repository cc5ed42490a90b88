package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartingPosition(t *testing.T) {
	pos := NewPosition()

	assert.Equal(t, StartFEN, pos.FEN())
	assert.True(t, pos.WhiteToMove())
	assert.Len(t, pos.LegalMoves(), 20)
	assert.False(t, pos.InCheck())
}

func TestPushPopRestoresState(t *testing.T) {
	pos := NewPosition()
	hash := pos.Hash()
	fen := pos.FEN()

	move := pos.FindMove("e2e4")
	require.NotEqual(t, NoMove, move)

	pos.Push(move)
	assert.NotEqual(t, hash, pos.Hash(), "hash should change after a move")
	assert.False(t, pos.WhiteToMove())

	pos.Pop()
	assert.Equal(t, hash, pos.Hash(), "hash should be restored after pop")
	assert.Equal(t, fen, pos.FEN())
}

func TestNullMove(t *testing.T) {
	pos := NewPosition()
	hash := pos.Hash()

	pos.PushNull()
	assert.False(t, pos.WhiteToMove(), "null move passes the turn")
	assert.NotEqual(t, hash, pos.Hash())

	pos.PopNull()
	assert.True(t, pos.WhiteToMove())
	assert.Equal(t, hash, pos.Hash())
}

func TestCaptureDetection(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	capture := pos.FindMove("e4d5")
	require.NotEqual(t, NoMove, capture)
	assert.True(t, pos.IsCapture(capture))
	assert.False(t, pos.IsEnPassant(capture))

	quiet := pos.FindMove("e1d1")
	require.NotEqual(t, NoMove, quiet)
	assert.False(t, pos.IsCapture(quiet))
}

func TestEnPassantDetection(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	require.NoError(t, err)

	ep := pos.FindMove("e5d6")
	require.NotEqual(t, NoMove, ep, "en passant capture should be legal")
	assert.True(t, pos.IsEnPassant(ep))
	assert.True(t, pos.IsCapture(ep))
}

func TestGivesCheck(t *testing.T) {
	// Rook to h8 is check (and mate) against the bare king.
	pos, err := FromFEN("4k3/8/4K3/8/8/8/8/7R w - - 0 1")
	require.NoError(t, err)

	check := pos.FindMove("h1h8")
	require.NotEqual(t, NoMove, check)
	assert.True(t, pos.GivesCheck(check))

	quiet := pos.FindMove("h1h2")
	require.NotEqual(t, NoMove, quiet)
	assert.False(t, pos.GivesCheck(quiet))
}

func TestCheckmateAndStalemate(t *testing.T) {
	stale, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	// Black has no moves and is not in check: stalemate.
	assert.True(t, stale.IsStalemate())
	assert.False(t, stale.IsCheckmate())

	backRank, err := FromFEN("6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, backRank.IsCheckmate())

	mated, err := FromFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)
	assert.True(t, mated.IsCheckmate())
	assert.False(t, mated.IsStalemate())
}

func TestPieceQueries(t *testing.T) {
	pos := NewPosition()

	piece, color := pos.PieceAt(4) // e1
	assert.Equal(t, King, piece)
	assert.Equal(t, White, color)

	piece, color = pos.PieceAt(60) // e8
	assert.Equal(t, King, piece)
	assert.Equal(t, Black, color)

	piece, _ = pos.PieceAt(35) // d5, empty
	assert.Equal(t, NoPiece, piece)

	assert.Equal(t, 8, pos.Count(Pawn, White))
	assert.Equal(t, 2, pos.Count(Rook, Black))
	assert.Equal(t, 1, pos.Count(Queen, White))
	assert.Equal(t, uint8(4), pos.KingSquare(White))
	assert.Equal(t, uint8(60), pos.KingSquare(Black))
}

func TestCastlingDetection(t *testing.T) {
	pos, err := FromFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	kingside := pos.FindMove("e1g1")
	require.NotEqual(t, NoMove, kingside)
	assert.True(t, pos.IsCastling(kingside))

	queenside := pos.FindMove("e1c1")
	require.NotEqual(t, NoMove, queenside)
	assert.True(t, pos.IsCastling(queenside))

	quiet := pos.FindMove("e1d1")
	require.NotEqual(t, NoMove, quiet)
	assert.False(t, pos.IsCastling(quiet))
}

func TestCloneIsIndependent(t *testing.T) {
	pos := NewPosition()
	clone := pos.Clone()

	move := clone.FindMove("e2e4")
	require.NotEqual(t, NoMove, move)
	clone.Push(move)

	assert.Equal(t, StartFEN, pos.FEN(), "original must not change")
	assert.NotEqual(t, pos.FEN(), clone.FEN())
}

func TestFiftyMoves(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w - - 100 80")
	require.NoError(t, err)
	assert.True(t, pos.IsFiftyMoves())

	fresh, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w - - 12 80")
	require.NoError(t, err)
	assert.False(t, fresh.IsFiftyMoves())
}
