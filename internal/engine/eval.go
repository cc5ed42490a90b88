package engine

import (
	"math/bits"

	"github.com/merakichess/meraki/internal/board"
)

// Piece values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 0
)

// pieceValues is indexed by board piece type (Nothing, Pawn, ..., King).
var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

// Evaluator scores a position in centipawns from the side to move's
// perspective. The searcher depends only on this interface; the handcrafted
// and ML-blended implementations are chosen at engine construction.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// Handcrafted is the material plus piece-square-table evaluator.
type Handcrafted struct{}

// Piece-square tables, written in visual board orientation (rank 8 first).
// White indexes with sq^56, Black with the square itself, so Black reads the
// vertically mirrored table. Values adapted from a conventional simplified
// evaluation; the king table is middlegame-flavored.
var psqt = [7][64]int{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	board.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	board.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

// Evaluate returns a centipawn score from the side to move's perspective.
// Terminal states short-circuit before any material is summed: the side to
// move being mated is -100000, any drawn state is 0.
func (Handcrafted) Evaluate(pos *board.Position) int {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			return -MateScore
		}
		return 0 // stalemate
	}
	if pos.IsRepetition(2) || pos.IsInsufficientMaterial() || pos.IsFiftyMoves() {
		return 0
	}

	score := materialScore(pos) + psqtScore(pos)
	if !pos.WhiteToMove() {
		score = -score
	}
	return score
}

// materialScore sums piece values from White's point of view.
func materialScore(pos *board.Position) int {
	score := 0
	for piece := board.Pawn; piece <= board.King; piece++ {
		score += pieceValues[piece] * (pos.Count(piece, board.White) - pos.Count(piece, board.Black))
	}
	return score
}

// psqtScore sums piece-square bonuses from White's point of view.
func psqtScore(pos *board.Position) int {
	score := 0
	for piece := board.Pawn; piece <= board.King; piece++ {
		table := &psqt[piece]

		white := pos.PieceBitboard(piece, board.White)
		for white != 0 {
			sq := bits.TrailingZeros64(white)
			white &= white - 1
			score += table[sq^56]
		}

		black := pos.PieceBitboard(piece, board.Black)
		for black != 0 {
			sq := bits.TrailingZeros64(black)
			black &= black - 1
			score -= table[sq]
		}
	}
	return score
}

// NonPawnMaterial returns the total non-pawn, non-king material of both
// sides. The searcher disables null-move pruning at or below the endgame
// threshold, where zugzwang makes passing the turn unsound.
func NonPawnMaterial(pos *board.Position) int {
	total := 0
	for piece := board.Knight; piece <= board.Queen; piece++ {
		total += pieceValues[piece] * (pos.Count(piece, board.White) + pos.Count(piece, board.Black))
	}
	return total
}
