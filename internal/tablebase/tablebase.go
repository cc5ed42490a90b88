// Package tablebase provides endgame tablebase probing for low piece-count
// positions. The only shipped prober queries the Lichess online tablebase;
// a caching wrapper keeps repeated probes off the network.
package tablebase

import (
	"math/bits"

	"github.com/merakichess/meraki/internal/board"
)

// ProbeResult is the outcome of a tablebase lookup.
type ProbeResult struct {
	Found    bool
	BestMove string // long algebraic, empty when unknown
	Category string // "win", "draw", "loss", or a "maybe-" variant
	DTZ      int    // distance to zeroing move
}

// Prober looks up positions in an endgame tablebase.
type Prober interface {
	// Probe returns the tablebase verdict and best move for a position.
	Probe(pos *board.Position) ProbeResult

	// MaxPieces returns the largest piece count the tablebase covers.
	MaxPieces() int

	// Available reports whether the tablebase can serve probes.
	Available() bool
}

// CountPieces returns the total number of pieces on the board.
func CountPieces(pos *board.Position) int {
	total := 0
	for piece := board.Pawn; piece <= board.King; piece++ {
		total += bits.OnesCount64(pos.PieceBitboard(piece, board.White))
		total += bits.OnesCount64(pos.PieceBitboard(piece, board.Black))
	}
	return total
}
