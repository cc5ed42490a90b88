package engine

import (
	"sort"

	"github.com/merakichess/meraki/internal/board"
)

// Move ordering priorities. A move's score is the sum of whichever of these
// apply, plus its history counter.
const (
	TTMoveScore  = 10_000_000 // hash move from the transposition table
	CaptureBase  = 1_000_000  // captures, refined by MVV-LVA
	KillerScore1 = 100_000    // first killer at this ply
	KillerScore2 = 90_000     // second killer at this ply
)

// MoveOrderer ranks legal moves to maximize the chance of an early beta
// cutoff. Killers are indexed by ply and reset at the start of each
// top-level search; history is indexed by (side to move, destination square)
// and decays rather than resets, so earlier iterations seed later depths.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [2][64]int
}

// NewMoveOrderer creates an empty orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// NewSearch prepares the orderer for a new top-level search: killers are
// cleared, history is halved.
func (mo *MoveOrderer) NewSearch() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for side := range mo.history {
		for sq := range mo.history[side] {
			mo.history[side][sq] /= 2
		}
	}
}

// Order returns moves sorted by descending ordering score. The sort is
// stable: ties keep generation order, which keeps index-based late-move
// reductions reproducible.
func (mo *MoveOrderer) Order(pos *board.Position, moves []board.Move, ttMove board.Move, ply int) []board.Move {
	type scoredMove struct {
		move  board.Move
		score int
	}
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: mo.scoreMove(pos, m, ttMove, ply)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ordered := make([]board.Move, len(moves))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ttMove board.Move, ply int) int {
	score := 0
	if ttMove != board.NoMove && m == ttMove {
		score += TTMoveScore
	}
	if pos.IsCapture(m) {
		score += CaptureBase + MVVLVA(pos, m)
	}
	if ply < MaxPly {
		if m == mo.killers[ply][0] {
			score += KillerScore1
		} else if m == mo.killers[ply][1] {
			score += KillerScore2
		}
	}
	score += mo.history[pos.SideToMove()][m.To()]
	return score
}

// MVVLVA scores a capture as 100 x victim type - attacker type ("most
// valuable victim, least valuable attacker"). The en passant victim is a
// pawn. Non-captures score zero.
func MVVLVA(pos *board.Position, m board.Move) int {
	if !pos.IsCapture(m) {
		return 0
	}

	attacker, _ := pos.PieceAt(m.From())
	victim := board.Pawn
	if !pos.IsEnPassant(m) {
		victim, _ = pos.PieceAt(m.To())
	}
	return 100*int(victim) - int(attacker)
}

// NoteKiller records a quiet move that caused a beta cutoff. Captures must
// not be stored; callers check before calling.
func (mo *MoveOrderer) NoteKiller(ply int, m board.Move) {
	if ply >= MaxPly {
		return
	}
	if mo.killers[ply][0] != m {
		mo.killers[ply][1] = mo.killers[ply][0]
		mo.killers[ply][0] = m
	}
}

// BumpHistory credits a quiet cutoff move with depth squared at its
// destination square.
func (mo *MoveOrderer) BumpHistory(side board.Color, to uint8, depth int) {
	mo.history[side][to] += depth * depth
}

// HistoryScore returns the history counter for a side and destination.
func (mo *MoveOrderer) HistoryScore(side board.Color, to uint8) int {
	return mo.history[side][to]
}
