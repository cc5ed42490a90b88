package engine

import (
	"github.com/merakichess/meraki/internal/board"
)

// Search constants.
const (
	Infinity      = 1_000_000
	MateScore     = 100_000 // side to move is mated: -MateScore + ply
	MateThreshold = 99_000  // scores beyond this are mate scores
	MaxPly        = 256
)

// endgameMaterial is the non-pawn material threshold at and below which
// null-move pruning is disabled.
const endgameMaterial = 1300

// SearcherOptions toggles individual search features, mainly so tests can
// reduce the search to plain alpha-beta.
type SearcherOptions struct {
	DisableNullMove bool
	DisableLMR      bool
}

// Searcher walks the game tree for one position at a time. It owns its
// transposition table access, killer and history tables, and node counter;
// it must not be shared across concurrent top-level searches. All state is
// mutated from a single goroutine and the only interruption mechanism is
// polling the time budget.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer
	eval    Evaluator
	time    *TimeBudget
	opts    SearcherOptions

	nodes    uint64
	rootMove board.Move
}

// NewSearcher creates a searcher over a shared transposition table.
func NewSearcher(tt *TranspositionTable, eval Evaluator, opts SearcherOptions) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		eval:    eval,
		time:    &TimeBudget{},
		opts:    opts,
	}
}

// Begin resets per-search state. Killers are cleared and history decayed
// once per top-level search, not per iterative-deepening iteration.
func (s *Searcher) Begin(pos *board.Position) {
	s.pos = pos
	s.nodes = 0
	s.rootMove = board.NoMove
	s.orderer.NewSearch()
}

// Nodes returns the number of nodes searched, quiescence included.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// RootMove returns the best root move recorded so far, NoMove if none.
func (s *Searcher) RootMove() board.Move {
	return s.rootMove
}

// TimeBudget exposes the searcher's clock for the iterative-deepening
// driver.
func (s *Searcher) TimeBudget() *TimeBudget {
	return s.time
}

// Negamax searches to the given remaining depth inside the [alpha, beta]
// window. Scores are from the side to move's perspective; child scores are
// negated on return. A zero return on an expired budget is never committed
// to the transposition table.
func (s *Searcher) Negamax(depth, ply, alpha, beta int) int {
	if s.time.Expired() {
		return 0
	}

	pos := s.pos
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			return -MateScore + ply // closer mates score worse for the mated side
		}
		return 0
	}
	if pos.IsRepetition(2) || pos.IsInsufficientMaterial() || pos.IsFiftyMoves() {
		return 0
	}

	if depth <= 0 {
		return s.Quiescence(ply, alpha, beta)
	}

	s.nodes++

	hash := pos.Hash()
	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(hash); ok {
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
		ttMove = entry.BestMove
	}

	inCheck := pos.InCheck()

	// Null move: hand the opponent a free tempo with a reduced, zero-window
	// search. If the position still fails high it is almost certainly good
	// enough to cut. Unsound in zugzwang-prone endgames and in check.
	if !s.opts.DisableNullMove && !inCheck && depth >= 3 &&
		NonPawnMaterial(pos) > endgameMaterial {
		r := 2 + depth/4
		pos.PushNull()
		score := -s.Negamax(depth-1-r, ply+1, -beta, -beta+1)
		pos.PopNull()
		if s.time.Expired() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	ordered := s.orderer.Order(pos, moves, ttMove, ply)

	bestScore := -Infinity
	bestMove := board.NoMove
	raisedAlpha := false

	for i, m := range ordered {
		isCapture := pos.IsCapture(m)

		// Late-move reduction: moves ordered this late rarely matter, so try
		// them shallower with a zero window and only re-search on a
		// surprise.
		reduced := 0
		if !s.opts.DisableLMR && depth >= 3 && i >= 4 && !inCheck &&
			!isCapture && !pos.GivesCheck(m) {
			reduced = 1 + i/8
		}

		pos.Push(m)
		var score int
		if reduced > 0 {
			score = -s.Negamax(depth-1-reduced, ply+1, -alpha-1, -alpha)
			if score > alpha {
				score = -s.Negamax(depth-1, ply+1, -beta, -alpha)
			}
		} else {
			score = -s.Negamax(depth-1, ply+1, -beta, -alpha)
		}
		pos.Pop()

		if s.time.Expired() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if ply == 0 {
				s.rootMove = m
			}
			if score > alpha {
				alpha = score
				raisedAlpha = true
				if alpha >= beta {
					if !isCapture {
						s.orderer.NoteKiller(ply, m)
						s.orderer.BumpHistory(pos.SideToMove(), m.To(), depth)
					}
					break
				}
			}
		}
	}

	if bestMove == board.NoMove {
		return 0
	}

	flag := TTUpperBound
	if bestScore >= beta {
		flag = TTLowerBound
	} else if raisedAlpha {
		flag = TTExact
	}
	s.tt.Store(hash, depth, bestScore, flag, bestMove)

	return bestScore
}

// Quiescence extends the search over captures and checking moves until the
// position is quiet, so leaf evaluations are not taken in the middle of a
// tactical exchange. Fail-hard: returns are clamped to the window.
func (s *Searcher) Quiescence(ply, alpha, beta int) int {
	s.nodes++
	if s.time.Expired() {
		return 0
	}

	pos := s.pos
	standPat := s.eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxPly-1 {
		return alpha
	}

	var noisy []board.Move
	for _, m := range pos.LegalMoves() {
		if pos.IsCapture(m) || pos.GivesCheck(m) {
			noisy = append(noisy, m)
		}
	}

	for _, m := range s.orderer.Order(pos, noisy, board.NoMove, ply) {
		pos.Push(m)
		score := -s.Quiescence(ply+1, -beta, -alpha)
		pos.Pop()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
