// Package engine implements the meraki search engine: an iterative-deepening
// negamax searcher with alpha-beta pruning, a transposition table, killer and
// history move ordering, late-move reductions, null-move pruning and a
// quiescence search, over a pluggable centipawn evaluator.
package engine

import (
	"log"
	"time"

	"github.com/merakichess/meraki/internal/board"
	"github.com/merakichess/meraki/internal/book"
	"github.com/merakichess/meraki/internal/tablebase"
)

// aspirationWindow is the initial half-width of the aspiration window around
// the previous iteration's score, in centipawns.
const aspirationWindow = 50

// aspirationRetries is how many times a failed window is widened (by
// doubling) before the iteration falls back to a full-width window.
const aspirationRetries = 3

// Options configures a new Engine.
type Options struct {
	HashMB            int     // transposition table size, DefaultHashMB if zero
	CoeffPath         string  // logistic model coefficients; empty = handcrafted only
	BlendAlpha        float64 // weight of the model score, DefaultBlendAlpha if zero
	Searcher          SearcherOptions
	DisableAspiration bool // full-width windows at every depth (testing)
}

// SearchInfo is reported after each completed iterative-deepening depth.
type SearchInfo struct {
	Depth   int
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	Move    board.Move
}

// Result is the outcome of a root search.
type Result struct {
	Move    board.Move // NoMove when the position is terminal
	Score   int        // side to move's perspective
	Depth   int        // last completed depth
	Nodes   uint64
	Elapsed time.Duration
}

// BestMove returns the long-algebraic best move, or "" if none was found.
func (r Result) BestMove() string {
	if r.Move == board.NoMove {
		return ""
	}
	return r.Move.String()
}

// Engine owns one searcher and its tables. It processes one search at a
// time; a call to Search blocks until the search completes or the time
// budget runs out. The transposition table persists across calls, which is
// intentional: consecutive searches from related positions reuse work.
type Engine struct {
	tt        *TranspositionTable
	searcher  *Searcher
	evaluator Evaluator
	opts      Options

	book      *book.Book
	tablebase tablebase.Prober

	// OnInfo, when set, is invoked after every completed depth.
	OnInfo func(SearchInfo)
}

// New creates an engine. The evaluator is fixed at construction: handcrafted
// when no coefficient path is given, otherwise the ML blend (which itself
// degrades to handcrafted when the file cannot be loaded).
func New(opts Options) *Engine {
	if opts.BlendAlpha == 0 {
		opts.BlendAlpha = DefaultBlendAlpha
	}

	var evaluator Evaluator = Handcrafted{}
	if opts.CoeffPath != "" {
		evaluator = NewBlended(opts.CoeffPath, opts.BlendAlpha)
	}

	tt := NewTranspositionTable(opts.HashMB)
	return &Engine{
		tt:        tt,
		searcher:  NewSearcher(tt, evaluator, opts.Searcher),
		evaluator: evaluator,
		opts:      opts,
	}
}

// Evaluator returns the engine's evaluator.
func (e *Engine) Evaluator() Evaluator {
	return e.evaluator
}

// SetBook installs an opening book probed before searching. Pass nil to
// disable.
func (e *Engine) SetBook(b *book.Book) {
	e.book = b
}

// SetTablebase installs an endgame tablebase probed at the root for low
// piece counts. Pass nil to disable.
func (e *Engine) SetTablebase(tb tablebase.Prober) {
	e.tablebase = tb
}

// SetCoeffPath swaps the evaluator for one loading the given coefficient
// file. Used by the UCI CoeffPath option; an empty path restores the
// handcrafted evaluator.
func (e *Engine) SetCoeffPath(path string) {
	e.opts.CoeffPath = path
	if path == "" {
		e.evaluator = Handcrafted{}
	} else {
		e.evaluator = NewBlended(path, e.opts.BlendAlpha)
	}
	e.searcher.eval = e.evaluator
}

// SetBlendAlpha changes the model blend weight and reloads the evaluator.
func (e *Engine) SetBlendAlpha(alpha float64) {
	e.opts.BlendAlpha = alpha
	e.SetCoeffPath(e.opts.CoeffPath)
}

// SetHashMB replaces the transposition table with one of the given size,
// discarding its contents.
func (e *Engine) SetHashMB(sizeMB int) {
	e.opts.HashMB = sizeMB
	e.tt = NewTranspositionTable(sizeMB)
	e.searcher.tt = e.tt
}

// Search runs iterative deepening on pos up to maxDepth within budget
// (budget <= 0 searches to full depth). The returned move is legal in pos,
// even on early termination: it is the best move of the last completed
// depth. A terminal position returns NoMove and score 0.
func (e *Engine) Search(pos *board.Position, maxDepth int, budget time.Duration) Result {
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return Result{Move: board.NoMove, Score: 0}
	}

	if move, ok := e.probeRoot(pos); ok {
		return Result{Move: move, Score: 0}
	}

	s := e.searcher
	s.Begin(pos)
	s.TimeBudget().Start(budget)
	e.tt.NewSearch()

	best := board.NoMove
	last := e.evaluator.Evaluate(pos)
	depth := 0

	for d := 1; d <= maxDepth; d++ {
		if s.TimeBudget().Expired() {
			break
		}

		score, completed := e.searchDepth(d, last)
		if completed {
			last = score
			depth = d
		}

		// Root best move: the TT entry at the root key, then the searcher's
		// own record, then the first legal move.
		if entry, ok := e.tt.Probe(pos.Hash()); ok && entry.BestMove != board.NoMove {
			best = entry.BestMove
		} else if s.RootMove() != board.NoMove {
			best = s.RootMove()
		}
		if best == board.NoMove {
			best = legal[0]
		}

		if completed && e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:   d,
				Score:   last,
				Nodes:   s.Nodes(),
				Elapsed: s.TimeBudget().Elapsed(),
				Move:    best,
			})
		}
	}

	if best == board.NoMove {
		best = legal[0]
	}

	return Result{
		Move:    best,
		Score:   last,
		Depth:   depth,
		Nodes:   s.Nodes(),
		Elapsed: s.TimeBudget().Elapsed(),
	}
}

// searchDepth runs one iterative-deepening iteration inside an aspiration
// window around the previous score, widening on fail-low or fail-high and
// falling back to a full-width window after the retries are spent. Returns
// the score and whether the iteration completed in time.
func (e *Engine) searchDepth(depth, previous int) (int, bool) {
	s := e.searcher

	if e.opts.DisableAspiration {
		score := s.Negamax(depth, 0, -Infinity, Infinity)
		return score, !s.TimeBudget().Expired()
	}

	window := aspirationWindow
	alpha, beta := previous-window, previous+window

	for try := 0; try < aspirationRetries; try++ {
		score := s.Negamax(depth, 0, alpha, beta)
		if s.TimeBudget().Expired() {
			return 0, false
		}
		switch {
		case score <= alpha:
			alpha -= window
			window *= 2
		case score >= beta:
			beta += window
			window *= 2
		default:
			return score, true
		}
	}

	score := s.Negamax(depth, 0, -Infinity, Infinity)
	return score, !s.TimeBudget().Expired()
}

// probeRoot consults the opening book and the tablebase before searching.
func (e *Engine) probeRoot(pos *board.Position) (board.Move, bool) {
	if e.book != nil {
		if move, ok := e.book.Probe(pos); ok {
			log.Printf("[Engine] book move %s", move.String())
			return move, true
		}
	}

	if e.tablebase != nil && e.tablebase.Available() &&
		tablebase.CountPieces(pos) <= e.tablebase.MaxPieces() {
		if result := e.tablebase.Probe(pos); result.Found {
			if move := pos.FindMove(result.BestMove); move != board.NoMove {
				log.Printf("[Engine] tablebase move %s (%s)", result.BestMove, result.Category)
				return move, true
			}
		}
	}

	return board.NoMove, false
}

// FindBestMove is the one-call convenience entry: search fenOrStart (a FEN
// string or "startpos") to the given depth and budget, optionally blending
// with the model at coeffPath, and return the best move in long algebraic
// notation. Returns "" for terminal positions.
func FindBestMove(fenOrStart string, depth int, timeMS int, coeffPath string, alpha float64) (string, error) {
	pos, err := ParsePosition(fenOrStart)
	if err != nil {
		return "", err
	}

	eng := New(Options{CoeffPath: coeffPath, BlendAlpha: alpha})
	result := eng.Search(pos, depth, time.Duration(timeMS)*time.Millisecond)
	return result.BestMove(), nil
}

// ParsePosition resolves "startpos" (and a couple of aliases) or a FEN
// string into a Position.
func ParsePosition(fenOrStart string) (*board.Position, error) {
	switch fenOrStart {
	case "", "start", "startpos", "default":
		return board.NewPosition(), nil
	}
	return board.FromFEN(fenOrStart)
}
