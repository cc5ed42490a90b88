package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/merakichess/meraki/internal/config"
	"github.com/merakichess/meraki/internal/engine"
	"github.com/merakichess/meraki/internal/storage"
)

// benchSuite is the built-in position set for --fen suite: opening,
// middlegame, tactic, endgame.
var benchSuite = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkb1r/pp3ppp/2n1pn2/2pp4/3P1B2/2P1PN2/PP1N1PPP/R2QKB1R w KQkq - 0 6",
	"r1bqk2r/ppp2ppp/2n5/2bpp3/2B1P1n1/2NP1N2/PPP2PPP/R1BQK2R w KQkq - 4 6",
	"8/5pk1/6p1/8/3K4/8/5PP1/8 w - - 0 1",
}

// runBench searches each position at every depth in [dmin, dmax] and writes
// one CSV row per (position, depth). When a store directory is configured
// the rows are also appended to the persistent bench history.
func runBench(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fen := fs.String("fen", "startpos", "position as FEN, startpos, or suite")
	dmin := fs.Int("dmin", 2, "minimum depth")
	dmax := fs.Int("dmax", 6, "maximum depth")
	timeMS := fs.Int("time-ms", 2000, "time budget per search in milliseconds, 0 = unlimited")
	coeff := fs.String("coeff", cfg.CoeffPath, "logistic model coefficient file")
	out := fs.String("out", "bench.csv", "CSV output path, - for stdout")
	storeDir := fs.String("store", cfg.StoreDir, "bench history store directory (empty = off)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dmin < 1 || *dmax < *dmin {
		return fmt.Errorf("bad depth range [%d, %d]", *dmin, *dmax)
	}

	var fens []string
	if *fen == "suite" {
		fens = benchSuite
	} else {
		pos, err := engine.ParsePosition(*fen)
		if err != nil {
			return err
		}
		fens = []string{pos.FEN()}
	}

	var store *storage.Store
	if *storeDir != "" {
		var err error
		store, err = storage.Open(*storeDir)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"fen", "depth", "time_ms", "bestmove", "score", "nodes", "nps"}); err != nil {
		return err
	}

	for _, fenStr := range fens {
		for depth := *dmin; depth <= *dmax; depth++ {
			row, err := benchOne(cfg, fenStr, depth, *timeMS, *coeff)
			if err != nil {
				return err
			}

			err = cw.Write([]string{
				row.FEN,
				strconv.Itoa(row.Depth),
				strconv.FormatInt(row.TimeMS, 10),
				row.BestMove,
				strconv.Itoa(row.Score),
				strconv.FormatUint(row.Nodes, 10),
				strconv.FormatInt(row.NPS, 10),
			})
			if err != nil {
				return err
			}
			cw.Flush()

			log.Printf("[bench] %s d%d: %s score %d nodes %d nps %d",
				row.FEN, row.Depth, row.BestMove, row.Score, row.Nodes, row.NPS)

			if store != nil {
				if err := store.AppendBenchRun(row); err != nil {
					log.Printf("[bench] history not recorded: %v", err)
				}
			}
		}
	}

	return cw.Error()
}

// benchOne runs a single (position, depth) search on a fresh engine, so runs
// do not share transposition table state.
func benchOne(cfg *config.Config, fen string, depth, timeMS int, coeff string) (*storage.BenchRun, error) {
	pos, err := engine.ParsePosition(fen)
	if err != nil {
		return nil, err
	}

	eng := newEngine(cfg, coeff, cfg.BlendAlpha, "", false)
	result := eng.Search(pos, depth, time.Duration(timeMS)*time.Millisecond)

	elapsed := result.Elapsed
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}

	return &storage.BenchRun{
		When:     time.Now(),
		FEN:      fen,
		Depth:    depth,
		TimeMS:   elapsed.Milliseconds(),
		BestMove: result.BestMove(),
		Score:    result.Score,
		Nodes:    result.Nodes,
		NPS:      int64(float64(result.Nodes) / elapsed.Seconds()),
	}, nil
}
