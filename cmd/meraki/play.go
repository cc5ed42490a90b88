package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/merakichess/meraki/internal/board"
	"github.com/merakichess/meraki/internal/config"
	"github.com/merakichess/meraki/internal/engine"
)

// runPlay searches one position and prints the FEN, the White-POV
// evaluation, and the best move in long algebraic and SAN.
func runPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fen := fs.String("fen", "startpos", "position as FEN, or startpos")
	depth := fs.Int("depth", 6, "maximum search depth")
	timeMS := fs.Int("time-ms", 2000, "time budget in milliseconds, 0 = unlimited")
	coeff := fs.String("coeff", cfg.CoeffPath, "logistic model coefficient file")
	alpha := fs.Float64("alpha", cfg.BlendAlpha, "model blend weight")
	bookPath := fs.String("book", cfg.BookPath, "polyglot opening book")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := engine.ParsePosition(*fen)
	if err != nil {
		return err
	}

	eng := newEngine(cfg, *coeff, *alpha, *bookPath, false)

	// Evaluation from White's point of view, before searching.
	cp := eng.Evaluator().Evaluate(pos)
	if !pos.WhiteToMove() {
		cp = -cp
	}

	result := eng.Search(pos, *depth, time.Duration(*timeMS)*time.Millisecond)

	label := color.New(color.Bold)
	fmt.Printf("%s %s\n", label.Sprint("FEN: "), pos.FEN())
	fmt.Printf("%s %d\n", label.Sprint("eval:"), cp)

	if result.Move == board.NoMove {
		// Terminal position: nothing to play, but not an input error.
		fmt.Printf("%s (none)\n", label.Sprint("best:"))
		return nil
	}

	fmt.Printf("%s %s\n", label.Sprint("best:"), result.Move.String())
	fmt.Printf("%s %s\n", label.Sprint("SAN: "), pos.SAN(result.Move))
	return nil
}
