// Command meraki is the chess search engine front-end. It exposes three
// modes: "play" searches a single position and prints the result, "bench"
// sweeps a depth range and emits CSV, and "uci" (the default) speaks the
// UCI protocol on stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/merakichess/meraki/internal/book"
	"github.com/merakichess/meraki/internal/config"
	"github.com/merakichess/meraki/internal/engine"
	"github.com/merakichess/meraki/internal/tablebase"
	"github.com/merakichess/meraki/internal/uci"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "meraki:", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	mode := "uci"
	if len(args) > 0 {
		mode = args[0]
		args = args[1:]
	}

	switch mode {
	case "play":
		err = runPlay(cfg, args)
	case "bench":
		err = runBench(cfg, args)
	case "uci":
		err = runUCI(cfg, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "meraki: unknown command %q\n", mode)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "meraki:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  meraki play  --fen <FEN|startpos> --depth N --time-ms N [--coeff path] [--alpha f] [--book path]
  meraki bench --fen <FEN|startpos|suite> --dmin N --dmax N --time-ms N [--coeff path] [--out path] [--store dir]
  meraki uci`)
}

// newEngine builds an engine from config defaults plus command overrides.
func newEngine(cfg *config.Config, coeff string, alpha float64, bookPath string, useTablebase bool) *engine.Engine {
	eng := engine.New(engine.Options{
		HashMB:     cfg.HashMB,
		CoeffPath:  coeff,
		BlendAlpha: alpha,
	})

	if bookPath != "" {
		bk, err := book.LoadPolyglot(bookPath)
		if err != nil {
			log.Printf("[meraki] opening book not loaded: %v", err)
		} else {
			eng.SetBook(bk)
		}
	}

	if useTablebase {
		eng.SetTablebase(tablebase.NewCachedLichessProber())
	}

	return eng
}

func runUCI(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("uci", flag.ContinueOnError)
	coeff := fs.String("coeff", cfg.CoeffPath, "logistic model coefficient file")
	alpha := fs.Float64("alpha", cfg.BlendAlpha, "model blend weight")
	bookPath := fs.String("book", cfg.BookPath, "polyglot opening book")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng := newEngine(cfg, *coeff, *alpha, *bookPath, cfg.Tablebase)
	uci.New(eng).Run()
	return nil
}
