// Package uci implements the minimum Universal Chess Interface surface the
// engine exposes: identification, position setup, the CoeffPath option, and
// a fixed-budget go.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/merakichess/meraki/internal/board"
	"github.com/merakichess/meraki/internal/engine"
)

// Default search parameters for a bare "go".
const (
	defaultDepth  = 6
	defaultBudget = 2000 * time.Millisecond
)

// UCI is the protocol handler. It reads commands line by line and ignores
// anything malformed, as the protocol requires.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	// In and Out default to stdin and stdout; tests substitute buffers.
	In  io.Reader
	Out io.Writer
}

// New creates a protocol handler around an engine.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run processes commands until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(u.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.Out, "readyok")
		case "ucinewgame":
			u.position = board.NewPosition()
		case "position":
			u.handlePosition(fields[1:])
		case "setoption":
			u.handleSetOption(fields[1:])
		case "go":
			u.handleGo(fields[1:])
		case "quit":
			return
		}
		// Unknown commands are silently ignored.
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.Out, "id name meraki")
	fmt.Fprintln(u.Out, "id author the meraki authors")
	fmt.Fprintln(u.Out)
	fmt.Fprintln(u.Out, "option name Hash type spin default 64 min 1 max 4096")
	fmt.Fprintln(u.Out, "option name CoeffPath type string default <empty>")
	fmt.Fprintln(u.Out, "option name Alpha type string default 0.35")
	fmt.Fprintln(u.Out, "uciok")
}

// handlePosition parses "position [startpos|fen <fen>] [moves <m1> ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		fen := strings.Join(args[1:moveStart], " ")
		parsed, err := board.FromFEN(fen)
		if err != nil {
			fmt.Fprintf(u.Out, "info string invalid fen: %v\n", err)
			return
		}
		pos = parsed
	default:
		return
	}

	for i := moveStart + 1; i < len(args); i++ {
		move := pos.FindMove(args[i])
		if move == board.NoMove {
			fmt.Fprintf(u.Out, "info string invalid move: %s\n", args[i])
			return
		}
		pos.Push(move)
	}

	u.position = pos
}

// handleSetOption understands "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	name, value := "", ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
			}
		case "value":
			if i+1 < len(args) {
				value = strings.Join(args[i+1:], " ")
				i = len(args)
			}
		}
	}

	switch name {
	case "CoeffPath":
		u.engine.SetCoeffPath(value)
	case "Alpha":
		if alpha, err := strconv.ParseFloat(value, 64); err == nil && alpha >= 0 && alpha <= 1 {
			u.engine.SetBlendAlpha(alpha)
		}
	case "Hash":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			u.engine.SetHashMB(mb)
		}
	}
}

// handleGo searches the current position and prints the best move. The
// minimum surface: "go" uses a fixed default depth and budget; "go depth N"
// and "go movetime N" override them.
func (u *UCI) handleGo(args []string) {
	depth := defaultDepth
	budget := defaultBudget

	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "depth":
			if n, err := strconv.Atoi(args[i+1]); err == nil && n > 0 {
				depth = n
			}
		case "movetime":
			if n, err := strconv.Atoi(args[i+1]); err == nil && n > 0 {
				budget = time.Duration(n) * time.Millisecond
			}
		}
	}

	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(info)
	}

	result := u.engine.Search(u.position.Clone(), depth, budget)
	if result.Move == board.NoMove {
		fmt.Fprintln(u.Out, "bestmove 0000")
		return
	}
	fmt.Fprintf(u.Out, "bestmove %s\n", result.Move.String())
}

// sendInfo prints one UCI info line per completed depth.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	elapsed := info.Elapsed
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	nps := int64(float64(info.Nodes) / elapsed.Seconds())

	score := fmt.Sprintf("cp %d", info.Score)
	if info.Score > engine.MateThreshold {
		score = fmt.Sprintf("mate %d", (engine.MateScore-info.Score+1)/2)
	} else if info.Score < -engine.MateThreshold {
		score = fmt.Sprintf("mate %d", -(engine.MateScore+info.Score+1)/2)
	}

	fmt.Fprintf(u.Out, "info depth %d score %s nodes %d nps %d time %d pv %s\n",
		info.Depth, score, info.Nodes, nps, elapsed.Milliseconds(), info.Move.String())
}
