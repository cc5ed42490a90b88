package tablebase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/merakichess/meraki/internal/board"
)

const lichessEndpoint = "https://tablebase.lichess.ovh/standard"

// LichessProber queries the Lichess tablebase API. It needs network access
// and is rate limited; wrap it in a CachedProber for search use.
type LichessProber struct {
	client    *http.Client
	endpoint  string
	maxPieces int
}

// NewLichessProber creates a Lichess-backed prober.
func NewLichessProber() *LichessProber {
	return &LichessProber{
		client:    &http.Client{Timeout: 5 * time.Second},
		endpoint:  lichessEndpoint,
		maxPieces: 7, // Lichess serves up to 7-man tables
	}
}

type lichessResponse struct {
	Category string `json:"category"`
	DTZ      int    `json:"dtz"`
	Moves    []struct {
		UCI      string `json:"uci"`
		Category string `json:"category"`
		DTZ      int    `json:"dtz"`
	} `json:"moves"`
}

func (lp *LichessProber) Probe(pos *board.Position) ProbeResult {
	if CountPieces(pos) > lp.maxPieces {
		return ProbeResult{}
	}

	// Lichess expects FEN spaces as underscores.
	fen := strings.ReplaceAll(pos.FEN(), " ", "_")

	resp, err := lp.client.Get(fmt.Sprintf("%s?fen=%s", lp.endpoint, fen))
	if err != nil {
		return ProbeResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ProbeResult{}
	}

	var result lichessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ProbeResult{}
	}
	if len(result.Moves) == 0 {
		return ProbeResult{}
	}

	// Moves come back ordered best-first for the side to move.
	best := result.Moves[0]
	return ProbeResult{
		Found:    true,
		BestMove: best.UCI,
		Category: result.Category,
		DTZ:      result.DTZ,
	}
}

func (lp *LichessProber) MaxPieces() int {
	return lp.maxPieces
}

func (lp *LichessProber) Available() bool {
	return true // as available as the network is
}
