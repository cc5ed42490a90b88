package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// validateFEN checks a FEN string before it is handed to the move generation
// library, which assumes well-formed input. Returns the FEN normalized to six
// fields (missing clocks default to "0 1").
func validateFEN(fen string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return "", fmt.Errorf("fen: expected 4-6 fields, got %d", len(fields))
	}

	if err := validatePlacement(fields[0]); err != nil {
		return "", err
	}

	if fields[1] != "w" && fields[1] != "b" {
		return "", fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if err := validateCastling(fields[2]); err != nil {
		return "", err
	}

	if ep := fields[3]; ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return "", fmt.Errorf("fen: bad en passant square %q", ep)
		}
	}

	for _, f := range fields[4:6] {
		if _, err := strconv.Atoi(f); err != nil {
			return "", fmt.Errorf("fen: bad move counter %q", f)
		}
	}

	return strings.Join(fields, " "), nil
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}

	whiteKings, blackKings := 0, 0
	for i, rank := range ranks {
		files := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				files++
				if c == 'K' {
					whiteKings++
				}
				if c == 'k' {
					blackKings++
				}
			default:
				return fmt.Errorf("fen: bad piece character %q in rank %d", c, 8-i)
			}
		}
		if files != 8 {
			return fmt.Errorf("fen: rank %d has %d files", 8-i, files)
		}
	}

	if whiteKings != 1 || blackKings != 1 {
		return fmt.Errorf("fen: expected one king per side, got %d white and %d black", whiteKings, blackKings)
	}
	return nil
}

func validateCastling(castling string) error {
	if castling == "-" {
		return nil
	}
	if castling == "" || len(castling) > 4 {
		return fmt.Errorf("fen: bad castling rights %q", castling)
	}
	for _, c := range castling {
		if !strings.ContainsRune("KQkq", c) {
			return fmt.Errorf("fen: bad castling rights %q", castling)
		}
	}
	return nil
}
