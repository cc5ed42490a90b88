package board

import "strings"

var pieceLetters = [7]byte{'.', 'P', 'N', 'B', 'R', 'Q', 'K'}

// SAN renders a legal move in Standard Algebraic Notation, including
// disambiguation, capture and promotion markers, and the check or checkmate
// suffix.
func (p *Position) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	piece, _ := p.PieceAt(m.From())
	if piece == NoPiece {
		return m.String() // not a move in this position, fall back to UCI
	}

	var sb strings.Builder

	if p.IsCastling(m) {
		if m.To() > m.From() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
		sb.WriteString(p.checkSuffix(m))
		return sb.String()
	}

	if piece != Pawn {
		sb.WriteByte(pieceLetters[piece])
		sb.WriteString(p.disambiguation(m, piece))
	}

	if p.IsCapture(m) {
		if piece == Pawn {
			sb.WriteByte('a' + m.From()&7)
		}
		sb.WriteByte('x')
	}

	sb.WriteString(SquareName(m.To()))

	if promo := m.Promote(); promo != NoPiece {
		sb.WriteByte('=')
		sb.WriteByte(pieceLetters[promo])
	}

	sb.WriteString(p.checkSuffix(m))
	return sb.String()
}

// disambiguation returns the file, rank, or full square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func (p *Position) disambiguation(m Move, piece Piece) string {
	var sameFile, sameRank, ambiguous bool

	for _, other := range p.LegalMoves() {
		if other.To() != m.To() || other.From() == m.From() {
			continue
		}
		otherPiece, _ := p.PieceAt(other.From())
		if otherPiece != piece {
			continue
		}
		ambiguous = true
		if other.From()&7 == m.From()&7 {
			sameFile = true
		}
		if other.From()>>3 == m.From()>>3 {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string('a' + m.From()&7)
	case !sameRank:
		return string('1' + m.From()>>3)
	default:
		return SquareName(m.From())
	}
}

func (p *Position) checkSuffix(m Move) string {
	p.bd.Make(m)
	defer p.bd.Undo()

	if !p.bd.OurKingInCheck() {
		return ""
	}
	if len(p.bd.GenerateLegalMoves()) == 0 {
		return "#"
	}
	return "+"
}
