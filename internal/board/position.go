// Package board adapts the dragontoothmg move generation library to the
// narrow surface the search engine consumes. Move generation, legality,
// make/unmake and Zobrist hashing all live in the library; this package only
// adds the queries the searcher and the evaluators need (capture and check
// classification, piece lookups, FEN validation, SAN rendering).
package board

import (
	"math/bits"

	"github.com/IlikeChooros/dragontoothmg"
)

// Move is the library's packed move representation (from, to, promotion).
// Its String method renders long algebraic notation ("e2e4", "e7e8q").
type Move = dragontoothmg.Move

// NoMove is the zero move, rendered as "0000".
const NoMove Move = 0

// Piece identifies a piece type, independent of color.
type Piece = dragontoothmg.Piece

const (
	NoPiece = Piece(dragontoothmg.Nothing)
	Pawn    = Piece(dragontoothmg.Pawn)
	Knight  = Piece(dragontoothmg.Knight)
	Bishop  = Piece(dragontoothmg.Bishop)
	Rook    = Piece(dragontoothmg.Rook)
	Queen   = Piece(dragontoothmg.Queen)
	King    = Piece(dragontoothmg.King)
)

// Color is the side to move.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Position wraps a dragontoothmg board. It is a mutable value owned by a
// single searcher; Push and Pop must be strictly paired.
type Position struct {
	bd dragontoothmg.Board
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	return &Position{bd: dragontoothmg.ParseFen(dragontoothmg.Startpos)}
}

// FromFEN parses a FEN string. The string is validated before it reaches the
// library, so malformed input returns an error instead of corrupting state.
func FromFEN(fen string) (*Position, error) {
	normalized, err := validateFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Position{bd: dragontoothmg.ParseFen(normalized)}, nil
}

// FEN returns the position in Forsyth-Edwards notation.
func (p *Position) FEN() string {
	return p.bd.ToFen()
}

// Hash returns the incrementally maintained 64-bit Zobrist key.
func (p *Position) Hash() uint64 {
	return p.bd.Hash()
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	if p.bd.Wtomove {
		return White
	}
	return Black
}

// WhiteToMove reports whether White is to move.
func (p *Position) WhiteToMove() bool {
	return p.bd.Wtomove
}

// Clone returns a deep copy, including the history used for repetition
// detection.
func (p *Position) Clone() *Position {
	return &Position{bd: *p.bd.Clone()}
}

// LegalMoves generates all legal moves in the current position.
func (p *Position) LegalMoves() []Move {
	return p.bd.GenerateLegalMoves()
}

// Push applies a legal move. Applying a move not produced by LegalMoves is
// undefined behavior in the underlying library.
func (p *Position) Push(m Move) {
	p.bd.Make(m)
}

// Pop undoes the most recent Push.
func (p *Position) Pop() {
	p.bd.Undo()
}

// PushNull passes the turn without moving, updating the hash and clearing
// the en passant square. Used by null-move pruning.
func (p *Position) PushNull() {
	p.bd.MakeNullMove()
}

// PopNull undoes a PushNull.
func (p *Position) PopNull() {
	p.bd.UndoNullMove()
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.bd.OurKingInCheck()
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.bd.GenerateLegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal moves and is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.bd.GenerateLegalMoves()) == 0
}

// IsRepetition reports whether the current position occurred at least n
// times in the game history, including the present occurrence.
func (p *Position) IsRepetition(n int) bool {
	return p.bd.IsRepetition(n)
}

// IsInsufficientMaterial reports whether neither side can mate.
func (p *Position) IsInsufficientMaterial() bool {
	return p.bd.IsInsufficientMaterial()
}

// IsFiftyMoves reports whether the fifty-move counter has run out.
func (p *Position) IsFiftyMoves() bool {
	return p.bd.Halfmoveclock >= 100
}

// IsCapture reports whether m captures a piece, including en passant.
func (p *Position) IsCapture(m Move) bool {
	them := &p.bd.Black
	if !p.bd.Wtomove {
		them = &p.bd.White
	}
	if them.All&(uint64(1)<<m.To()) != 0 {
		return true
	}
	return p.IsEnPassant(m)
}

// IsEnPassant reports whether m is an en passant capture: a pawn changing
// file onto an empty square.
func (p *Position) IsEnPassant(m Move) bool {
	us := &p.bd.White
	if !p.bd.Wtomove {
		us = &p.bd.Black
	}
	if us.Pawns&(uint64(1)<<m.From()) == 0 {
		return false
	}
	if m.From()&7 == m.To()&7 {
		return false
	}
	occupied := p.bd.White.All | p.bd.Black.All
	return occupied&(uint64(1)<<m.To()) == 0
}

// IsCastling reports whether m is a castling move (the king travelling two
// files).
func (p *Position) IsCastling(m Move) bool {
	piece, _ := p.PieceAt(m.From())
	if piece != King {
		return false
	}
	fromFile, toFile := int(m.From()&7), int(m.To()&7)
	diff := fromFile - toFile
	return diff == 2 || diff == -2
}

// GivesCheck reports whether applying m puts the opponent in check. The move
// must be legal.
func (p *Position) GivesCheck(m Move) bool {
	p.bd.Make(m)
	check := p.bd.OurKingInCheck()
	p.bd.Undo()
	return check
}

// PieceAt returns the piece on the given square (0-63) and its color.
// Returns NoPiece for an empty square.
func (p *Position) PieceAt(sq uint8) (Piece, Color) {
	mask := uint64(1) << sq
	if p.bd.White.All&mask != 0 {
		return pieceOn(&p.bd.White, mask), White
	}
	if p.bd.Black.All&mask != 0 {
		return pieceOn(&p.bd.Black, mask), Black
	}
	return NoPiece, White
}

// Count returns the number of pieces of the given type and color.
func (p *Position) Count(piece Piece, c Color) int {
	return bits.OnesCount64(p.PieceBitboard(piece, c))
}

// PieceBitboard returns the bitboard for the given piece type and color.
// Squares are numbered with little-endian rank-file mapping (a1 = 0).
func (p *Position) PieceBitboard(piece Piece, c Color) uint64 {
	side := &p.bd.White
	if c == Black {
		side = &p.bd.Black
	}
	switch piece {
	case Pawn:
		return side.Pawns
	case Knight:
		return side.Knights
	case Bishop:
		return side.Bishops
	case Rook:
		return side.Rooks
	case Queen:
		return side.Queens
	case King:
		return side.Kings
	}
	return 0
}

// KingSquare returns the square of the given color's king.
func (p *Position) KingSquare(c Color) uint8 {
	return uint8(bits.TrailingZeros64(p.PieceBitboard(King, c)))
}

// FindMove resolves a long-algebraic move string ("e2e4", "e7e8q") against
// the legal moves of the current position. Returns NoMove when the string
// does not name a legal move.
func (p *Position) FindMove(uci string) Move {
	for _, m := range p.bd.GenerateLegalMoves() {
		if m.String() == uci {
			return m
		}
	}
	return NoMove
}

func pieceOn(side *dragontoothmg.Bitboards, mask uint64) Piece {
	switch {
	case side.Pawns&mask != 0:
		return Pawn
	case side.Knights&mask != 0:
		return Knight
	case side.Bishops&mask != 0:
		return Bishop
	case side.Rooks&mask != 0:
		return Rook
	case side.Queens&mask != 0:
		return Queen
	case side.Kings&mask != 0:
		return King
	}
	return NoPiece
}

// SquareName returns the algebraic name of a square index ("e4").
func SquareName(sq uint8) string {
	return dragontoothmg.IndexToAlgebraic(dragontoothmg.Square(sq))
}
