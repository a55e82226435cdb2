package chess

import (
	"fmt"
	"strings"
)

// PieceID indexes a piece in its Position's arena.
type PieceID int16

// NoPiece marks an empty square or an absent piece reference.
const NoPiece PieceID = -1

// Piece is one record in the arena. Captured pieces keep their record
// (with Live false and their last square) so a revert can re-index them.
type Piece struct {
	Colour Colour
	Kind   Kind
	Square Square
	Live   bool

	// Moved gates pawn double steps and castling.
	Moved bool

	// Legal caches the legal destinations computed for the side to move.
	Legal SquareSet
}

// Letter returns the FEN letter for the piece, lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		return l + ('a' - 'A')
	}
	return l
}

// String describes the piece, e.g. "white rook on h1".
func (p Piece) String() string {
	return fmt.Sprintf("%s %s on %s",
		strings.ToLower(p.Colour.String()), strings.ToLower(p.Kind.String()), p.Square)
}
