package chess

import (
	"math/bits"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Square is a board index, rank*8 + file, with a1 = 0 and h8 = 63.
type Square int8

// NoSquare marks the absence of a square.
const NoSquare Square = -1

// NewSquare builds a square from 0-based file and rank coordinates.
func NewSquare(file, rank int) (Square, error) {
	if !OnBoard(file, rank) {
		return NoSquare, &errors.OutOfBoundsError{File: file, Rank: rank}
	}
	return Square(rank*BoardSize + file), nil
}

// OnBoard reports whether file and rank are both in 0..7.
func OnBoard(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &errors.OutOfBoundsError{Text: s}
	}
	file := int(s[0]) - FileBase
	rank := int(s[1]) - RankBase
	if !OnBoard(file, rank) {
		return NoSquare, &errors.OutOfBoundsError{Text: s}
	}
	return Square(rank*BoardSize + file), nil
}

// MustSquare is like ParseSquare but panics on bad input. Intended for
// constants and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the 0-based file (0 = a).
func (s Square) File() int { return int(s) % BoardSize }

// Rank returns the 0-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) / BoardSize }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// Offset returns the square df files and dr ranks away, and whether it is
// still on the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	file, rank := s.File()+df, s.Rank()+dr
	if !OnBoard(file, rank) {
		return NoSquare, false
	}
	return Square(rank*BoardSize + file), true
}

// Bit returns the single-square set for s.
func (s Square) Bit() SquareSet {
	return SquareSet(1) << uint(s)
}

// String returns algebraic notation, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())})
}

// SquareSet is a bitset over the 64 squares.
type SquareSet uint64

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.Valid() && s&sq.Bit() != 0
}

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s | sq.Bit()
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares lists the members in ascending index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for s != 0 {
		idx := bits.TrailingZeros64(uint64(s))
		out = append(out, Square(idx))
		s &= s - 1
	}
	return out
}

// Strings lists the members in algebraic notation.
func (s SquareSet) Strings() []string {
	squares := s.Squares()
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	return out
}
