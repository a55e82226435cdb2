package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

var (
	knightJumps  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// Step attack tables for the non-sliding pieces, indexed by square.
var (
	knightAttacks [chess.NumSquares]chess.SquareSet
	kingAttacks   [chess.NumSquares]chess.SquareSet
	pawnAttacks   [2][chess.NumSquares]chess.SquareSet
)

func init() {
	for i := 0; i < chess.NumSquares; i++ {
		sq := chess.Square(i)
		for _, j := range knightJumps {
			if to, ok := sq.Offset(j[0], j[1]); ok {
				knightAttacks[sq] |= to.Bit()
			}
		}
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				if to, ok := sq.Offset(df, dr); ok {
					kingAttacks[sq] |= to.Bit()
				}
			}
		}
		for _, c := range []chess.Colour{chess.White, chess.Black} {
			dir := chess.ColourOffset(c)
			for _, df := range []int{-1, 1} {
				if to, ok := sq.Offset(df, dir); ok {
					pawnAttacks[c][sq] |= to.Bit()
				}
			}
		}
	}
}

// slide casts rays from sq in each direction, stopping at the board edge or
// at the first occupied square, which is included.
func slide(sq chess.Square, occ chess.SquareSet, dirs [][2]int) chess.SquareSet {
	var set chess.SquareSet
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			set |= next.Bit()
			if occ.Has(next) {
				break
			}
			cur = next
		}
	}
	return set
}

// isSlider reports whether a kind attacks along open lines.
func isSlider(k chess.Kind) bool {
	return k == chess.Bishop || k == chess.Rook || k == chess.Queen
}

// PseudoMoves returns the destinations a piece could reach by its movement
// pattern and the current occupancy, ignoring whether the move would leave
// its own king in check.
func PseudoMoves(pos *chess.Position, id chess.PieceID) chess.SquareSet {
	p := pos.Piece(id)
	if !p.Live {
		return 0
	}
	own := pos.OccupancyOf(p.Colour)
	occ := pos.Occupancy()

	switch p.Kind {
	case chess.Pawn:
		return pawnMoves(pos, p, occ)
	case chess.Knight:
		return knightAttacks[p.Square] &^ own
	case chess.Bishop:
		return slide(p.Square, occ, diagonalDirs) &^ own
	case chess.Rook:
		return slide(p.Square, occ, straightDirs) &^ own
	case chess.Queen:
		return (slide(p.Square, occ, diagonalDirs) | slide(p.Square, occ, straightDirs)) &^ own
	case chess.King:
		moves := kingAttacks[p.Square] &^ own
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			if dest, ok := castleDestination(pos, p.Colour, side); ok {
				moves |= dest.Bit()
			}
		}
		return moves
	default:
		panic(fmt.Sprintf("engine: unknown piece kind %d", p.Kind))
	}
}

// Attacks returns the squares a piece attacks, own-occupied (defended)
// squares included. The exclude piece is treated as absent so rays pass
// through it; pass the defending king to see the squares it cannot flee to.
func Attacks(pos *chess.Position, id, exclude chess.PieceID) chess.SquareSet {
	p := pos.Piece(id)
	if !p.Live {
		return 0
	}
	occ := pos.Occupancy()
	if exclude != chess.NoPiece {
		if ex := pos.Piece(exclude); ex.Live {
			occ &^= ex.Square.Bit()
		}
	}

	switch p.Kind {
	case chess.Pawn:
		return pawnAttacks[p.Colour][p.Square]
	case chess.Knight:
		return knightAttacks[p.Square]
	case chess.Bishop:
		return slide(p.Square, occ, diagonalDirs)
	case chess.Rook:
		return slide(p.Square, occ, straightDirs)
	case chess.Queen:
		return slide(p.Square, occ, diagonalDirs) | slide(p.Square, occ, straightDirs)
	case chess.King:
		return kingAttacks[p.Square]
	default:
		panic(fmt.Sprintf("engine: unknown piece kind %d", p.Kind))
	}
}

// pawnMoves generates pushes, captures and en passant for one pawn.
func pawnMoves(pos *chess.Position, p *chess.Piece, occ chess.SquareSet) chess.SquareSet {
	var moves chess.SquareSet
	dir := chess.ColourOffset(p.Colour)

	if one, ok := p.Square.Offset(0, dir); ok && !occ.Has(one) {
		moves |= one.Bit()
		if !p.Moved {
			if two, ok := p.Square.Offset(0, 2*dir); ok && !occ.Has(two) {
				moves |= two.Bit()
			}
		}
	}

	attacks := pawnAttacks[p.Colour][p.Square]
	moves |= attacks & pos.OccupancyOf(p.Colour.Opposite())

	if target, ok := enPassantTarget(pos, p); ok && attacks.Has(target) {
		moves |= target.Bit()
	}
	return moves
}

// enPassantTarget returns the square a pawn could capture onto en passant,
// based only on the last history entry.
func enPassantTarget(pos *chess.Position, p *chess.Piece) (chess.Square, bool) {
	target := pos.EnPassantTarget()
	if target == chess.NoSquare {
		return chess.NoSquare, false
	}
	last, _ := pos.LastMove()
	victim := pos.Piece(last.Piece)
	if !victim.Live || victim.Colour == p.Colour || victim.Square != last.To {
		return chess.NoSquare, false
	}
	if victim.Square.Rank() != p.Square.Rank() || abs(victim.Square.File()-p.Square.File()) != 1 {
		return chess.NoSquare, false
	}
	return target, true
}

// kingHome returns the square a king must start on to castle.
func kingHome(c chess.Colour) chess.Square {
	sq, _ := chess.NewSquare(4, chess.HomeRank(c))
	return sq
}

// rookHome returns the corner a castling rook starts on.
func rookHome(c chess.Colour, side chess.CastleSide) chess.Square {
	file := 7
	if side == chess.Queenside {
		file = 0
	}
	sq, _ := chess.NewSquare(file, chess.HomeRank(c))
	return sq
}

// castlingRight reports the static half of a castling right: king and rook
// unmoved, on their original squares, rook still live.
func castlingRight(pos *chess.Position, c chess.Colour, side chess.CastleSide) bool {
	kingID := pos.King(c)
	rookID := pos.CastlingRook(c, side)
	if kingID == chess.NoPiece || rookID == chess.NoPiece {
		return false
	}
	king, rook := pos.Piece(kingID), pos.Piece(rookID)
	return !king.Moved && king.Live && king.Square == kingHome(c) &&
		!rook.Moved && rook.Live && rook.Square == rookHome(c, side)
}

// HasCastlingRight reports whether c keeps the right to castle on side,
// ignoring whether the castle is currently playable.
func HasCastlingRight(pos *chess.Position, c chess.Colour, side chess.CastleSide) bool {
	return castlingRight(pos, c, side)
}

// castleDestination returns the king's destination for a castle whose
// right stands and whose path between king and rook is empty. Attacked
// squares are the legality engine's concern.
func castleDestination(pos *chess.Position, c chess.Colour, side chess.CastleSide) (chess.Square, bool) {
	if !castlingRight(pos, c, side) {
		return chess.NoSquare, false
	}
	home := kingHome(c)
	if between(home, rookHome(c, side))&pos.Occupancy() != 0 {
		return chess.NoSquare, false
	}
	return home.Offset(castleDirection(side)*2, 0)
}

// castleDirection is +1 towards the h-file, -1 towards the a-file.
func castleDirection(side chess.CastleSide) int {
	if side == chess.Queenside {
		return -1
	}
	return 1
}

// between returns the squares strictly between a and b when they share a
// rank, file or diagonal, and the empty set otherwise.
func between(a, b chess.Square) chess.SquareSet {
	df := b.File() - a.File()
	dr := b.Rank() - a.Rank()
	if df == 0 && dr == 0 {
		return 0
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return 0
	}
	stepF, stepR := sign(df), sign(dr)
	var set chess.SquareSet
	cur := a
	for {
		next, _ := cur.Offset(stepF, stepR)
		if next == b {
			return set
		}
		set |= next.Bit()
		cur = next
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
