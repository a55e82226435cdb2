package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Position holds the full game state: an arena of piece records, a grid of
// indices into that arena, per-colour rosters of live pieces, king and
// castling-rook references, side to move, clocks and move history.
//
// A Position is not safe for concurrent use. Callers that share one must
// serialise access; use Clone to hand a copy to another goroutine.
type Position struct {
	pieces  []Piece
	grid    [NumSquares]PieceID
	rosters [2][]PieceID
	occ     [2]SquareSet
	kings   [2]PieceID

	// Rooks found on their original corners at load, indexed by colour
	// then CastleSide.
	castlingRooks [2][2]PieceID

	// Who has the next move.
	ToMove Colour

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current move number, incremented after Black moves.
	FullmoveNumber int

	// History is append-only during play; Revert pops the last entry.
	History []MoveRecord

	legalFor      Colour
	legalAssigned bool
}

// NewPosition creates an empty position with White to move.
func NewPosition() *Position {
	p := &Position{
		ToMove:         White,
		FullmoveNumber: 1,
		kings:          [2]PieceID{NoPiece, NoPiece},
		castlingRooks:  [2][2]PieceID{{NoPiece, NoPiece}, {NoPiece, NoPiece}},
	}
	for i := range p.grid {
		p.grid[i] = NoPiece
	}
	return p
}

// Place adds a new live piece to the arena on an empty square.
func (p *Position) Place(colour Colour, kind Kind, sq Square) (PieceID, error) {
	if !sq.Valid() {
		return NoPiece, &errors.OutOfBoundsError{File: sq.File(), Rank: sq.Rank()}
	}
	if kind <= NoKind || kind >= NumKinds {
		return NoPiece, fmt.Errorf("unknown piece kind %d: %w", kind, errors.ErrInvariantViolation)
	}
	if occupant := p.grid[sq]; occupant != NoPiece {
		return NoPiece, &errors.InvariantViolation{
			Piece:  p.pieces[occupant],
			Detail: "square already occupied",
		}
	}
	if kind == King && p.kings[colour] != NoPiece {
		return NoPiece, &errors.InvariantViolation{
			Piece:  p.pieces[p.kings[colour]],
			Roster: rosterName(colour),
			Detail: "second king",
		}
	}

	id := PieceID(len(p.pieces))
	p.pieces = append(p.pieces, Piece{Colour: colour, Kind: kind, Square: sq, Live: true})
	p.grid[sq] = id
	p.rosters[colour] = append(p.rosters[colour], id)
	p.occ[colour] |= sq.Bit()
	if kind == King {
		p.kings[colour] = id
	}
	p.legalAssigned = false
	return id, nil
}

// PieceAt returns the ID of the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	return p.grid[sq]
}

// Piece returns the arena record for id. The pointer stays valid until the
// next Place.
func (p *Position) Piece(id PieceID) *Piece {
	return &p.pieces[id]
}

// NumPieces returns the arena size, captured pieces included.
func (p *Position) NumPieces() int {
	return len(p.pieces)
}

// Roster returns the live piece IDs of a colour. The slice is owned by the
// position and must not be modified.
func (p *Position) Roster(c Colour) []PieceID {
	return p.rosters[c]
}

// King returns the king of a colour, or NoPiece if none was placed.
func (p *Position) King(c Colour) PieceID {
	return p.kings[c]
}

// CastlingRook returns the rook a castle on side would move.
func (p *Position) CastlingRook(c Colour, side CastleSide) PieceID {
	return p.castlingRooks[c][side]
}

// SetCastlingRook records the rook used for castling on side.
func (p *Position) SetCastlingRook(c Colour, side CastleSide, id PieceID) {
	p.castlingRooks[c][side] = id
}

// Occupancy returns every occupied square.
func (p *Position) Occupancy() SquareSet {
	return p.occ[White] | p.occ[Black]
}

// OccupancyOf returns the squares held by one colour.
func (p *Position) OccupancyOf(c Colour) SquareSet {
	return p.occ[c]
}

// Capture takes a live piece off the board. The record keeps its square.
func (p *Position) Capture(id PieceID) error {
	piece := &p.pieces[id]
	idx := p.rosterIndex(id)
	if !piece.Live || idx < 0 || p.grid[piece.Square] != id {
		return &errors.InvariantViolation{
			Piece:  *piece,
			Roster: rosterName(piece.Colour),
			Detail: "piece not in roster",
		}
	}
	roster := p.rosters[piece.Colour]
	p.rosters[piece.Colour] = append(roster[:idx], roster[idx+1:]...)
	p.grid[piece.Square] = NoPiece
	p.occ[piece.Colour] &^= piece.Square.Bit()
	piece.Live = false
	piece.Legal = 0
	p.legalAssigned = false
	return nil
}

// Reinstate puts a captured piece back on the square it was taken on.
func (p *Position) Reinstate(id PieceID) error {
	piece := &p.pieces[id]
	if piece.Live {
		return &errors.InvariantViolation{
			Piece:  *piece,
			Roster: rosterName(piece.Colour),
			Detail: "piece already live",
		}
	}
	if occupant := p.grid[piece.Square]; occupant != NoPiece {
		return &errors.InvariantViolation{
			Piece:  *piece,
			Roster: rosterName(piece.Colour),
			Detail: "square taken by " + p.pieces[occupant].String(),
		}
	}
	piece.Live = true
	p.grid[piece.Square] = id
	p.rosters[piece.Colour] = append(p.rosters[piece.Colour], id)
	p.occ[piece.Colour] |= piece.Square.Bit()
	p.legalAssigned = false
	return nil
}

// Relocate moves a live piece to an empty square. Captures must be made
// first with Capture.
func (p *Position) Relocate(id PieceID, to Square) error {
	piece := &p.pieces[id]
	if !piece.Live || p.grid[piece.Square] != id {
		return &errors.InvariantViolation{
			Piece:  *piece,
			Roster: rosterName(piece.Colour),
			Detail: "relocating a piece that is not on the board",
		}
	}
	if !to.Valid() {
		return &errors.OutOfBoundsError{File: to.File(), Rank: to.Rank()}
	}
	if occupant := p.grid[to]; occupant != NoPiece && occupant != id {
		return &errors.InvariantViolation{
			Piece:  *piece,
			Roster: rosterName(piece.Colour),
			Detail: "destination " + to.String() + " occupied",
		}
	}
	p.grid[piece.Square] = NoPiece
	p.occ[piece.Colour] &^= piece.Square.Bit()
	piece.Square = to
	p.grid[to] = id
	p.occ[piece.Colour] |= to.Bit()
	p.legalAssigned = false
	return nil
}

// LastMove returns the most recent history entry.
func (p *Position) LastMove() (MoveRecord, bool) {
	if len(p.History) == 0 {
		return MoveRecord{}, false
	}
	return p.History[len(p.History)-1], true
}

// EnPassantTarget returns the square skipped by a pawn double step made on
// the previous ply, or NoSquare. History is the only source of this fact.
func (p *Position) EnPassantTarget() Square {
	last, ok := p.LastMove()
	if !ok || last.Piece == NoPiece {
		return NoSquare
	}
	if p.pieces[last.Piece].Kind != Pawn || last.Promoted != NoKind {
		return NoSquare
	}
	dr := last.To.Rank() - last.From.Rank()
	if dr != 2 && dr != -2 {
		return NoSquare
	}
	sq, _ := last.From.Offset(0, dr/2)
	return sq
}

// MovesAssigned reports whether the legal caches are current for c.
func (p *Position) MovesAssigned(c Colour) bool {
	return p.legalAssigned && p.legalFor == c
}

// MarkMovesAssigned records that the legal caches now describe c's moves.
func (p *Position) MarkMovesAssigned(c Colour) {
	p.legalFor = c
	p.legalAssigned = true
}

// InvalidateMoves clears every cached legal set.
func (p *Position) InvalidateMoves() {
	for i := range p.pieces {
		p.pieces[i].Legal = 0
	}
	p.legalAssigned = false
}

// Clone returns a deep copy that shares no memory with p.
func (p *Position) Clone() *Position {
	c := *p
	c.pieces = append([]Piece(nil), p.pieces...)
	c.rosters[White] = append([]PieceID(nil), p.rosters[White]...)
	c.rosters[Black] = append([]PieceID(nil), p.rosters[Black]...)
	c.History = append([]MoveRecord(nil), p.History...)
	return &c
}

// Validate checks the arena, grid and roster agree, and that each side
// has exactly one live king.
func (p *Position) Validate() error {
	for _, c := range []Colour{White, Black} {
		k := p.kings[c]
		if k == NoPiece || !p.pieces[k].Live || p.pieces[k].Kind != King {
			return &errors.InvariantViolation{Roster: rosterName(c), Detail: "no live king"}
		}
		var occ SquareSet
		for _, id := range p.rosters[c] {
			piece := p.pieces[id]
			if !piece.Live || piece.Colour != c {
				return &errors.InvariantViolation{Piece: piece, Roster: rosterName(c), Detail: "roster holds a foreign or captured piece"}
			}
			if piece.Kind == King && id != k {
				return &errors.InvariantViolation{Piece: piece, Roster: rosterName(c), Detail: "second king"}
			}
			if p.grid[piece.Square] != id {
				return &errors.InvariantViolation{Piece: piece, Roster: rosterName(c), Detail: "grid disagrees with piece square"}
			}
			occ |= piece.Square.Bit()
		}
		if occ != p.occ[c] {
			return &errors.InvariantViolation{Roster: rosterName(c), Detail: "occupancy out of date"}
		}
	}
	for sq, id := range p.grid {
		if id == NoPiece {
			continue
		}
		if piece := p.pieces[id]; !piece.Live || piece.Square != Square(sq) {
			return &errors.InvariantViolation{Piece: piece, Roster: rosterName(piece.Colour), Detail: "grid points at " + Square(sq).String()}
		}
	}
	return nil
}

// String renders the grid as eight lines of FEN letters, rank 8 first,
// with '.' for empty squares.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		for file := 0; file < BoardSize; file++ {
			id := p.grid[rank*BoardSize+file]
			if id == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.pieces[id].Letter())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Position) rosterIndex(id PieceID) int {
	for i, rid := range p.rosters[p.pieces[id].Colour] {
		if rid == id {
			return i
		}
	}
	return -1
}

func rosterName(c Colour) string {
	return strings.ToLower(c.String())
}
