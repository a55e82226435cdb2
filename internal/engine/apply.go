package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// plannedMove is a move resolved against a position and checked for
// structural consistency, ready to be executed without failing halfway.
type plannedMove struct {
	piece      chess.PieceID
	from, to   chess.Square
	captured   chess.PieceID
	capturedOn chess.Square
	enPassant  bool
	rook       chess.PieceID
	rookFrom   chess.Square
	rookTo     chess.Square
	promotion  chess.Kind
}

func illegal(move chess.Move, format string, args ...interface{}) error {
	return &errors.MoveError{
		Err:      fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrIllegalMove),
		MoveText: move.String(),
	}
}

// promotable reports whether a pawn may become k.
func promotable(k chess.Kind) bool {
	for _, pk := range chess.PromotionKinds {
		if k == pk {
			return true
		}
	}
	return false
}

// planMove validates a move against the position. The destination must be
// one of the piece's pseudo-legal moves, so castling needs its rights and
// an empty path. King safety is not checked; AttemptMove does that.
func planMove(pos *chess.Position, move chess.Move) (plannedMove, error) {
	if !move.From.Valid() || !move.To.Valid() {
		return plannedMove{}, &errors.MoveError{Err: errors.ErrOutOfBounds, MoveText: move.String()}
	}
	id := pos.PieceAt(move.From)
	if id == chess.NoPiece {
		return plannedMove{}, illegal(move, "no piece on %s", move.From)
	}
	p := pos.Piece(id)
	if p.Colour != pos.ToMove {
		return plannedMove{}, illegal(move, "%s moved out of turn", p)
	}
	if move.From == move.To {
		return plannedMove{}, illegal(move, "null move")
	}

	plan := plannedMove{
		piece:      id,
		from:       move.From,
		to:         move.To,
		captured:   chess.NoPiece,
		capturedOn: chess.NoSquare,
		rook:       chess.NoPiece,
		rookFrom:   chess.NoSquare,
		rookTo:     chess.NoSquare,
	}

	if target := pos.PieceAt(move.To); target != chess.NoPiece {
		t := pos.Piece(target)
		if t.Colour == p.Colour {
			return plannedMove{}, illegal(move, "%s is occupied by %s", move.To, t)
		}
		if t.Kind == chess.King {
			return plannedMove{}, illegal(move, "kings cannot be captured")
		}
		plan.captured, plan.capturedOn = target, move.To
	}
	if !PseudoMoves(pos, id).Has(move.To) {
		return plannedMove{}, illegal(move, "%s cannot reach %s", p, move.To)
	}

	switch p.Kind {
	case chess.Pawn:
		if move.From.File() != move.To.File() && plan.captured == chess.NoPiece {
			victimSq, _ := chess.NewSquare(move.To.File(), move.From.Rank())
			victim := pos.PieceAt(victimSq)
			if victim == chess.NoPiece || pos.Piece(victim).Kind != chess.Pawn || pos.Piece(victim).Colour == p.Colour {
				return plannedMove{}, illegal(move, "no pawn to take en passant on %s", victimSq)
			}
			plan.captured, plan.capturedOn, plan.enPassant = victim, victimSq, true
		}
		if move.To.Rank() == chess.PromotionRank(p.Colour) {
			plan.promotion = move.Promotion
			if plan.promotion == chess.NoKind {
				plan.promotion = chess.Queen
			}
			if !promotable(plan.promotion) {
				return plannedMove{}, illegal(move, "cannot promote to %s", plan.promotion)
			}
		} else if move.Promotion != chess.NoKind {
			return plannedMove{}, illegal(move, "promotion before the last rank")
		}
	case chess.King:
		if move.Promotion != chess.NoKind {
			return plannedMove{}, illegal(move, "only pawns promote")
		}
		df := move.To.File() - move.From.File()
		if abs(df) == 2 && move.To.Rank() == move.From.Rank() {
			side := chess.Kingside
			if df < 0 {
				side = chess.Queenside
			}
			rook := pos.CastlingRook(p.Colour, side)
			if rook == chess.NoPiece || !pos.Piece(rook).Live || pos.Piece(rook).Square != rookHome(p.Colour, side) {
				return plannedMove{}, illegal(move, "no rook to castle with")
			}
			rookTo, _ := move.From.Offset(sign(df), 0)
			if pos.PieceAt(rookTo) != chess.NoPiece || plan.captured != chess.NoPiece {
				return plannedMove{}, illegal(move, "castling path blocked")
			}
			plan.rook, plan.rookFrom, plan.rookTo = rook, rookHome(p.Colour, side), rookTo
		}
	default:
		if move.Promotion != chess.NoKind {
			return plannedMove{}, illegal(move, "only pawns promote")
		}
	}
	return plan, nil
}

// Apply executes a move: captures (en passant included), castling rook
// relocation, promotion (queen unless told otherwise), flags, clocks, side
// to move and history. It returns the captured piece or NoPiece. Nothing is
// mutated when an error is returned.
func Apply(pos *chess.Position, move chess.Move) (chess.PieceID, error) {
	plan, err := planMove(pos, move)
	if err != nil {
		return chess.NoPiece, err
	}

	p := pos.Piece(plan.piece)
	rec := chess.MoveRecord{
		Piece:        plan.piece,
		From:         plan.from,
		To:           plan.to,
		Captured:     plan.captured,
		CapturedOn:   plan.capturedOn,
		EnPassant:    plan.enPassant,
		RookPiece:    plan.rook,
		RookFrom:     plan.rookFrom,
		RookTo:       plan.rookTo,
		Promoted:     plan.promotion,
		PrevMoved:    p.Moved,
		PrevHalfmove: pos.HalfmoveClock,
		PrevFullmove: pos.FullmoveNumber,
	}
	wasPawn := p.Kind == chess.Pawn

	if plan.captured != chess.NoPiece {
		if err := pos.Capture(plan.captured); err != nil {
			return chess.NoPiece, err
		}
	}
	if err := pos.Relocate(plan.piece, plan.to); err != nil {
		return chess.NoPiece, err
	}
	if plan.rook != chess.NoPiece {
		rook := pos.Piece(plan.rook)
		rec.RookPrevMoved = rook.Moved
		if err := pos.Relocate(plan.rook, plan.rookTo); err != nil {
			return chess.NoPiece, err
		}
		rook.Moved = true
	}
	if plan.promotion != chess.NoKind {
		p.Kind = plan.promotion
	}
	p.Moved = true

	if wasPawn || plan.captured != chess.NoPiece {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}
	if p.Colour == chess.Black {
		pos.FullmoveNumber++
	}
	pos.ToMove = p.Colour.Opposite()
	pos.History = append(pos.History, rec)
	pos.InvalidateMoves()

	return plan.captured, nil
}

// Revert takes back the last applied move exactly, returning its record.
// Entries synthesized from a FEN en passant field cannot be reverted.
func Revert(pos *chess.Position) (chess.MoveRecord, error) {
	rec, ok := pos.LastMove()
	if !ok || rec.Synthetic {
		return chess.MoveRecord{}, errors.ErrNothingToRevert
	}

	p := pos.Piece(rec.Piece)
	if err := pos.Relocate(rec.Piece, rec.From); err != nil {
		return chess.MoveRecord{}, err
	}
	if rec.Promoted != chess.NoKind {
		p.Kind = chess.Pawn
	}
	p.Moved = rec.PrevMoved

	if rec.RookPiece != chess.NoPiece {
		if err := pos.Relocate(rec.RookPiece, rec.RookFrom); err != nil {
			return chess.MoveRecord{}, err
		}
		pos.Piece(rec.RookPiece).Moved = rec.RookPrevMoved
	}
	if rec.Captured != chess.NoPiece {
		if err := pos.Reinstate(rec.Captured); err != nil {
			return chess.MoveRecord{}, err
		}
	}

	pos.HalfmoveClock = rec.PrevHalfmove
	pos.FullmoveNumber = rec.PrevFullmove
	pos.ToMove = p.Colour
	pos.History = pos.History[:len(pos.History)-1]
	pos.InvalidateMoves()

	return rec, nil
}

// MoveResult reports the outcome of AttemptMove.
type MoveResult struct {
	Applied bool
	Move    chess.Move

	// Captured is a copy of the captured piece's record, or nil.
	Captured *chess.Piece

	// Status of the side now to move.
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
}

// AttemptMove applies from-to only if it is in the legal set of the side to
// move. An illegal move is not an error: it returns Applied false and leaves
// the position untouched. promo may be NoKind (queen on the last rank).
func AttemptMove(pos *chess.Position, from, to chess.Square, promo chess.Kind) (MoveResult, error) {
	move := chess.Move{From: from, To: to, Promotion: promo}
	if !from.Valid() || !to.Valid() {
		return MoveResult{Move: move}, &errors.MoveError{Err: errors.ErrOutOfBounds, MoveText: move.String()}
	}

	id := pos.PieceAt(from)
	if id == chess.NoPiece || pos.Piece(id).Colour != pos.ToMove || !LegalMovesFor(pos, id).Has(to) {
		return MoveResult{Move: move}, nil
	}
	p := pos.Piece(id)
	promotes := p.Kind == chess.Pawn && to.Rank() == chess.PromotionRank(p.Colour)
	if promo != chess.NoKind && (!promotes || !promotable(promo)) {
		return MoveResult{Move: move}, nil
	}
	if promotes && promo == chess.NoKind {
		move.Promotion = chess.Queen
	}

	captured, err := Apply(pos, move)
	if err != nil {
		return MoveResult{Move: move}, err
	}

	res := MoveResult{Applied: true, Move: move}
	if captured != chess.NoPiece {
		c := *pos.Piece(captured)
		res.Captured = &c
	}

	side := pos.ToMove
	AssignLegalMoves(pos, side)
	res.IsCheck = InCheck(pos, side)
	hasMoves := HasLegalMoves(pos, side)
	res.IsCheckmate = res.IsCheck && !hasMoves
	res.IsStalemate = !res.IsCheck && !hasMoves
	return res, nil
}
