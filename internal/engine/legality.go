package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// checkState is the per-turn summary legality is derived from.
type checkState struct {
	king     chess.PieceID
	attacked chess.SquareSet
	checkers []chess.PieceID

	// pins maps a pinned piece to the ray it may move along, pinner
	// included.
	pins map[chess.PieceID]chess.SquareSet
}

// analyse gathers attacked squares, checkers and pins for colour's king.
// The king is excluded from the occupancy used for enemy attacks, so a
// square behind it on a checking line counts as attacked.
func analyse(pos *chess.Position, colour chess.Colour) checkState {
	st := checkState{king: pos.King(colour)}
	if st.king == chess.NoPiece {
		return st
	}
	ksq := pos.Piece(st.king).Square
	occ := pos.Occupancy()
	own := pos.OccupancyOf(colour)

	for _, id := range pos.Roster(colour.Opposite()) {
		a := Attacks(pos, id, st.king)
		st.attacked |= a
		if a.Has(ksq) {
			st.checkers = append(st.checkers, id)
		}

		enemy := pos.Piece(id)
		if !alignedFor(enemy.Kind, enemy.Square, ksq) {
			continue
		}
		ray := between(ksq, enemy.Square)
		blockers := ray & occ
		if blockers.Len() == 1 && blockers&own != 0 {
			if st.pins == nil {
				st.pins = make(map[chess.PieceID]chess.SquareSet)
			}
			st.pins[pos.PieceAt(blockers.Squares()[0])] = ray | enemy.Square.Bit()
		}
	}
	return st
}

// alignedFor reports whether a slider of kind k on from could attack to
// along an open line.
func alignedFor(k chess.Kind, from, to chess.Square) bool {
	df := abs(to.File() - from.File())
	dr := abs(to.Rank() - from.Rank())
	straight := df == 0 || dr == 0
	diagonal := df == dr
	switch k {
	case chess.Rook:
		return straight
	case chess.Bishop:
		return diagonal
	case chess.Queen:
		return straight || diagonal
	}
	return false
}

// computeLegal returns every piece's legal destinations for colour,
// indexed by PieceID. It reads the position and never mutates it.
func computeLegal(pos *chess.Position, colour chess.Colour) []chess.SquareSet {
	legal := make([]chess.SquareSet, pos.NumPieces())
	st := analyse(pos, colour)
	if st.king == chess.NoPiece {
		return legal
	}
	king := pos.Piece(st.king)
	ksq := king.Square

	kingMoves := kingAttacks[ksq] &^ pos.OccupancyOf(colour) &^ st.attacked
	if len(st.checkers) == 0 {
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			dest, ok := castleDestination(pos, colour, side)
			if !ok {
				continue
			}
			transit, _ := ksq.Offset(castleDirection(side), 0)
			if !st.attacked.Has(transit) && !st.attacked.Has(dest) {
				kingMoves |= dest.Bit()
			}
		}
	}
	legal[st.king] = kingMoves

	if len(st.checkers) >= 2 {
		return legal
	}

	mask := ^chess.SquareSet(0)
	epEvades := false
	if len(st.checkers) == 1 {
		checker := pos.Piece(st.checkers[0])
		mask = checker.Square.Bit()
		if isSlider(checker.Kind) {
			mask |= between(ksq, checker.Square)
		}
		if last, ok := pos.LastMove(); ok && last.Piece == st.checkers[0] && pos.EnPassantTarget() != chess.NoSquare {
			epEvades = true
		}
	}

	for _, id := range pos.Roster(colour) {
		if id == st.king {
			continue
		}
		p := pos.Piece(id)
		pseudo := PseudoMoves(pos, id)
		moves := pseudo & mask

		var epTarget chess.Square = chess.NoSquare
		if p.Kind == chess.Pawn {
			if target, ok := enPassantTarget(pos, p); ok && pseudo.Has(target) {
				epTarget = target
				if epEvades {
					moves |= target.Bit()
				}
			}
		}

		if ray, pinned := st.pins[id]; pinned {
			moves &= ray
		}
		if epTarget != chess.NoSquare && moves.Has(epTarget) && enPassantExposesKing(pos, p, epTarget, ksq) {
			moves &^= epTarget.Bit()
		}
		legal[id] = moves
	}
	return legal
}

// enPassantExposesKing reports whether removing both the capturing pawn and
// its victim from their squares opens a slider line onto the king. Ordinary
// pin rays miss this because two pieces leave the line at once.
func enPassantExposesKing(pos *chess.Position, pawn *chess.Piece, target, ksq chess.Square) bool {
	last, _ := pos.LastMove()
	victim := pos.Piece(last.Piece)

	occ := pos.Occupancy()
	occ &^= pawn.Square.Bit() | victim.Square.Bit()
	occ |= target.Bit()

	enemy := pawn.Colour.Opposite()
	var straight, diagonal chess.SquareSet
	for _, id := range pos.Roster(enemy) {
		if id == last.Piece {
			continue
		}
		e := pos.Piece(id)
		switch e.Kind {
		case chess.Rook:
			straight |= e.Square.Bit()
		case chess.Bishop:
			diagonal |= e.Square.Bit()
		case chess.Queen:
			straight |= e.Square.Bit()
			diagonal |= e.Square.Bit()
		}
	}
	return slide(ksq, occ, straightDirs)&straight != 0 || slide(ksq, occ, diagonalDirs)&diagonal != 0
}

// AssignLegalMoves computes legal moves for colour once and stores them in
// each piece's Legal cache; pieces of the other colour are cleared.
func AssignLegalMoves(pos *chess.Position, colour chess.Colour) {
	legal := computeLegal(pos, colour)
	pos.InvalidateMoves()
	for i, set := range legal {
		pos.Piece(chess.PieceID(i)).Legal = set
	}
	pos.MarkMovesAssigned(colour)
}

// ensureAssigned refreshes the caches for the side to move if stale.
func ensureAssigned(pos *chess.Position) {
	if !pos.MovesAssigned(pos.ToMove) {
		AssignLegalMoves(pos, pos.ToMove)
	}
}

// LegalMoves returns the legal destinations of the piece on sq. Empty
// squares and pieces of the side not to move have none.
func LegalMoves(pos *chess.Position, sq chess.Square) chess.SquareSet {
	id := pos.PieceAt(sq)
	if id == chess.NoPiece {
		return 0
	}
	return LegalMovesFor(pos, id)
}

// LegalMovesFor returns the legal destinations of a piece.
func LegalMovesFor(pos *chess.Position, id chess.PieceID) chess.SquareSet {
	ensureAssigned(pos)
	return pos.Piece(id).Legal
}

// LegalMoveList lists every legal move of the side to move. A pawn move to
// the last rank appears once per promotion kind.
func LegalMoveList(pos *chess.Position) []chess.Move {
	ensureAssigned(pos)
	var moves []chess.Move
	for _, id := range pos.Roster(pos.ToMove) {
		p := pos.Piece(id)
		promotes := p.Kind == chess.Pawn
		for _, to := range p.Legal.Squares() {
			if promotes && to.Rank() == chess.PromotionRank(p.Colour) {
				for _, k := range chess.PromotionKinds {
					moves = append(moves, chess.Move{From: p.Square, To: to, Promotion: k})
				}
				continue
			}
			moves = append(moves, chess.Move{From: p.Square, To: to})
		}
	}
	return moves
}

// countLegalMoves counts legal moves for the side to move without touching
// the caches, promotions counted per kind.
func countLegalMoves(pos *chess.Position) uint64 {
	legal := computeLegal(pos, pos.ToMove)
	var n uint64
	for _, id := range pos.Roster(pos.ToMove) {
		p := pos.Piece(id)
		set := legal[id]
		if p.Kind == chess.Pawn {
			promo := set & rankMask(chess.PromotionRank(p.Colour))
			n += uint64(promo.Len()) * uint64(len(chess.PromotionKinds))
			set &^= promo
		}
		n += uint64(set.Len())
	}
	return n
}

// rankMask returns all eight squares of a rank.
func rankMask(rank int) chess.SquareSet {
	return chess.SquareSet(0xFF) << uint(rank*chess.BoardSize)
}
