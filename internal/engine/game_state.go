package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// InCheck returns true if any live opposing piece attacks colour's king.
func InCheck(pos *chess.Position, colour chess.Colour) bool {
	kingID := pos.King(colour)
	if kingID == chess.NoPiece {
		return false
	}
	ksq := pos.Piece(kingID).Square
	for _, id := range pos.Roster(colour.Opposite()) {
		if Attacks(pos, id, chess.NoPiece).Has(ksq) {
			return true
		}
	}
	return false
}

// HasLegalMoves returns true if colour has at least one legal move. The
// caches are used when they describe colour; otherwise legality is computed
// without touching them.
func HasLegalMoves(pos *chess.Position, colour chess.Colour) bool {
	if pos.MovesAssigned(colour) {
		for _, id := range pos.Roster(colour) {
			if pos.Piece(id).Legal != 0 {
				return true
			}
		}
		return false
	}
	for _, set := range computeLegal(pos, colour) {
		if set != 0 {
			return true
		}
	}
	return false
}

// InCheckmate returns true if colour is in check with no legal move.
func InCheckmate(pos *chess.Position, colour chess.Colour) bool {
	return InCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// InStalemate returns true if colour is not in check but has no legal move.
func InStalemate(pos *chess.Position, colour chess.Colour) bool {
	return !InCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(pos *chess.Position) bool {
	return InCheckmate(pos, pos.ToMove)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(pos *chess.Position) bool {
	return InStalemate(pos, pos.ToMove)
}
