package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Status summarises the position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	FiftyMoveDraw
	InsufficientMaterialDraw
)

// String returns the string representation of a status.
func (s Status) String() string {
	names := []string{"ongoing", "check", "checkmate", "stalemate", "fifty-move rule", "insufficient material"}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// IsTerminal reports whether the game cannot continue.
func (s Status) IsTerminal() bool {
	return s != Ongoing && s != Check
}

// DrawRuleResult contains the results of draw rule detection.
type DrawRuleResult struct {
	// HasFiftyMoveRule is true once 100 half-moves have passed without a
	// pawn move or capture.
	HasFiftyMoveRule bool

	// Has75MoveRule is true at 150 such half-moves.
	Has75MoveRule bool

	// HasInsufficientMaterial is true if neither side can mate.
	HasInsufficientMaterial bool
}

// AnalyzeDrawRules reports which position-only draw conditions hold.
// Repetition needs the game's history of positions and is tracked by the
// session.
func AnalyzeDrawRules(pos *chess.Position) DrawRuleResult {
	return DrawRuleResult{
		HasFiftyMoveRule:        IsFiftyMoveRule(pos),
		Has75MoveRule:           pos.HalfmoveClock >= 150,
		HasInsufficientMaterial: HasInsufficientMaterial(pos),
	}
}

// IsFiftyMoveRule returns true if the halfmove clock has reached 100.
func IsFiftyMoveRule(pos *chess.Position) bool {
	return pos.HalfmoveClock >= 100
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(pos *chess.Position) bool {
	var minors [2][]chess.Kind
	var bishopOnLight [2]bool

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range pos.Roster(colour) {
			p := pos.Piece(id)
			switch p.Kind {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			case chess.Bishop:
				bishopOnLight[colour] = isLightSquare(p.Square)
			}
			minors[colour] = append(minors[colour], p.Kind)
		}
	}

	white, black := minors[chess.White], minors[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1, len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0] == chess.Bishop && black[0] == chess.Bishop &&
			bishopOnLight[chess.White] == bishopOnLight[chess.Black]
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// Evaluate combines the mate, stalemate and draw queries for the side to
// move. Checkmate and stalemate take precedence over the draw rules.
func Evaluate(pos *chess.Position) Status {
	colour := pos.ToMove
	inCheck := InCheck(pos, colour)
	hasMoves := HasLegalMoves(pos, colour)

	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case HasInsufficientMaterial(pos):
		return InsufficientMaterialDraw
	case IsFiftyMoveRule(pos):
		return FiftyMoveDraw
	case inCheck:
		return Check
	}
	return Ongoing
}
