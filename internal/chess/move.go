package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Move is a request to move whatever stands on From to To.
// Promotion is NoKind unless a pawn reaches its last rank.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

// String returns coordinate notation such as "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseMove parses coordinate notation ("e2e4", "e7e8q").
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: text}
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return Move{}, &errors.MoveError{Err: err, MoveText: text}
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, &errors.MoveError{Err: err, MoveText: text}
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		_, kind, ok := KindFromLetter(text[4])
		if !ok || kind == Pawn || kind == King {
			return Move{}, &errors.MoveError{
				Err:      fmt.Errorf("bad promotion piece %q: %w", text[4], errors.ErrIllegalMove),
				MoveText: text,
			}
		}
		m.Promotion = kind
	}
	return m, nil
}

// MoveRecord is one entry of a Position's append-only history. It holds
// everything Revert needs to restore the position exactly.
type MoveRecord struct {
	Piece PieceID
	From  Square
	To    Square

	// Captured is NoPiece unless the move took something. CapturedOn
	// differs from To only for en passant.
	Captured   PieceID
	CapturedOn Square
	EnPassant  bool

	// Castling rook relocation; RookPiece is NoPiece for other moves.
	RookPiece     PieceID
	RookFrom      Square
	RookTo        Square
	RookPrevMoved bool

	// Promoted is the kind the pawn became, or NoKind.
	Promoted Kind

	PrevMoved    bool
	PrevHalfmove int
	PrevFullmove int

	// Synthetic entries are reconstructed from a FEN en passant field.
	// They carry no undo information.
	Synthetic bool
}

// Move returns the move the record describes.
func (r MoveRecord) Move() Move {
	return Move{From: r.From, To: r.To, Promotion: r.Promoted}
}

// IsCastle reports whether the record moved a rook alongside the king.
func (r MoveRecord) IsCastle() bool {
	return r.RookPiece != NoPiece
}
