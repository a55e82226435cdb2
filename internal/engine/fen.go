// Package engine provides legal move generation, move execution and
// position analysis on top of the chess.Position arena.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field indices, 1-based as reported in ParseError.Index.
const (
	fieldPlacement = iota + 1
	fieldSideToMove
	fieldCastling
	fieldEnPassant
	fieldHalfmove
	fieldFullmove
	numFENFields = fieldFullmove
)

var fenFieldNames = [...]string{
	fieldPlacement:  "placement",
	fieldSideToMove: "side to move",
	fieldCastling:   "castling",
	fieldEnPassant:  "en passant",
	fieldHalfmove:   "halfmove clock",
	fieldFullmove:   "fullmove number",
}

func fenError(field int, expected, got string) *errors.ParseError {
	return &errors.ParseError{
		Field:    fenFieldNames[field],
		Index:    field,
		Expected: expected,
		Got:      got,
	}
}

// NewPositionFromFEN creates a position from a FEN string. Every failure is
// a *errors.ParseError wrapping errors.ErrInvalidFEN.
func NewPositionFromFEN(fen string) (*chess.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != numFENFields {
		return nil, &errors.ParseError{
			Field:    "fields",
			Expected: "6 space-separated fields",
			Got:      strconv.Itoa(len(parts)),
		}
	}

	pos := chess.NewPosition()

	if err := parsePiecePositions(pos, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(pos, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}
	if err := parseClocks(pos, parts[4], parts[5]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(pos, parts[3]); err != nil {
		return nil, err
	}

	return pos, nil
}

// parsePiecePositions parses the piece placement field, rank 8 first.
func parsePiecePositions(pos *chess.Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fieldPlacement, "8 ranks", strconv.Itoa(len(ranks)))
	}

	for i, rankText := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > chess.BoardSize {
					return fenError(fieldPlacement, fmt.Sprintf("8 files in rank %d", rank+1), strconv.Itoa(file))
				}
				continue
			}

			colour, kind, ok := chess.KindFromLetter(c)
			if !ok {
				return fenError(fieldPlacement, "piece letter or digit", fmt.Sprintf("%q", c))
			}
			if file >= chess.BoardSize {
				return fenError(fieldPlacement, fmt.Sprintf("8 files in rank %d", rank+1), strconv.Itoa(file+1))
			}
			if kind == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return fenError(fieldPlacement, "no pawns on ranks 1 and 8", fmt.Sprintf("%q in rank %d", c, rank+1))
			}

			sq, _ := chess.NewSquare(file, rank)
			id, err := pos.Place(colour, kind, sq)
			if err != nil {
				return &errors.ParseError{
					Field:    fenFieldNames[fieldPlacement],
					Index:    fieldPlacement,
					Expected: "one king per side",
					Got:      err.Error(),
				}
			}

			piece := pos.Piece(id)
			switch kind {
			case chess.Pawn:
				piece.Moved = rank != chess.PawnRank(colour)
			case chess.King, chess.Rook:
				// Castling letters clear this for pieces that keep their rights.
				piece.Moved = true
			}
			file++
		}
		if file != chess.BoardSize {
			return fenError(fieldPlacement, fmt.Sprintf("8 files in rank %d", rank+1), strconv.Itoa(file))
		}
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if pos.King(c) == chess.NoPiece {
			return fenError(fieldPlacement, "one king per side", "no "+strings.ToLower(c.String())+" king")
		}
		recordCornerRooks(pos, c)
	}
	return nil
}

// recordCornerRooks remembers the rooks standing on a colour's original
// corners; they are the only rooks castling can ever move.
func recordCornerRooks(pos *chess.Position, c chess.Colour) {
	for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
		id := pos.PieceAt(rookHome(c, side))
		if id == chess.NoPiece {
			continue
		}
		if p := pos.Piece(id); p.Colour == c && p.Kind == chess.Rook {
			pos.SetCastlingRook(c, side, id)
		}
	}
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, field string) error {
	switch field {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fenError(fieldSideToMove, `"w" or "b"`, fmt.Sprintf("%q", field))
	}
	return nil
}

// parseCastlingRights translates each castling letter into unmoved flags on
// the king and the matching corner rook.
func parseCastlingRights(pos *chess.Position, field string) error {
	if field == "-" {
		return nil
	}

	var seen [2][2]bool
	for i := 0; i < len(field); i++ {
		c := field[i]
		var colour chess.Colour
		var side chess.CastleSide
		switch c {
		case 'K':
			colour, side = chess.White, chess.Kingside
		case 'Q':
			colour, side = chess.White, chess.Queenside
		case 'k':
			colour, side = chess.Black, chess.Kingside
		case 'q':
			colour, side = chess.Black, chess.Queenside
		default:
			return fenError(fieldCastling, `"-" or a subset of "KQkq"`, fmt.Sprintf("%q", c))
		}
		if seen[colour][side] {
			return fenError(fieldCastling, "each letter at most once", fmt.Sprintf("repeated %q", c))
		}
		seen[colour][side] = true

		king := pos.Piece(pos.King(colour))
		if king.Square != kingHome(colour) {
			return fenError(fieldCastling, fmt.Sprintf("king on %s for %q", kingHome(colour), c), "king on "+king.Square.String())
		}
		rookID := pos.CastlingRook(colour, side)
		if rookID == chess.NoPiece {
			return fenError(fieldCastling, fmt.Sprintf("rook on %s for %q", rookHome(colour, side), c), "no rook")
		}
		king.Moved = false
		pos.Piece(rookID).Moved = false
	}
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *chess.Position, halfmove, fullmove string) error {
	n, err := strconv.Atoi(halfmove)
	if err != nil || n < 0 {
		return fenError(fieldHalfmove, "non-negative integer", fmt.Sprintf("%q", halfmove))
	}
	pos.HalfmoveClock = n

	n, err = strconv.Atoi(fullmove)
	if err != nil || n < 1 {
		return fenError(fieldFullmove, "positive integer", fmt.Sprintf("%q", fullmove))
	}
	pos.FullmoveNumber = n
	return nil
}

// parseEnPassant infers the pawn that just made a double step and appends
// a synthetic history entry for it, so en passant eligibility keeps coming
// from history alone. A target that does not match the board is rejected.
func parseEnPassant(pos *chess.Position, field string) error {
	if field == "-" {
		return nil
	}
	target, err := chess.ParseSquare(field)
	if err != nil {
		return fenError(fieldEnPassant, `"-" or a square`, fmt.Sprintf("%q", field))
	}

	mover := pos.ToMove.Opposite()
	wantRank := chess.PawnRank(mover) + chess.ColourOffset(mover)
	if target.Rank() != wantRank {
		return fenError(fieldEnPassant, fmt.Sprintf("target on rank %d with %s to move", wantRank+1, strings.ToLower(pos.ToMove.String())), field)
	}

	dir := chess.ColourOffset(mover)
	pawnSq, _ := target.Offset(0, dir)
	origin, _ := target.Offset(0, -dir)

	pawnID := pos.PieceAt(pawnSq)
	if pawnID == chess.NoPiece || pos.Piece(pawnID).Kind != chess.Pawn || pos.Piece(pawnID).Colour != mover {
		return fenError(fieldEnPassant, fmt.Sprintf("%s pawn on %s", strings.ToLower(mover.String()), pawnSq), field)
	}
	if pos.PieceAt(target) != chess.NoPiece || pos.PieceAt(origin) != chess.NoPiece {
		return fenError(fieldEnPassant, fmt.Sprintf("empty %s and %s", target, origin), field)
	}

	pos.History = append(pos.History, chess.MoveRecord{
		Piece:        pawnID,
		From:         origin,
		To:           pawnSq,
		Captured:     chess.NoPiece,
		CapturedOn:   chess.NoSquare,
		RookPiece:    chess.NoPiece,
		RookFrom:     chess.NoSquare,
		RookTo:       chess.NoSquare,
		PrevHalfmove: pos.HalfmoveClock,
		PrevFullmove: pos.FullmoveNumber,
		Synthetic:    true,
	})
	return nil
}

// PositionToFEN converts a position to a FEN string.
func PositionToFEN(pos *chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	writeSideToMove(&sb, pos)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos)
	sb.WriteByte(' ')
	sb.WriteString(pos.EnPassantTarget().String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			sq, _ := chess.NewSquare(file, rank)
			id := pos.PieceAt(sq)
			if id == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pos.Piece(id).Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, pos *chess.Position) {
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights emits a letter for every king/rook pair that has not
// moved, in KQkq order.
func writeCastlingRights(sb *strings.Builder, pos *chess.Position) {
	hasCastling := false
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			if !castlingRight(pos, c, side) {
				continue
			}
			letter := byte('K')
			if side == chess.Queenside {
				letter = 'Q'
			}
			if c == chess.Black {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// NewInitialPosition creates a position with the standard starting setup.
func NewInitialPosition() *chess.Position {
	pos, err := NewPositionFromFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return pos
}
