package engine

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// mustPosition parses a FEN or aborts the test.
func mustPosition(t *testing.T, fen string) *chess.Position {
	t.Helper()
	pos, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q) error: %v", fen, err)
	}
	return pos
}

// pieceOn returns the piece on a square, failing the test when it is empty.
func pieceOn(t *testing.T, pos *chess.Position, square string) *chess.Piece {
	t.Helper()
	id := pos.PieceAt(chess.MustSquare(square))
	if id == chess.NoPiece {
		t.Fatalf("no piece on %s", square)
	}
	return pos.Piece(id)
}

func TestNewPositionFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*testing.T, *chess.Position)
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(t *testing.T, pos *chess.Position) {
				testutil.AssertEqual(t, pieceOn(t, pos, "e1").Kind, chess.King)
				testutil.AssertEqual(t, pieceOn(t, pos, "e8").Colour, chess.Black)
				testutil.AssertFalse(t, pieceOn(t, pos, "e2").Moved, "e2 pawn moved")
				testutil.AssertFalse(t, pieceOn(t, pos, "h1").Moved, "h1 rook moved")
				testutil.AssertEqual(t, len(pos.Roster(chess.White)), 16)
				testutil.AssertEqual(t, len(pos.Roster(chess.Black)), 16)
				testutil.AssertEqual(t, pos.ToMove, chess.White)
				testutil.AssertEqual(t, pos.FullmoveNumber, 1)
				testutil.AssertEqual(t, len(pos.History), 0)
			},
		},
		{
			name: "after 1.e4 synthesizes the double step",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(t *testing.T, pos *chess.Position) {
				last, ok := pos.LastMove()
				if !ok {
					t.Fatal("no synthetic history entry")
				}
				testutil.AssertTrue(t, last.Synthetic, "Synthetic")
				testutil.AssertEqual(t, last.From, chess.MustSquare("e2"))
				testutil.AssertEqual(t, last.To, chess.MustSquare("e4"))
				testutil.AssertEqual(t, pos.EnPassantTarget(), chess.MustSquare("e3"))
				testutil.AssertTrue(t, pieceOn(t, pos, "e4").Moved, "e4 pawn moved")
			},
		},
		{
			name: "castling letters clear moved flags",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1",
			checkFn: func(t *testing.T, pos *chess.Position) {
				testutil.AssertFalse(t, pieceOn(t, pos, "e1").Moved, "white king")
				testutil.AssertFalse(t, pieceOn(t, pos, "h1").Moved, "h1 rook")
				testutil.AssertTrue(t, pieceOn(t, pos, "a1").Moved, "a1 rook")
				testutil.AssertFalse(t, pieceOn(t, pos, "a8").Moved, "a8 rook")
				testutil.AssertTrue(t, pieceOn(t, pos, "h8").Moved, "h8 rook")
				testutil.AssertEqual(t, pos.CastlingRook(chess.White, chess.Queenside), pos.PieceAt(chess.MustSquare("a1")))
			},
		},
		{
			name: "pawns off their home rank have moved",
			fen:  "4k3/8/3p4/8/8/4P3/8/4K3 w - - 0 1",
			checkFn: func(t *testing.T, pos *chess.Position) {
				testutil.AssertTrue(t, pieceOn(t, pos, "e3").Moved, "e3 pawn")
				testutil.AssertTrue(t, pieceOn(t, pos, "d6").Moved, "d6 pawn")
			},
		},
		{
			name: "clocks",
			fen:  "2r5/3pk3/8/2P5/8/2K5/8/8 w - - 5 4",
			checkFn: func(t *testing.T, pos *chess.Position) {
				testutil.AssertEqual(t, pos.HalfmoveClock, 5)
				testutil.AssertEqual(t, pos.FullmoveNumber, 4)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			testutil.AssertNoError(t, pos.Validate())
			tt.checkFn(t, pos)
		})
	}
}

func TestNewPositionFromFEN_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		wantField string
	}{
		{"empty string", "", "fields"},
		{"five fields", "8/8/8/8/8/8/8/K6k w - - 0", "fields"},
		{"seven fields", InitialFEN + " extra", "fields"},
		{"seven ranks", "8/8/8/8/8/8/K6k w - - 0 1", "placement"},
		{"rank too long", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"rank too short", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"digits overflow", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"invalid piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKXNR w KQkq - 0 1", "placement"},
		{"missing black king", "8/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", "placement"},
		{"pawn on back rank", "4k2P/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"bad side to move", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "side to move"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/4K3 w X - 0 1", "castling"},
		{"repeated castling letter", "r3k2r/8/8/8/8/8/8/R3K2R w KK - 0 1", "castling"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1", "castling"},
		{"castling with displaced king", "r3k2r/8/8/8/8/8/8/R2K3R w K - 0 1", "castling"},
		{"en passant not a square", "4k3/8/8/8/4P3/8/8/4K3 b - z9 0 1", "en passant"},
		{"en passant wrong rank", "4k3/8/8/8/4P3/8/8/4K3 b - e6 0 1", "en passant"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 b - e3 0 1", "en passant"},
		{"en passant origin occupied", "4k3/8/8/8/4P3/8/4P3/4K3 b - e3 0 1", "en passant"},
		{"non-numeric halfmove", "4k3/8/8/8/8/8/8/4K3 w - - x 1", "halfmove clock"},
		{"negative halfmove", "4k3/8/8/8/8/8/8/4K3 w - - -1 1", "halfmove clock"},
		{"non-numeric fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 y", "fullmove number"},
		{"zero fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 0", "fullmove number"},
		{"negative fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 -3", "fullmove number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPositionFromFEN(tt.fen)
			if err == nil {
				t.Fatalf("NewPositionFromFEN(%q) = %v, want error", tt.fen, pos)
			}
			testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

			var perr *errors.ParseError
			if !stderrors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Field != tt.wantField {
				t.Errorf("ParseError.Field = %q, want %q (%v)", perr.Field, tt.wantField, err)
			}
		})
	}
}

func TestPositionToFEN_RoundTrip(t *testing.T) {
	tests := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, f := range testutil.PerftFixtures {
		tests = append(tests, f.FEN)
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			pos := mustPosition(t, fen)
			testutil.AssertEqual(t, PositionToFEN(pos), fen)
		})
	}
}

func TestPositionToFEN_AfterMoves(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		moves   []string
		wantFEN string
	}{
		{
			name:    "1.e4",
			fen:     InitialFEN,
			moves:   []string{"e2e4"},
			wantFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:    "1.Nf3",
			fen:     InitialFEN,
			moves:   []string{"g1f3"},
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name:    "1.e4 e5 2.Nf3",
			fen:     InitialFEN,
			moves:   []string{"e2e4", "e7e5", "g1f3"},
			wantFEN: "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		},
		{
			name:    "kingside castle",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			moves:   []string{"e1g1"},
			wantFEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 1 1",
		},
		{
			name:    "rook move drops one right",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1",
			moves:   []string{"a8b8"},
			wantFEN: "1r2k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQk - 1 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			for _, text := range tt.moves {
				m, err := chess.ParseMove(text)
				if err != nil {
					t.Fatalf("ParseMove(%q) error: %v", text, err)
				}
				if _, err := Apply(pos, m); err != nil {
					t.Fatalf("Apply(%s) error: %v", text, err)
				}
			}
			testutil.AssertEqual(t, PositionToFEN(pos), tt.wantFEN)
		})
	}
}

func TestNewInitialPosition(t *testing.T) {
	testutil.AssertEqual(t, PositionToFEN(NewInitialPosition()), InitialFEN)
}
