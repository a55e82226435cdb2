package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestLegalMoveList_DepthOneFixtures(t *testing.T) {
	for _, f := range testutil.PerftFixtures {
		t.Run(f.Name, func(t *testing.T) {
			pos := mustPosition(t, f.FEN)
			if f.Depth == 1 {
				testutil.AssertEqual(t, uint64(len(LegalMoveList(pos))), f.Nodes)
			}
			testutil.AssertEqual(t, countLegalMoves(pos), uint64(len(LegalMoveList(pos))), "countLegalMoves agrees with LegalMoveList")
		})
	}
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		square string
		want   []string
	}{
		{
			name:   "pinned rook slides along the pin",
			fen:    "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1",
			square: "e2",
			want:   []string{"e3", "e4", "e5", "e6", "e7", "e8"},
		},
		{
			name:   "pinned knight cannot move",
			fen:    "6k1/8/8/b7/8/8/3N4/4K3 w - - 0 1",
			square: "d2",
			want:   nil,
		},
		{
			name:   "pinned bishop keeps the diagonal",
			fen:    "6k1/8/8/b7/8/8/3B4/4K3 w - - 0 1",
			square: "d2",
			want:   []string{"a5", "b4", "c3"},
		},
		{
			name:   "single check restricts to capture or block",
			fen:    "4r1k1/8/8/8/8/8/3Q4/4K3 w - - 0 1",
			square: "d2",
			want:   []string{"e2", "e3"},
		},
		{
			name:   "knight check allows only capture",
			fen:    "6k1/8/8/8/8/3n4/8/R3K3 w - - 0 1",
			square: "a1",
			want:   nil,
		},
		{
			name:   "double check leaves only the king",
			fen:    "4r1k1/8/8/8/8/3n4/3Q4/4K3 w - - 0 1",
			square: "d2",
			want:   nil,
		},
		{
			name:   "king cannot retreat along the checking ray",
			fen:    "4r1k1/8/8/8/8/8/8/4K3 w - - 0 1",
			square: "e1",
			want:   []string{"d1", "d2", "f1", "f2"},
		},
		{
			name:   "king cannot capture a defended piece",
			fen:    "4r1k1/8/8/8/8/8/4q3/4K3 w - - 0 1",
			square: "e1",
			want:   nil,
		},
		{
			name:   "no castling out of check",
			fen:    "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			square: "e1",
			want:   []string{"d1", "d2", "f1", "f2"},
		},
		{
			name:   "no castling through an attacked square",
			fen:    "5rk1/8/8/8/8/8/8/4K2R w K - 0 1",
			square: "e1",
			want:   []string{"d1", "d2", "e2"},
		},
		{
			name:   "queenside castle allowed with b1 attacked",
			fen:    "1r4k1/8/8/8/8/8/8/R3K3 w Q - 0 1",
			square: "e1",
			want:   []string{"c1", "d1", "d2", "e2", "f1", "f2"},
		},
		{
			name:   "en passant captures the checking pawn",
			fen:    "8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3",
			square: "c4",
			want:   []string{"d3"},
		},
		{
			name:   "en passant exposing the king on the rank is illegal",
			fen:    "8/8/8/8/k1pP3R/8/8/4K3 b - d3 0 1",
			square: "c4",
			want:   []string{"c3"},
		},
		{
			name:   "pieces of the side not to move have no moves",
			fen:    InitialFEN,
			square: "e7",
			want:   nil,
		},
		{
			name:   "empty square has no moves",
			fen:    InitialFEN,
			square: "e4",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			got := LegalMoves(pos, chess.MustSquare(tt.square))
			testutil.AssertSameElements(t, got.Strings(), tt.want)
		})
	}
}

func TestAssignLegalMoves_CachesOneSide(t *testing.T) {
	pos := mustPosition(t, InitialFEN)
	AssignLegalMoves(pos, chess.White)
	testutil.AssertTrue(t, pos.MovesAssigned(chess.White))
	testutil.AssertFalse(t, pos.MovesAssigned(chess.Black))

	var total int
	for _, id := range pos.Roster(chess.White) {
		total += pos.Piece(id).Legal.Len()
	}
	testutil.AssertEqual(t, total, 20)
	for _, id := range pos.Roster(chess.Black) {
		testutil.AssertEqual(t, pos.Piece(id).Legal, chess.SquareSet(0), "black piece %s", pos.Piece(id))
	}

	if _, err := Apply(pos, chess.Move{From: chess.MustSquare("e2"), To: chess.MustSquare("e4")}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	testutil.AssertFalse(t, pos.MovesAssigned(chess.White), "caches invalidated by Apply")
}

// TestLegality_Soundness applies every legal move of every fixture and
// checks the mover is never left in check.
func TestLegality_Soundness(t *testing.T) {
	fens := []string{InitialFEN}
	for _, f := range testutil.PerftFixtures {
		fens = append(fens, f.FEN)
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos := mustPosition(t, fen)
			mover := pos.ToMove
			for _, m := range LegalMoveList(pos) {
				if _, err := Apply(pos, m); err != nil {
					t.Fatalf("Apply(%s) error: %v", m, err)
				}
				if InCheck(pos, mover) {
					t.Errorf("%s leaves %s in check", m, mover)
				}
				if _, err := Revert(pos); err != nil {
					t.Fatalf("Revert(%s) error: %v", m, err)
				}
			}
			testutil.AssertEqual(t, PositionToFEN(pos), fen, "position restored")
		})
	}
}

// TestLegality_CheckmateEquivalence checks InCheckmate matches its
// definition over every position one ply from each fixture.
func TestLegality_CheckmateEquivalence(t *testing.T) {
	for _, f := range testutil.PerftFixtures {
		t.Run(f.Name, func(t *testing.T) {
			pos := mustPosition(t, f.FEN)
			for _, m := range LegalMoveList(pos) {
				if _, err := Apply(pos, m); err != nil {
					t.Fatalf("Apply(%s) error: %v", m, err)
				}
				side := pos.ToMove
				allEmpty := len(LegalMoveList(pos)) == 0
				if got, want := InCheckmate(pos, side), InCheck(pos, side) && allEmpty; got != want {
					t.Errorf("after %s: InCheckmate() = %v, want %v", m, got, want)
				}
				if _, err := Revert(pos); err != nil {
					t.Fatalf("Revert(%s) error: %v", m, err)
				}
			}
		})
	}
}
