package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// TestHasInsufficientMaterial tests various material configurations
func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same color", "5bk1/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+B vs K+B opposite color", "5bk1/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N vs K+N", "4k1n1/8/8/8/8/8/8/4KN2 w - - 0 1", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := mustPosition(t, tt.fen)
			if got := HasInsufficientMaterial(pos); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeDrawRules(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want DrawRuleResult
	}{
		{"initial position", InitialFEN, DrawRuleResult{}},
		{"99 half-moves", "4k3/8/8/8/8/8/8/R3K3 w - - 99 80", DrawRuleResult{}},
		{"100 half-moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 80", DrawRuleResult{HasFiftyMoveRule: true}},
		{"150 half-moves", "4k3/8/8/8/8/8/8/R3K3 w - - 150 90", DrawRuleResult{HasFiftyMoveRule: true, Has75MoveRule: true}},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", DrawRuleResult{HasInsufficientMaterial: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, AnalyzeDrawRules(mustPosition(t, tt.fen)), tt.want)
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"initial position", InitialFEN, Ongoing},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", Checkmate},
		{"queen stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", InsufficientMaterialDraw},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 80", FiftyMoveDraw},
		{"rook check", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", Check},
		{"mate outranks the fifty-move rule", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 100 60", Checkmate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			testutil.AssertEqual(t, Evaluate(pos), tt.want)
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status       Status
		wantString   string
		wantTerminal bool
	}{
		{Ongoing, "ongoing", false},
		{Check, "check", false},
		{Checkmate, "checkmate", true},
		{Stalemate, "stalemate", true},
		{FiftyMoveDraw, "fifty-move rule", true},
		{InsufficientMaterialDraw, "insufficient material", true},
		{Status(42), "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			testutil.AssertEqual(t, tt.status.String(), tt.wantString)
			testutil.AssertEqual(t, tt.status.IsTerminal(), tt.wantTerminal)
		})
	}
}

func TestGameState(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		colour        chess.Colour
		wantCheck     bool
		wantMoves     bool
		wantCheckmate bool
		wantStalemate bool
	}{
		{"initial white", InitialFEN, chess.White, false, true, false, false},
		{"initial black", InitialFEN, chess.Black, false, true, false, false},
		{"mated white", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", chess.White, true, false, true, false},
		{"mating side", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", chess.Black, false, true, false, false},
		{"stalemated black", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", chess.Black, false, false, false, true},
		{"checked black", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", chess.Black, true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			testutil.AssertEqual(t, InCheck(pos, tt.colour), tt.wantCheck, "InCheck")
			testutil.AssertEqual(t, HasLegalMoves(pos, tt.colour), tt.wantMoves, "HasLegalMoves")
			testutil.AssertEqual(t, InCheckmate(pos, tt.colour), tt.wantCheckmate, "InCheckmate")
			testutil.AssertEqual(t, InStalemate(pos, tt.colour), tt.wantStalemate, "InStalemate")

			// The cached answer must agree with the computed one.
			AssignLegalMoves(pos, tt.colour)
			testutil.AssertEqual(t, HasLegalMoves(pos, tt.colour), tt.wantMoves, "HasLegalMoves from cache")
		})
	}
}

func TestIsCheckmate_SideToMove(t *testing.T) {
	pos := mustPosition(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertTrue(t, IsCheckmate(pos))
	testutil.AssertFalse(t, IsStalemate(pos))

	pos = mustPosition(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	testutil.AssertFalse(t, IsCheckmate(pos))
	testutil.AssertTrue(t, IsStalemate(pos))
}
