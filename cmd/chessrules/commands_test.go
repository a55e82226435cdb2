package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// newTestRegistry returns a plain-text registry over a fresh session.
func newTestRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutput(&out).WithLog(&log).Build()
	g := game.New(nil, game.WithLogger(cfg))
	t.Cleanup(func() { g.Close() })
	return NewRegistry(g, cfg, &out, false), &out
}

// exec runs one line and returns what it printed.
func exec(r *Registry, out *bytes.Buffer, line string) string {
	out.Reset()
	r.Execute(line)
	return out.String()
}

func TestRegistry_Script(t *testing.T) {
	steps := []struct {
		line string
		want string
	}{
		{"moves e2", "e3 e4\n"},
		{"moves e7", "no legal moves\n"},
		{"history", "no moves played\n"},
		{"move e2e4", "played e2e4\n"},
		{"fen", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1\n"},
		{"move e2e4", "Illegal move: e2e4\n"},
		{"move d7d5", "played d7d5\n"},
		{"move e4d5", "played e4d5, captured black pawn\n"},
		{"history", "  1. e2e4\n  2. d7d5\n  3. e4d5\n"},
		{"u", "took back e4d5\n"},
		{"undo", "took back d7d5\n"},
		{"undo", "took back e2e4\n"},
		{"undo", "Error: "},
		{"move z9z9", "Error: "},
		{"move", "Error: usage: move"},
		{"frobnicate", "Unknown command: frobnicate\n"},
		{"fen", engine.InitialFEN + "\n"},
	}

	r, out := newTestRegistry(t)
	for _, s := range steps {
		got := exec(r, out, s.line)
		testutil.AssertContains(t, got, s.want, "after %q", s.line)
	}
}

func TestRegistry_MoveReportsOutcome(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"check", []string{"e2e4", "f7f6", "d1h5"}, "played d1h5, check\n"},
		{"checkmate", []string{"f2f3", "e7e5", "g2g4", "d8h4"}, "played d8h4, checkmate\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestRegistry(t)
			var got string
			for _, m := range tt.moves {
				got = exec(r, out, "move "+m)
			}
			testutil.AssertContains(t, got, tt.want)
		})
	}
}

func TestRegistry_LoadAndStatus(t *testing.T) {
	r, out := newTestRegistry(t)

	got := exec(r, out, "load 4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	testutil.AssertContains(t, got, "8 . . . . k . . . 8\n")

	got = exec(r, out, "status")
	testutil.AssertContains(t, got, "to move:     White\n")
	testutil.AssertContains(t, got, "status:      insufficient material\n")
	testutil.AssertContains(t, got, "draw:        insufficient material\n")

	got = exec(r, out, "load 8/8/8 w - - 0 1")
	testutil.AssertContains(t, got, "Error: ")
	testutil.AssertContains(t, exec(r, out, "fen"), "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "failed load keeps the position")

	testutil.AssertContains(t, exec(r, out, "load"), "Error: usage: load")
}

func TestRegistry_BoardHighlight(t *testing.T) {
	r, out := newTestRegistry(t)
	got := exec(r, out, "board g1")
	testutil.AssertContains(t, got, "3 . . . . . * . * 3\n")

	got = exec(r, out, "board")
	testutil.AssertContains(t, got, "3 . . . . . . . . 3\n")
	testutil.AssertContains(t, got, "1 R N B Q K B N R 1\n")
}

func TestRegistry_SaveRestore(t *testing.T) {
	r, out := newTestRegistry(t)

	testutil.AssertContains(t, exec(r, out, "snapshots"), "no snapshots")

	saved := exec(r, out, "save")
	testutil.AssertTrue(t, strings.HasPrefix(saved, "saved "), "save output %q", saved)
	id := strings.TrimSpace(strings.TrimPrefix(saved, "saved "))

	exec(r, out, "move e2e4")
	testutil.AssertContains(t, exec(r, out, "snapshots"), id)

	exec(r, out, "restore "+id)
	testutil.AssertContains(t, exec(r, out, "fen"), engine.InitialFEN)

	testutil.AssertContains(t, exec(r, out, "restore nope"), "Error: snapshot id")
	testutil.AssertContains(t, exec(r, out, "restore 00000000-0000-0000-0000-000000000001"), "Error: ")
	testutil.AssertContains(t, exec(r, out, "restore"), "Error: usage: restore")
}

func TestRegistry_Perft(t *testing.T) {
	r, out := newTestRegistry(t)

	testutil.AssertContains(t, exec(r, out, "perft 2"), "Nodes searched: 400\n")

	got := exec(r, out, "perft 2 divide")
	testutil.AssertContains(t, got, "e2e4: 20\n")
	testutil.AssertContains(t, got, "Nodes searched: 400\n")
	testutil.AssertEqual(t, strings.Count(got, ": 20\n"), 20)

	testutil.AssertContains(t, exec(r, out, "perft 0"), "Error: perft depth")
	testutil.AssertContains(t, exec(r, out, "perft x"), "Error: perft depth")
	testutil.AssertContains(t, exec(r, out, "perft"), "Error: usage: perft")
}

func TestRegistry_Help(t *testing.T) {
	r, out := newTestRegistry(t)

	got := exec(r, out, "help")
	for _, name := range []string{"load", "fen", "board", "moves", "move", "undo", "save", "restore", "snapshots", "status", "perft", "help", "exit"} {
		testutil.AssertContains(t, got, "  "+name+" ", "help lists %s", name)
	}

	got = exec(r, out, "? move")
	testutil.AssertContains(t, got, "move - Play a move")
	testutil.AssertContains(t, got, "alias: m\n")

	testutil.AssertContains(t, exec(r, out, "help nope"), "Error: unknown command: nope")
}

func TestRegistry_List(t *testing.T) {
	r, _ := newTestRegistry(t)
	cmds := r.List()

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	testutil.AssertEqual(t, names, []string{
		"board", "exit", "fen", "help", "history", "load", "move", "moves",
		"perft", "restore", "save", "snapshots", "status", "undo",
	})
}

func TestRegistry_Exit(t *testing.T) {
	r, _ := newTestRegistry(t)

	testutil.AssertFalse(t, r.Execute(""))
	testutil.AssertFalse(t, r.Execute("fen"))
	testutil.AssertFalse(t, r.Execute("nope"))
	testutil.AssertTrue(t, r.Execute("exit"))
	testutil.AssertTrue(t, r.Execute("quit"))
}
