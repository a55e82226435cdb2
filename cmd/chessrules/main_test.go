package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestRunPerft(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		depth     int
		divide    bool
		wantLines int
		want      string
	}{
		{"initial depth 3", "", 3, false, 1, "Nodes searched: 8902\n"},
		{"initial divide", "", 2, true, 22, "Nodes searched: 400\n"},
		{"kiwipete depth 1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, false, 1, "Nodes searched: 48\n"},
		{"mated side has no nodes", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", 2, true, 2, "Nodes searched: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, log bytes.Buffer
			cfg := config.NewConfigBuilder().
				WithPerft(tt.depth, tt.divide).
				WithWorkers(4).
				WithVerbosity(config.Verbose).
				WithLog(&log).
				Build()
			g := game.New(nil)
			defer g.Close()
			if tt.fen != "" {
				testutil.AssertNoError(t, g.Load(tt.fen))
			}

			testutil.AssertNoError(t, runPerft(&out, g, cfg.Perft, cfg))
			testutil.AssertTrue(t, strings.HasSuffix(out.String(), tt.want), "output %q", out.String())
			testutil.AssertEqual(t, strings.Count(out.String(), "\n"), tt.wantLines)
			testutil.AssertContains(t, log.String(), "perft(")
		})
	}
}

func TestRunPerft_QuietLogsNothing(t *testing.T) {
	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().WithPerft(1, false).WithVerbosity(config.Quiet).WithLog(&log).Build()
	g := game.New(nil)
	defer g.Close()

	testutil.AssertNoError(t, runPerft(&out, g, cfg.Perft, cfg))
	testutil.AssertEqual(t, out.String(), "Nodes searched: 20\n")
	testutil.AssertEqual(t, log.String(), "")
}

func TestRun_PerftMode(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithStartFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1").
		WithPerft(2, false).
		WithSnapshotBackend(config.BadgerBackend).
		WithOutput(&out).
		WithLog(&bytes.Buffer{}).
		Build()
	testutil.AssertNoError(t, cfg.Validate())

	testutil.AssertNoError(t, run(cfg))
	testutil.AssertEqual(t, out.String(), "Nodes searched: 191\n")
}

func TestRun_UnknownBackend(t *testing.T) {
	cfg := config.NewConfigBuilder().WithSnapshotBackend("redis").WithPerft(1, false).Build()
	testutil.AssertError(t, run(cfg))
}

func TestBuildPrompt(t *testing.T) {
	g := game.New(nil)
	defer g.Close()
	testutil.AssertEqual(t, buildPrompt(g, false), "chess [White 0] > ")

	_, err := g.AttemptMove(game.ParseMoveRequest("e2e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, buildPrompt(g, false), "chess [Black 1] > ")
}
