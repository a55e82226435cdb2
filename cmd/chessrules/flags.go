package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/display"
)

// Command-line flags
var (
	// Position
	startFEN = flag.String("fen", "", "Start from this FEN instead of the initial position")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count leaf nodes to this depth, print the total and exit")
	divide     = flag.Bool("divide", false, "With -perft, print the node count below each root move")
	workers    = flag.Int("workers", 0, "Number of divide workers (0 = auto-detect based on CPU cores)")

	// Snapshots
	snapshots   = flag.String("snapshots", config.MemoryBackend, "Snapshot store: memory or badger")
	historyFile = flag.String("history", "", "Keep REPL line history in this file")

	// Output
	colourMode = flag.String("color", config.ColourAuto, "Board colours: auto, always or never")
	theme      = flag.String("theme", string(display.ThemeBrown), "Board colour theme: brown, green or gray")
	noCoords   = flag.Bool("nocoords", false, "Print boards without file and rank labels")
	outputFile = flag.String("o", "", "Write boards and results to this file")

	// Logging
	verbosity = flag.Int("v", config.Normal, "Verbosity: 0=errors, 1=results, 2=moves, 3=debug")
	logFile   = flag.String("log", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	if *startFEN != "" {
		cfg.StartFEN = *startFEN
	}
	applyPerftFlags(cfg)
	applySnapshotFlags(cfg)
	applyOutputFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = config.Quiet
	}
}

// applyPerftFlags configures the non-interactive perft run.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *divide
	if *workers > 0 {
		cfg.Perft.Workers = *workers
	}
}

// applySnapshotFlags configures the snapshot store and REPL history.
func applySnapshotFlags(cfg *config.Config) {
	cfg.Snapshot.Backend = *snapshots
	cfg.Snapshot.HistoryFile = *historyFile
}

// applyOutputFlags configures board rendering.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.ColourMode = *colourMode
	cfg.Output.Theme = *theme
	cfg.Output.Coordinates = !*noCoords
}
