// chessrules loads chess positions, plays legal moves against them and
// counts perft nodes, either from flags or from an interactive shell.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/snapshot"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run opens the snapshot store, loads the start position and either
// counts perft nodes or starts the shell.
func run(cfg *config.Config) error {
	store, err := snapshot.Open(cfg.Snapshot.Backend)
	if err != nil {
		return err
	}
	g := game.New(store, game.WithLogger(cfg))
	defer g.Close() //nolint:errcheck // store is discarded on exit

	if err := g.Load(cfg.StartFEN); err != nil {
		return err
	}
	cfg.Logf(config.Debug, "snapshot backend %s, %d workers", cfg.Snapshot.Backend, cfg.Perft.Workers)

	if cfg.Perft.Depth > 0 {
		return runPerft(cfg.Output.OutputFile, g, cfg.Perft, cfg)
	}
	return runShell(cfg, g)
}

// runPerft prints the node count at the configured depth. With divide set
// it first prints one line per root move.
func runPerft(w io.Writer, g *game.Game, pc config.PerftConfig, log game.Logger) error {
	depth := pc.Depth
	start := time.Now()

	var total uint64
	if pc.Divide {
		entries, err := g.Divide(depth, pc.Workers)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Fprintln(w)
		total = engine.TotalNodes(entries)
	} else {
		n, err := g.Perft(depth)
		if err != nil {
			return err
		}
		total = n
	}

	fmt.Fprintf(w, "Nodes searched: %d\n", total)
	log.Logf(config.Verbose, "perft(%d) of %s: %d nodes in %s", depth, g.FEN(), total, time.Since(start).Round(time.Millisecond))
	return nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays legal chess moves from a FEN position and counts perft nodes.\n")
	fmt.Fprintf(os.Stderr, "Without -perft an interactive shell is started.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nShell commands:\n")
	for _, cmd := range NewRegistry(nil, config.NewConfig(), os.Stderr, false).List() {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", cmd.Name, cmd.Description)
	}
}
