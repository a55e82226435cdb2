package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/display"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// runShell reads commands until exit or end of input.
func runShell(cfg *config.Config, g *game.Game) error {
	out := cfg.Output.OutputFile
	colour := display.UseColour(cfg.Output.ColourMode, out)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          buildPrompt(g, colour),
		HistoryFile:     cfg.Snapshot.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer rl.Close() //nolint:errcheck // terminal restore on exit

	registry := NewRegistry(g, cfg, out, colour)
	fmt.Fprintf(out, "%schessrules %s%s\n", registry.ansi(display.Cyan), programVersion, registry.ansi(display.Reset))
	fmt.Fprintf(out, "Type 'help' for commands\n\n")
	if err := registry.drawBoard(0); err != nil {
		return err
	}

	for {
		rl.SetPrompt(buildPrompt(g, colour))

		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cfg.Logf(config.Debug, "> %s", line)

		if registry.Execute(line) {
			return nil
		}
	}
}

// buildPrompt shows the side to move and the ply.
func buildPrompt(g *game.Game, colour bool) string {
	rep := g.Status()
	turn := display.ColourForTurn(rep.ToMove, colour)
	return fmt.Sprintf("chess [%s %d]%s", turn, rep.Ply, display.Prompt("", colour))
}
