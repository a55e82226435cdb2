package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/display"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// errExit is returned by the exit command's handler.
var errExit = stderrors.New("exit")

// Command defines a shell command with its handler.
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(args []string) error
}

// Registry maps command names to handlers bound to one session.
type Registry struct {
	game     *game.Game
	cfg      *config.Config
	out      io.Writer
	colour   bool
	commands map[string]*Command
}

// NewRegistry registers the shell commands for g, writing to out.
func NewRegistry(g *game.Game, cfg *config.Config, out io.Writer, colour bool) *Registry {
	r := &Registry{
		game:     g,
		cfg:      cfg,
		out:      out,
		colour:   colour,
		commands: make(map[string]*Command),
	}

	r.registerPositionCommands()
	r.registerSnapshotCommands()

	r.Register(&Command{
		Name:        "perft",
		Description: "Count leaf nodes below the position",
		Usage:       "perft <depth> [divide]",
		Handler:     r.perftHandler,
	})
	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})
	r.Register(&Command{
		Name:        "exit",
		ShortName:   "quit",
		Description: "Leave the shell",
		Usage:       "exit",
		Handler:     func([]string) error { return errExit },
	})

	return r
}

func (r *Registry) registerPositionCommands() {
	r.Register(&Command{
		Name:        "load",
		Description: "Load a position from FEN",
		Usage:       "load <fen>",
		Handler:     r.loadHandler,
	})
	r.Register(&Command{
		Name:        "fen",
		Description: "Print the position as FEN",
		Usage:       "fen",
		Handler:     r.fenHandler,
	})
	r.Register(&Command{
		Name:        "board",
		ShortName:   "b",
		Description: "Draw the board, marking a piece's moves if a square is given",
		Usage:       "board [square]",
		Handler:     r.boardHandler,
	})
	r.Register(&Command{
		Name:        "moves",
		Description: "List legal moves, for one square or the side to move",
		Usage:       "moves [square]",
		Handler:     r.movesHandler,
	})
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Play a move in coordinate notation",
		Usage:       "move <from><to>[promotion]  (e2e4, e7e8n)",
		Handler:     r.moveHandler,
	})
	r.Register(&Command{
		Name:        "undo",
		ShortName:   "u",
		Description: "Take back the last move",
		Usage:       "undo",
		Handler:     r.undoHandler,
	})
	r.Register(&Command{
		Name:        "history",
		Description: "List the moves played since the last load",
		Usage:       "history",
		Handler:     r.historyHandler,
	})
	r.Register(&Command{
		Name:        "status",
		ShortName:   "s",
		Description: "Show check, mate and draw conditions",
		Usage:       "status",
		Handler:     r.statusHandler,
	})
}

func (r *Registry) registerSnapshotCommands() {
	r.Register(&Command{
		Name:        "save",
		Description: "Store a snapshot of the position",
		Usage:       "save",
		Handler:     r.saveHandler,
	})
	r.Register(&Command{
		Name:        "restore",
		Description: "Load a stored snapshot",
		Usage:       "restore <id>",
		Handler:     r.restoreHandler,
	})
	r.Register(&Command{
		Name:        "snapshots",
		Description: "List stored snapshots, oldest first",
		Usage:       "snapshots",
		Handler:     r.snapshotsHandler,
	})
}

// Register adds cmd under its name and short name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// List returns each registered command once, sorted by name.
func (r *Registry) List() []*Command {
	var cmds []*Command
	for key, cmd := range r.commands {
		if key == cmd.Name {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Execute runs one input line and reports whether the shell should exit.
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		r.printf("%sUnknown command: %s%s\n", r.ansi(display.Red), cmdName, r.ansi(display.Reset))
		r.printf("Type 'help' for available commands\n")
		return false
	}

	if err := cmd.Handler(args); err != nil {
		if stderrors.Is(err, errExit) {
			return true
		}
		r.printf("%sError: %s%s\n", r.ansi(display.Red), err.Error(), r.ansi(display.Reset))
	}
	return false
}

func (r *Registry) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// ansi returns code when colour is enabled.
func (r *Registry) ansi(code string) string {
	if r.colour {
		return code
	}
	return ""
}

func usageError(cmd string) error {
	return fmt.Errorf("usage: %s", cmd)
}

// drawBoard renders the current position, marking highlight.
func (r *Registry) drawBoard(highlight chess.SquareSet) error {
	return display.RenderBoard(r.out, r.game.Position(), display.Options{
		Colour:      r.colour,
		Theme:       display.Theme(r.cfg.Output.Theme),
		Coordinates: r.cfg.Output.Coordinates,
		Highlight:   highlight,
	})
}

func (r *Registry) loadHandler(args []string) error {
	if len(args) == 0 {
		return usageError("load <fen>")
	}
	if err := r.game.Load(strings.Join(args, " ")); err != nil {
		return err
	}
	return r.drawBoard(0)
}

func (r *Registry) fenHandler([]string) error {
	r.printf("%s\n", r.game.FEN())
	return nil
}

func (r *Registry) boardHandler(args []string) error {
	var marked chess.SquareSet
	if len(args) > 0 {
		moves, err := r.game.LegalMoves(args[0])
		if err != nil {
			return err
		}
		for _, m := range moves {
			marked = marked.Add(chess.MustSquare(m))
		}
	}
	return r.drawBoard(marked)
}

func (r *Registry) movesHandler(args []string) error {
	var moves []string
	if len(args) > 0 {
		var err error
		if moves, err = r.game.LegalMoves(args[0]); err != nil {
			return err
		}
	} else {
		moves = r.game.AllLegalMoves()
	}

	if len(moves) == 0 {
		r.printf("no legal moves\n")
		return nil
	}
	r.printf("%s\n", strings.Join(moves, " "))
	r.cfg.Logf(config.Verbose, "%d legal moves", len(moves))
	return nil
}

func (r *Registry) moveHandler(args []string) error {
	if len(args) != 1 {
		return usageError("move <from><to>[promotion]")
	}
	res, err := r.game.AttemptMove(game.ParseMoveRequest(args[0]))
	if err != nil {
		return err
	}
	if !res.Applied {
		r.printf("%sIllegal move: %s%s\n", r.ansi(display.Red), args[0], r.ansi(display.Reset))
		return nil
	}

	line := "played " + res.Move.String()
	if res.Captured != nil {
		line += strings.ToLower(fmt.Sprintf(", captured %s %s", res.Captured.Colour, res.Captured.Kind))
	}
	switch {
	case res.IsCheckmate:
		line += ", checkmate"
	case res.IsStalemate:
		line += ", stalemate"
	case res.IsCheck:
		line += ", check"
	}
	r.printf("%s\n", line)
	return r.drawBoard(0)
}

func (r *Registry) undoHandler([]string) error {
	m, err := r.game.Undo()
	if err != nil {
		return err
	}
	r.printf("took back %s\n", m)
	return nil
}

func (r *Registry) historyHandler([]string) error {
	moves := r.game.History()
	if len(moves) == 0 {
		r.printf("no moves played\n")
		return nil
	}
	for i, m := range moves {
		r.printf("%3d. %s\n", i+1, m)
	}
	return nil
}

func (r *Registry) statusHandler([]string) error {
	rep := r.game.Status()
	r.printf("to move:     %s\n", display.ColourForTurn(rep.ToMove, r.colour))
	r.printf("ply:         %d\n", rep.Ply)
	r.printf("status:      %s\n", rep.Status)
	r.printf("repetitions: %d\n", rep.Repetitions)

	var draws []string
	if rep.Threefold {
		draws = append(draws, "threefold repetition")
	}
	if rep.Draws.Has75MoveRule {
		draws = append(draws, "seventy-five-move rule")
	} else if rep.Draws.HasFiftyMoveRule {
		draws = append(draws, "fifty-move rule")
	}
	if rep.Draws.HasInsufficientMaterial {
		draws = append(draws, "insufficient material")
	}
	if len(draws) > 0 {
		r.printf("draw:        %s\n", strings.Join(draws, ", "))
	}
	return nil
}

func (r *Registry) saveHandler([]string) error {
	id, err := r.game.Save()
	if err != nil {
		return err
	}
	r.printf("saved %s\n", id)
	return nil
}

func (r *Registry) restoreHandler(args []string) error {
	if len(args) != 1 {
		return usageError("restore <id>")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("snapshot id %q: %w", args[0], err)
	}
	if err := r.game.Restore(id); err != nil {
		return err
	}
	return r.drawBoard(0)
}

func (r *Registry) snapshotsHandler([]string) error {
	snaps, err := r.game.Snapshots()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		r.printf("no snapshots\n")
		return nil
	}
	for _, s := range snaps {
		r.printf("%s  ply %-3d %s\n", s.ID, s.Ply, s.FEN)
	}
	return nil
}

func (r *Registry) perftHandler(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usageError("perft <depth> [divide]")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return fmt.Errorf("perft depth %q: must be a positive number", args[0])
	}

	pc := r.cfg.Perft
	pc.Depth = depth
	pc.Divide = len(args) == 2 && args[1] == "divide"
	return runPerft(r.out, r.game, pc, r.cfg)
}

func (r *Registry) helpHandler(args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		r.printf("%s%s%s - %s\n", r.ansi(display.Cyan), cmd.Name, r.ansi(display.Reset), cmd.Description)
		r.printf("usage: %s\n", cmd.Usage)
		if cmd.ShortName != "" {
			r.printf("alias: %s\n", cmd.ShortName)
		}
		return nil
	}

	for _, cmd := range r.List() {
		r.printf("  %s%-10s%s %s\n", r.ansi(display.Cyan), cmd.Name, r.ansi(display.Reset), cmd.Description)
	}
	return nil
}
