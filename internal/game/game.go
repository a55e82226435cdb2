// Package game wraps a Position in a single-owner session: moves are
// validated and applied under one mutex, snapshots go to a snapshot.Store,
// and repeated positions are counted for the threefold rule.
package game

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/snapshot"
)

// Log levels used by the session.
const (
	levelResult = 1
	levelDetail = 2
	levelDebug  = 3
)

// Logger receives the session's log lines. config.Config implements it.
type Logger interface {
	Logf(level int, format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Logf(int, string, ...interface{}) {}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the session logger.
func WithLogger(l Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game is a chess session. All methods are safe for concurrent use; the
// underlying Position is never shared.
type Game struct {
	mu     sync.Mutex
	pos    *chess.Position
	store  snapshot.Store
	logger Logger

	// reps holds one entry per position reached since the last Load.
	reps *hashing.RepetitionTable
}

// New starts a session from the initial position. store may be nil, in
// which case a MemoryStore is used.
func New(store snapshot.Store, opts ...Option) *Game {
	if store == nil {
		store = snapshot.NewMemoryStore()
	}
	g := &Game{store: store, logger: nopLogger{}, reps: hashing.NewRepetitionTable()}
	for _, opt := range opts {
		opt(g)
	}
	g.reset(engine.NewInitialPosition())
	return g
}

func (g *Game) reset(pos *chess.Position) {
	g.pos = pos
	g.reps.Reset()
	g.reps.Push(pos)
}

// Load replaces the position with one parsed from fen. On error the
// session is unchanged.
func (g *Game) Load(fen string) error {
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset(pos)
	g.logger.Logf(levelDetail, "loaded %s", fen)
	return nil
}

// LegalMoves lists the legal destinations of the piece on square, sorted.
// Empty squares and pieces of the side not to move have none.
func (g *Game) LegalMoves(square string) ([]string, error) {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.LegalMoves(g.pos, sq).Strings(), nil
}

// AllLegalMoves lists every legal move of the side to move in coordinate
// notation, sorted.
func (g *Game) AllLegalMoves() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	moves := engine.LegalMoveList(g.pos)
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// AttemptMove validates req and applies it if legal. An illegal move is
// reported with Applied false and a nil error; malformed requests are
// errors.
func (g *Game) AttemptMove(req MoveRequest) (engine.MoveResult, error) {
	from, to, promo, err := req.parse()
	if err != nil {
		return engine.MoveResult{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ply := g.ply() + 1
	res, err := engine.AttemptMove(g.pos, from, to, promo)
	if err != nil {
		return res, &errors.MoveError{Err: err, PlyNum: ply, MoveText: req.String()}
	}
	if !res.Applied {
		g.logger.Logf(levelDetail, "ply %d: %s rejected", ply, res.Move)
		return res, nil
	}
	if n := g.reps.Push(g.pos); n > 1 {
		g.logger.Logf(levelDebug, "position repeated %d times", n)
	}
	g.logger.Logf(levelDetail, "ply %d: %s", ply, res.Move)
	switch {
	case res.IsCheckmate:
		g.logger.Logf(levelResult, "checkmate, %s wins", g.pos.ToMove.Opposite())
	case res.IsStalemate:
		g.logger.Logf(levelResult, "stalemate")
	}
	return res, nil
}

// Undo takes back the last move.
func (g *Game) Undo() (chess.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, err := engine.Revert(g.pos)
	if err != nil {
		return chess.Move{}, err
	}
	g.reps.Pop()
	g.logger.Logf(levelDetail, "undid %s", rec.Move())
	return rec.Move(), nil
}

// FEN serializes the current position.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.PositionToFEN(g.pos)
}

// Save stores a snapshot of the current position and returns its ID.
func (g *Game) Save() (uuid.UUID, error) {
	g.mu.Lock()
	snap := snapshot.New(engine.PositionToFEN(g.pos), g.ply())
	g.mu.Unlock()

	if err := g.store.Save(snap); err != nil {
		return uuid.Nil, errors.Wrap(err, "saving snapshot")
	}
	g.logger.Logf(levelDetail, "saved snapshot %s at ply %d", snap.ID, snap.Ply)
	return snap.ID, nil
}

// Restore loads a snapshot saved earlier. Move history before the
// snapshot is not restored; the restored position cannot be undone past.
func (g *Game) Restore(id uuid.UUID) error {
	snap, err := g.store.Load(id)
	if err != nil {
		return err
	}
	if err := g.Load(snap.FEN); err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	return nil
}

// Snapshots lists the saved snapshots, oldest first.
func (g *Game) Snapshots() ([]snapshot.Snapshot, error) {
	return g.store.List()
}

// Report describes the session's current state.
type Report struct {
	Status      engine.Status
	ToMove      chess.Colour
	Ply         int
	Repetitions int
	Threefold   bool
	Draws       engine.DrawRuleResult
}

// Status evaluates the position for the side to move.
func (g *Game) Status() Report {
	g.mu.Lock()
	defer g.mu.Unlock()
	reps := g.reps.Count(g.pos)
	return Report{
		Status:      engine.Evaluate(g.pos),
		ToMove:      g.pos.ToMove,
		Ply:         g.ply(),
		Repetitions: reps,
		Threefold:   reps >= 3,
		Draws:       engine.AnalyzeDrawRules(g.pos),
	}
}

// Position returns a copy of the current position for rendering.
func (g *Game) Position() *chess.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Clone()
}

// History lists the moves played since the last Load.
func (g *Game) History() []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	var moves []chess.Move
	for _, rec := range g.pos.History {
		if !rec.Synthetic {
			moves = append(moves, rec.Move())
		}
	}
	return moves
}

// Perft counts nodes below the current position on a copy.
func (g *Game) Perft(depth int) (uint64, error) {
	return engine.Perft(g.Position(), depth)
}

// Divide runs a parallel divide on a copy of the current position.
func (g *Game) Divide(depth, workers int) ([]engine.DivideEntry, error) {
	return engine.Divide(g.Position(), depth, workers)
}

// Close releases the snapshot store.
func (g *Game) Close() error {
	return g.store.Close()
}

func (g *Game) ply() int {
	n := 0
	for _, rec := range g.pos.History {
		if !rec.Synthetic {
			n++
		}
	}
	return n
}
