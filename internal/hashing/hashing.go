// Package hashing provides Zobrist position hashes and repetition counting
// for chess games.
package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Zobrist key tables, filled from a fixed seed so hashes are stable across
// runs.
var (
	pieceKeys  [2][chess.NumKinds][chess.NumSquares]uint64
	blackKey   uint64
	castleKeys [2][2]uint64
	epKeys     [chess.BoardSize]uint64
)

func init() {
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		// splitmix64
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = next()
			}
		}
	}
	blackKey = next()
	for c := range castleKeys {
		for side := range castleKeys[c] {
			castleKeys[c][side] = next()
		}
	}
	for f := range epKeys {
		epKeys[f] = next()
	}
}

// GenerateZobristHash hashes the parts of a position that decide whether
// two positions repeat: placement, side to move, castling rights and the
// en passant square. Clocks are excluded.
func GenerateZobristHash(pos *chess.Position) uint64 {
	var hash uint64
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range pos.Roster(c) {
			p := pos.Piece(id)
			hash ^= pieceKeys[c][p.Kind][p.Square]
		}
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			if engine.HasCastlingRight(pos, c, side) {
				hash ^= castleKeys[c][side]
			}
		}
	}
	if pos.ToMove == chess.Black {
		hash ^= blackKey
	}
	if ep := pos.EnPassantTarget(); ep.Valid() {
		hash ^= epKeys[ep.File()]
	}
	return hash
}

// RepetitionTable counts how often each position of a line has occurred.
// Positions are pushed as moves are made and popped as they are taken
// back, so the counts always describe the current line.
type RepetitionTable struct {
	counts map[uint64]int
	line   []uint64
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Push records pos as reached and returns how often it has now occurred.
func (t *RepetitionTable) Push(pos *chess.Position) int {
	hash := GenerateZobristHash(pos)
	t.line = append(t.line, hash)
	t.counts[hash]++
	return t.counts[hash]
}

// Pop forgets the most recently pushed position. Popping an empty table
// does nothing.
func (t *RepetitionTable) Pop() {
	if len(t.line) == 0 {
		return
	}
	hash := t.line[len(t.line)-1]
	t.line = t.line[:len(t.line)-1]
	if t.counts[hash]--; t.counts[hash] <= 0 {
		delete(t.counts, hash)
	}
}

// Count returns how often pos has occurred on the current line.
func (t *RepetitionTable) Count(pos *chess.Position) int {
	return t.counts[GenerateZobristHash(pos)]
}

// Len returns the number of positions on the current line.
func (t *RepetitionTable) Len() int {
	return len(t.line)
}

// Reset clears the table.
func (t *RepetitionTable) Reset() {
	t.counts = make(map[uint64]int)
	t.line = t.line[:0]
}
