package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Perft counts the leaf nodes of the legal move tree to depth, applying
// and reverting each move on pos. pos is restored before returning.
func Perft(pos *chess.Position, depth int) (uint64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("perft depth %d: must not be negative", depth)
	}
	return perft(pos, depth)
}

func perft(pos *chess.Position, depth int) (uint64, error) {
	switch depth {
	case 0:
		return 1, nil
	case 1:
		return countLegalMoves(pos), nil
	}

	var nodes uint64
	for _, m := range LegalMoveList(pos) {
		if _, err := Apply(pos, m); err != nil {
			return nodes, err
		}
		n, err := perft(pos, depth-1)
		if _, rerr := Revert(pos); rerr != nil && err == nil {
			err = rerr
		}
		if err != nil {
			return nodes, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes uint64
}

// Divide splits a perft search by root move and runs the subtrees on a
// worker pool. Every work item gets its own clone of pos, so workers never
// share a position; pos itself is not modified. Entries follow the order
// of LegalMoveList.
func Divide(pos *chess.Position, depth, workers int) ([]DivideEntry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("divide depth %d: must be at least 1", depth)
	}

	root := pos.Clone()
	moves := LegalMoveList(root)
	items := make([]worker.WorkItem, len(moves))
	for i, m := range moves {
		child := root.Clone()
		if _, err := Apply(child, m); err != nil {
			return nil, err
		}
		items[i] = worker.WorkItem{Position: child, Move: m, Depth: depth - 1, Index: i}
	}

	pool := worker.NewPool(searchSubtree, worker.WithWorkers(workers), worker.WithBufferSize(len(items)+1))
	results, err := pool.Run(items)
	if err != nil {
		return nil, err
	}

	entries := make([]DivideEntry, len(results))
	for i, res := range results {
		entries[i] = DivideEntry{Move: res.Move, Nodes: res.Nodes}
	}
	return entries, nil
}

// searchSubtree is the worker.ProcessFunc used by Divide.
func searchSubtree(item worker.WorkItem) worker.ProcessResult {
	nodes, err := perft(item.Position, item.Depth)
	if err != nil {
		err = fmt.Errorf("divide %s: %w", item.Move, err)
	}
	return worker.ProcessResult{Index: item.Index, Move: item.Move, Nodes: nodes, Error: err}
}

// TotalNodes sums the node counts of a divide.
func TotalNodes(entries []DivideEntry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total
}
