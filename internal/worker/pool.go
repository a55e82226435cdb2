// Package worker provides a worker pool for splitting perft searches
// across goroutines.
package worker

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// WorkItem is one root move to search. Position is owned by the item: it
// must not be shared with any other item or with the submitter.
type WorkItem struct {
	Position *chess.Position
	Move     chess.Move
	Depth    int
	Index    int // Original index for tracking
}

// ProcessResult represents the result of searching one root move.
type ProcessResult struct {
	Index int
	Move  chess.Move
	Nodes uint64
	Error error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel node counting.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. processFunc is required; by default the
// pool has one worker and a buffer of 64 items, enough for every root move
// of any legal position.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  64,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run starts the pool, feeds it items, and returns the results sorted by
// Index. The first failing item stops the pool; its error is returned with
// whatever results completed.
func (p *Pool) Run(items []WorkItem) ([]ProcessResult, error) {
	p.Start()
	go func() {
		for _, item := range items {
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	var firstErr error
	for res := range p.Results() {
		if res.Error != nil {
			if firstErr == nil {
				firstErr = res.Error
			}
			p.Stop()
			continue
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, firstErr
}
