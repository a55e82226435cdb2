package config

import "runtime"

// PerftConfig holds settings for node counting.
type PerftConfig struct {
	// Depth is the search depth; 0 disables the non-interactive perft run.
	Depth int `validate:"gte=0,lte=10"`

	// Divide prints one count per root move.
	Divide bool

	// Workers is the number of goroutines a divide uses.
	Workers int `validate:"gte=1,lte=256"`
}

// NewPerftConfig creates a PerftConfig with one worker per CPU.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{Workers: runtime.NumCPU()}
}
