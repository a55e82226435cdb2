package config

// Snapshot backends.
const (
	MemoryBackend = "memory"
	BadgerBackend = "badger"
)

// SnapshotConfig selects where session snapshots are kept.
type SnapshotConfig struct {
	// Backend is "memory" (map) or "badger" (in-memory BadgerDB).
	Backend string `validate:"oneof=memory badger"`

	// HistoryFile is the REPL's readline history; empty disables it.
	HistoryFile string
}

// NewSnapshotConfig creates a SnapshotConfig with default values.
func NewSnapshotConfig() *SnapshotConfig {
	return &SnapshotConfig{Backend: MemoryBackend}
}
