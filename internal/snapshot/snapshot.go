// Package snapshot stores FEN snapshots of a game session.
package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Snapshot is a saved position.
type Snapshot struct {
	ID        uuid.UUID `json:"id"`
	FEN       string    `json:"fen"`
	Ply       int       `json:"ply"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a snapshot with a fresh ID.
func New(fen string, ply int) Snapshot {
	return Snapshot{ID: uuid.New(), FEN: fen, Ply: ply, CreatedAt: time.Now()}
}

// Store keeps snapshots. Implementations are safe for concurrent use.
type Store interface {
	Save(s Snapshot) error
	Load(id uuid.UUID) (Snapshot, error)
	Delete(id uuid.UUID) error

	// List returns every snapshot, oldest first.
	List() ([]Snapshot, error)

	Close() error
}

// Open returns the store for a backend name ("memory" or "badger").
func Open(backend string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		return NewBadgerStore()
	}
	return nil, fmt.Errorf("snapshot backend %q: %w", backend, errors.ErrInvalidConfig)
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("snapshot %s: %w", id, errors.ErrSnapshotNotFound)
}

func sortByCreation(snaps []Snapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].Ply < snaps[j].Ply
		}
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
}
