package snapshot

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[uuid.UUID]Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[uuid.UUID]Snapshot)}
}

// Save stores s under its ID, replacing any earlier value.
func (m *MemoryStore) Save(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[s.ID] = s
	return nil
}

// Load returns the snapshot with the given ID or ErrSnapshotNotFound.
func (m *MemoryStore) Load(id uuid.UUID) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snaps[id]
	if !ok {
		return Snapshot{}, notFound(id)
	}
	return s, nil
}

// Delete removes a snapshot. Unknown IDs return ErrSnapshotNotFound.
func (m *MemoryStore) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[id]; !ok {
		return notFound(id)
	}
	delete(m.snaps, id)
	return nil
}

// List returns every snapshot, oldest first.
func (m *MemoryStore) List() ([]Snapshot, error) {
	m.mu.RLock()
	out := make([]Snapshot, 0, len(m.snaps))
	for _, s := range m.snaps {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sortByCreation(out)
	return out, nil
}

// Close is a no-op; the map is released with the store.
func (m *MemoryStore) Close() error {
	return nil
}
