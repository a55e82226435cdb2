package snapshot

import (
	"encoding/json"
	stderrors "errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const keyPrefix = "snapshot/"

// BadgerStore keeps snapshots in an in-memory BadgerDB as JSON values.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens an in-memory database. Nothing touches the disk.
func NewBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}

// Save stores s under its ID, replacing any earlier value.
func (b *BadgerStore) Save(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(s.ID), data)
	})
}

// Load returns the snapshot with the given ID or ErrSnapshotNotFound.
func (b *BadgerStore) Load(id uuid.UUID) (Snapshot, error) {
	var s Snapshot
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	return s, err
}

// Delete removes a snapshot. Unknown IDs return ErrSnapshotNotFound.
func (b *BadgerStore) Delete(id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); stderrors.Is(err, badger.ErrKeyNotFound) {
			return notFound(id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
}

// List returns every snapshot, oldest first.
func (b *BadgerStore) List() ([]Snapshot, error) {
	out := []Snapshot{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var s Snapshot
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			}); err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByCreation(out)
	return out, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
