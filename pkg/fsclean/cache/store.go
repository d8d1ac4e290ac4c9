package cache

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a cache entry doesn't exist.
var ErrNotFound = errors.New("cache entry not found")

// Store wraps Badger for digest cache operations.
type Store struct {
	db *badger.DB
}

// OpenStore opens or creates a cache store at the given path.
func OpenStore(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves a cached digest by file path.
func (s *Store) Get(path string) (*CachedDigest, error) {
	var entry CachedDigest

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(entry.Decode)
	})

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores a cached digest for a file path.
func (s *Store) Put(path string, entry *CachedDigest) error {
	value, err := entry.Encode()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), value)
	})
}

// PutBatch stores multiple entries efficiently in a single write batch.
func (s *Store) PutBatch(entries map[string]*CachedDigest) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for path, entry := range entries {
		value, err := entry.Encode()
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(path), value); err != nil {
			return err
		}
	}

	return wb.Flush()
}

// Clear removes every entry from the store.
func (s *Store) Clear() error {
	return s.db.DropAll()
}
