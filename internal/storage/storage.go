// Package storage persists engine options and bench-run history in a
// BadgerDB key-value store. Values are JSON-encoded records.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyOptions     = "options"
	benchKeyPrefix = "bench:"
)

// EngineOptions are the persisted engine defaults.
type EngineOptions struct {
	HashMB     int     `json:"hash_mb"`
	CoeffPath  string  `json:"coeff_path"`
	BlendAlpha float64 `json:"blend_alpha"`
	BookPath   string  `json:"book_path"`
	Tablebase  bool    `json:"tablebase"`
}

// DefaultOptions returns the stock engine defaults.
func DefaultOptions() *EngineOptions {
	return &EngineOptions{
		HashMB:     64,
		BlendAlpha: 0.35,
	}
}

// BenchRun is one bench row: a single (position, depth) search.
type BenchRun struct {
	When     time.Time `json:"when"`
	FEN      string    `json:"fen"`
	Depth    int       `json:"depth"`
	TimeMS   int64     `json:"time_ms"`
	BestMove string    `json:"bestmove"`
	Score    int       `json:"score"`
	Nodes    uint64    `json:"nodes"`
	NPS      int64     `json:"nps"`
}

// Store wraps a BadgerDB instance.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logging is noise here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions persists engine options.
func (s *Store) SaveOptions(opts *EngineOptions) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadOptions loads persisted engine options, returning defaults when none
// were saved yet.
func (s *Store) LoadOptions() (*EngineOptions, error) {
	opts := DefaultOptions()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, opts)
		})
	})

	return opts, err
}

// AppendBenchRun records one bench row. Keys embed the wall-clock nanosecond
// timestamp so iteration order is chronological.
func (s *Store) AppendBenchRun(run *BenchRun) error {
	if run.When.IsZero() {
		run.When = time.Now()
	}
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%020d", benchKeyPrefix, run.When.UnixNano())
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ListBenchRuns returns all recorded bench rows in chronological order.
func (s *Store) ListBenchRuns() ([]BenchRun, error) {
	var runs []BenchRun

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(benchKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var run BenchRun
				if err := json.Unmarshal(val, &run); err != nil {
					return err
				}
				runs = append(runs, run)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return runs, err
}
