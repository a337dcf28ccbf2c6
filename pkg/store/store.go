// Package store persists extracted relation records between runs. Records are
// append-only: a run writes the relations it produced for a document and later
// consumers read them back by document id.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/soundprediction/relex/pkg/types"
)

// Store is a badger-backed relation store.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens the store at the given path. An empty path opens an in-memory
// store, used in tests and one-shot runs.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open relation store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func relationKey(docID, recordUUID string) []byte {
	return []byte(fmt.Sprintf("doc/%s/rel/%s", docID, recordUUID))
}

func documentPrefix(docID string) []byte {
	return []byte(fmt.Sprintf("doc/%s/rel/", docID))
}

// SaveRelations persists the records extracted for a document. Records
// without a UUID are rejected; they would silently collide under one key.
func (s *Store) SaveRelations(docID string, records []types.RelationRecord) error {
	if docID == "" {
		return types.ErrEmptyDocumentID
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, r := range records {
			if r.UUID == "" {
				return fmt.Errorf("relation record without uuid for document %s", docID)
			}
			value, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to encode relation %s: %w", r.UUID, err)
			}
			if err := txn.Set(relationKey(docID, r.UUID), value); err != nil {
				return fmt.Errorf("failed to store relation %s: %w", r.UUID, err)
			}
		}
		return nil
	})
}

// RelationsByDocument returns every stored relation for the document, in key
// order. A document with no stored relations yields an empty slice.
func (s *Store) RelationsByDocument(docID string) ([]types.RelationRecord, error) {
	var records []types.RelationRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := documentPrefix(docID)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var r types.RelationRecord
				if err := json.Unmarshal(value, &r); err != nil {
					return fmt.Errorf("corrupt relation record under %s: %w", it.Item().Key(), err)
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
