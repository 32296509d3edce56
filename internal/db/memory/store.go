// Package memory is an in-process db.Store for local runs, the SDK and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/facetdex/internal/db"
)

var _ db.Store = (*Store)(nil)

// Store keeps documents in a map keyed by type and id.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*db.Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*db.Document)}
}

func key(docType, id string) string { return docType + ":" + id }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately unless ctx is already done.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory store: %w", err)
	}
	return nil
}

// Put stores a copy of doc.
func (s *Store) Put(ctx context.Context, doc *db.Document) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &db.Error{Op: db.OpSet, Err: err}
	}
	k := key(doc.Type, doc.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.docs[k]
	s.docs[k] = doc.Clone()
	return !exists, nil
}

// Get returns a copy of the document.
func (s *Store) Get(ctx context.Context, docType, id string) (*db.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[key(docType, id)]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return d.Clone(), nil
}

// Delete removes the document. Deleting a missing document returns db.ErrKeyNotFound.
func (s *Store) Delete(ctx context.Context, docType, id string) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	k := key(docType, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[k]; !ok {
		return db.ErrKeyNotFound
	}
	delete(s.docs, k)
	return nil
}

// Find evaluates the query over a snapshot of the type's documents.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) (*db.FindResult, error) {
	docs, err := s.snapshot(ctx, q.Type)
	if err != nil {
		return nil, err
	}
	res, err := db.Apply(docs, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Type, err)
	}
	return res, nil
}

// Distinct collects distinct field values over the type's matching documents.
func (s *Store) Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error) {
	docs, err := s.snapshot(ctx, q.Type)
	if err != nil {
		return nil, err
	}
	return db.DistinctValues(docs, q), nil
}

// Len returns the number of stored documents of all types.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) snapshot(ctx context.Context, docType string) ([]*db.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*db.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if d.Type == docType {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}
