package record

import (
	"context"

	"github.com/kailas-cloud/facetdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn      func(ctx context.Context, doc *db.Document) (bool, error)
	getFn      func(ctx context.Context, docType, id string) (*db.Document, error)
	findFn     func(ctx context.Context, q *db.FindQuery) (*db.FindResult, error)
	distinctFn func(ctx context.Context, q *db.DistinctQuery) ([]string, error)
}

func (m *mockStore) Put(ctx context.Context, doc *db.Document) (bool, error) {
	if m.putFn != nil {
		return m.putFn(ctx, doc)
	}
	return true, nil
}

func (m *mockStore) Get(ctx context.Context, docType, id string) (*db.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, docType, id)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Find(ctx context.Context, q *db.FindQuery) (*db.FindResult, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return &db.FindResult{}, nil
}

func (m *mockStore) Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error) {
	if m.distinctFn != nil {
		return m.distinctFn(ctx, q)
	}
	return []string{}, nil
}
