package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/facetdex/internal/db"
)

// Find loads the type's documents and evaluates the query in process.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) (*db.FindResult, error) {
	docs, err := s.load(ctx, q.Type)
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
	docs, err := s.load(ctx, q.Type)
	if err != nil {
		return nil, err
	}
	return db.DistinctValues(docs, q), nil
}
