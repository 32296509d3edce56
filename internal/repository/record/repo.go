// Package record persists questionnaire records in a db.Store.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// store is the consumer interface for records (ISP).
type store interface {
	Put(ctx context.Context, doc *db.Document) (bool, error)
	Get(ctx context.Context, docType, id string) (*db.Document, error)
	Find(ctx context.Context, q *db.FindQuery) (*db.FindResult, error)
	Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error)
}

// Repo implements the record repositories of the listing, choices and questionnaire use cases.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a record. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, rec *domrec.Record) (bool, error) {
	created, err := r.store.Put(ctx, toDocument(rec))
	if err != nil {
		return false, fmt.Errorf("put %s/%s: %w", rec.EntityType(), rec.ID(), err)
	}
	return created, nil
}

// Get returns a record by type and id.
func (r *Repo) Get(ctx context.Context, t entity.Type, id string) (domrec.Record, error) {
	d, err := r.store.Get(ctx, t.String(), id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.Record{}, domain.ErrRecordNotFound
		}
		return domrec.Record{}, fmt.Errorf("get %s/%s: %w", t, id, err)
	}
	return fromDocument(d), nil
}

// Find executes a compiled list request and returns one page plus the total match count.
func (r *Repo) Find(ctx context.Context, req *request.Request) ([]domrec.Record, int, error) {
	res, err := r.store.Find(ctx, &db.FindQuery{
		Type:     req.EntityType().String(),
		Filters:  req.Filters(),
		Ordering: req.Ordering(),
		Offset:   req.Offset(),
		Limit:    req.Limit(),
	})
	if err != nil {
		if errors.Is(err, db.ErrInvalidOrdering) {
			return nil, 0, fmt.Errorf("ordering %q: %w", req.Ordering(), domain.ErrInvalidOrdering)
		}
		return nil, 0, fmt.Errorf("find %s: %w", req.EntityType(), err)
	}

	recs := make([]domrec.Record, 0, len(res.Documents))
	for _, d := range res.Documents {
		recs = append(recs, fromDocument(d))
	}
	return recs, res.Total, nil
}

// Distinct returns the distinct values of fields over the records matching filters.
func (r *Repo) Distinct(
	ctx context.Context, t entity.Type, fields []string, filters filter.Expression,
) ([]string, error) {
	values, err := r.store.Distinct(ctx, &db.DistinctQuery{
		Type:    t.String(),
		Fields:  fields,
		Filters: filters,
	})
	if err != nil {
		return nil, fmt.Errorf("distinct %s %v: %w", t, fields, err)
	}
	return values, nil
}
