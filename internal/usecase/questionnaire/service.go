// Package questionnaire writes and reads single questionnaire records.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/logger"
)

// Service manages questionnaire records.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a questionnaire service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Upsert stores a record under id, canonicalizing enumerated values to keys.
// An existing record keeps its creation time and, unless in says otherwise, its moderation flag.
// Writing a soft-deleted record restores it. Returns the stored record and whether it was created.
func (s *Service) Upsert(ctx context.Context, t entity.Type, id string, in Input) (domrec.Record, bool, error) {
	reg, err := catalog.Registry(t)
	if err != nil {
		return domrec.Record{}, false, err
	}

	scalars := make(map[string]string, len(in.Scalars))
	for k, v := range in.Scalars {
		scalars[k] = reg.KeyFor(k, v)
	}
	lists := make(map[string][]string, len(in.Lists))
	for k, vs := range in.Lists {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = reg.KeyFor(k, v)
		}
		lists[k] = out
	}

	rec, err := domrec.New(id, t, scalars, lists)
	if err != nil {
		return domrec.Record{}, false, err
	}

	prev, err := s.repo.Get(ctx, t, rec.ID())
	switch {
	case err == nil:
		rec.KeepCreated(prev.CreatedAt())
		rec.SetModerated(prev.Moderated())
	case !errors.Is(err, domain.ErrRecordNotFound):
		return domrec.Record{}, false, fmt.Errorf("upsert %s/%s: %w", t, rec.ID(), err)
	}
	if in.Moderated != nil {
		rec.SetModerated(*in.Moderated)
	}
	rec.Touch(s.now().UTC())

	created, err := s.repo.Upsert(ctx, &rec)
	if err != nil {
		return domrec.Record{}, false, err
	}
	logger.FromContext(ctx).Info("questionnaire stored",
		zap.String("entity_type", t.String()),
		zap.String("id", rec.ID()),
		zap.Bool("created", created),
		zap.Bool("moderated", rec.Moderated()),
	)
	return rec, created, nil
}

// Get returns a record visible to the audience. Public callers only see moderated,
// non-deleted records; anything else is reported as missing.
func (s *Service) Get(ctx context.Context, t entity.Type, id string, a domrec.Audience) (domrec.Record, error) {
	if !t.IsValid() {
		return domrec.Record{}, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}
	rec, err := s.repo.Get(ctx, t, id)
	if err != nil {
		return domrec.Record{}, err
	}
	if a == domrec.Public && (!rec.Moderated() || rec.Deleted()) {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return rec, nil
}

// Delete soft-deletes a record. Deleting an already deleted record is a no-op.
func (s *Service) Delete(ctx context.Context, t entity.Type, id string) error {
	rec, err := s.Get(ctx, t, id, domrec.Staff)
	if err != nil {
		return err
	}
	if rec.Deleted() {
		return nil
	}
	rec.MarkDeleted()
	rec.Touch(s.now().UTC())
	if _, err := s.repo.Upsert(ctx, &rec); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("questionnaire deleted",
		zap.String("entity_type", t.String()),
		zap.String("id", id),
	)
	return nil
}
