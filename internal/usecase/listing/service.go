// Package listing assembles facet, search and visibility clauses into list queries.
package listing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/facet"
	"github.com/kailas-cloud/facetdex/internal/logger"
)

// Page is one page of a listing.
type Page struct {
	Records []domrec.Record
	Total   int
	Limit   int
	Offset  int
}

// Service lists questionnaires.
type Service struct {
	repo     Repository
	builder  *facet.Builder
	observer Observer
	maxLimit int
}

// New creates a listing service. observer can be nil; maxLimit <= 0 means request.MaxLimit.
func New(repo Repository, observer Observer, maxLimit int) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{repo: repo, builder: facet.NewBuilder(), observer: observer, maxLimit: maxLimit}
}

// List compiles the parameters and returns one page.
func (s *Service) List(
	ctx context.Context, t entity.Type, p query.Params, a domrec.Audience, limit, offset int,
) (Page, error) {
	req, err := s.Compile(ctx, t, p, a, limit, offset)
	if err != nil {
		return Page{}, err
	}

	recs, total, err := s.repo.Find(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("list %s: %w", t, err)
	}
	s.observer.ListServed(t, total)

	return Page{Records: recs, Total: total, Limit: req.Limit(), Offset: req.Offset()}, nil
}

// Compile builds the request List would execute.
func (s *Service) Compile(
	ctx context.Context, t entity.Type, p query.Params, a domrec.Audience, limit, offset int,
) (request.Request, error) {
	filters, err := s.Filters(ctx, t, p, a)
	if err != nil {
		return request.Request{}, err
	}
	req, err := request.New(t, filters, request.ParseOrdering(p.Ordering), limit, offset, s.maxLimit)
	if err != nil {
		return request.Request{}, fmt.Errorf("compile %s: %w", t, err)
	}
	return req, nil
}

// Filters ANDs visibility, every declared facet present in p, and the free-text search.
// Parameters the registry does not declare are ignored.
func (s *Service) Filters(
	ctx context.Context, t entity.Type, p query.Params, a domrec.Audience,
) (filter.Expression, error) {
	reg, err := catalog.Registry(t)
	if err != nil {
		return filter.Expression{}, err
	}
	log := logger.FromContext(ctx)

	expr := filter.NewExpression(domrec.VisibilityClauses(t, a)...)
	for _, attr := range reg.Attributes() {
		tokens, ok := p.Facets[attr.Name()]
		if !ok {
			continue
		}
		out := s.builder.Build(attr, tokens)
		s.observer.FacetBuilt(t, attr.Name(), out.Report)
		log.Debug("facet compiled",
			zap.String("entity_type", t.String()),
			zap.String("facet", attr.Name()),
			zap.Strings("tokens", tokens),
			zap.Bool("applied", out.Report.Applied),
			zap.Int("sentinel_hits", out.Report.SentinelHits),
			zap.Int("pass_through", out.Report.PassThrough),
			zap.Strings("expanded", out.Report.Expanded),
			zap.Strings("ignored_groups", out.Report.IgnoredGroups),
		)
		expr = expr.And(out.Clauses...)
	}

	if c, ok := searchClause(reg, p.Search); ok {
		expr = expr.And(c)
	}
	return expr, nil
}

// searchClause matches the text as a substring of any display-name field.
func searchClause(reg *choice.Registry, text string) (filter.Clause, bool) {
	text = choice.Normalize(text)
	if text == "" {
		return filter.Clause{}, false
	}
	conds := make([]filter.Condition, 0, len(reg.SearchFields()))
	for _, f := range reg.SearchFields() {
		c, err := filter.NewSubstring(f, text)
		if err != nil {
			continue
		}
		conds = append(conds, c)
	}
	c, err := filter.NewClause(conds...)
	if err != nil {
		return filter.Clause{}, false
	}
	return c, true
}

type nopObserver struct{}

func (nopObserver) FacetBuilt(entity.Type, string, facet.Report) {}
func (nopObserver) ListServed(entity.Type, int)                  {}
