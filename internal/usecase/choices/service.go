// Package choices publishes the filter vocabulary of an entity type.
package choices

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	"github.com/kailas-cloud/facetdex/internal/logger"
)

// Service builds choice catalogs.
type Service struct {
	repo     Repository
	compiler FilterCompiler
}

// New creates a catalog service.
func New(repo Repository, compiler FilterCompiler) *Service {
	return &Service{repo: repo, compiler: compiler}
}

// Describe returns every attribute's choices in registry order. Derived attributes list the
// distinct values of visible records matching p, ignoring the attribute's own parameter.
// Attributes with groups also publish them under GroupsKey.
func (s *Service) Describe(ctx context.Context, t entity.Type, p query.Params, a domrec.Audience) (Catalog, error) {
	reg, err := catalog.Registry(t)
	if err != nil {
		return Catalog{}, err
	}

	out := Catalog{Type: t, Entries: make([]Entry, 0, len(reg.Attributes())+1)}
	var groups []choice.Group
	for _, attr := range reg.Attributes() {
		list := attr.Choices()
		if attr.Derived() {
			list, err = s.derived(ctx, t, attr, p, a)
			if err != nil {
				return Catalog{}, err
			}
		}
		out.Entries = append(out.Entries, Entry{Name: attr.Name(), Choices: copyChoices(list)})
		groups = append(groups, attr.Groups()...)
	}

	if len(groups) > 0 {
		entry := Entry{Name: GroupsKey, Choices: make([]choice.Choice, len(groups))}
		for i, g := range groups {
			entry.Choices[i] = choice.Choice{Key: g.Key, Label: g.Label}
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func (s *Service) derived(
	ctx context.Context, t entity.Type, attr choice.Attribute, p query.Params, a domrec.Audience,
) ([]choice.Choice, error) {
	filters, err := s.compiler.Filters(ctx, t, p.Without(attr.Name()), a)
	if err != nil {
		return nil, err
	}
	values, err := s.repo.Distinct(ctx, t, attr.Fields(), filters)
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", t, attr.Name(), err)
	}
	logger.FromContext(ctx).Debug("derived choices",
		zap.String("entity_type", t.String()),
		zap.String("attribute", attr.Name()),
		zap.Int("values", len(values)),
	)

	out := make([]choice.Choice, 0, len(values))
	for _, v := range values {
		out = append(out, choice.Choice{Key: v, Label: attr.Label(v)})
	}
	return out, nil
}

func copyChoices(cs []choice.Choice) []choice.Choice {
	out := make([]choice.Choice, len(cs))
	copy(out, cs)
	return out
}
