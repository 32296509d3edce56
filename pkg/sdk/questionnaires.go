package facetdex

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

// QuestionnaireService reads and writes questionnaires of one type.
type QuestionnaireService struct {
	typ      EntityType
	listing  listingUseCase
	choices  choicesUseCase
	records  questionnaireUseCase
	audience domrec.Audience
	obs      *observer
}

// List returns one page of questionnaires matching the options.
func (s *QuestionnaireService) List(ctx context.Context, opts ListOptions) (_ Page, err error) {
	sp := s.obs.begin("questionnaire.list", s.typ)
	defer func() { sp.end(err) }()

	t, err := entity.Parse(string(s.typ))
	if err != nil {
		return Page{}, fmt.Errorf("list questionnaires: %w", err)
	}
	page, err := s.listing.List(ctx, t, toParams(opts), s.audience, opts.Limit, opts.Offset)
	if err != nil {
		return Page{}, fmt.Errorf("list questionnaires: %w", err)
	}

	sp.matched(page.Total)

	out := Page{
		Count:   page.Total,
		Results: make([]Questionnaire, len(page.Records)),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
	for i, v := range listinguc.RenderAll(page.Records) {
		out.Results[i] = fromView(v)
	}
	return out, nil
}

// Choices returns the filter vocabulary, with derived facets narrowed by filters.
func (s *QuestionnaireService) Choices(ctx context.Context, filters map[string]string) (_ Catalog, err error) {
	sp := s.obs.begin("questionnaire.choices", s.typ)
	defer func() { sp.end(err) }()

	t, err := entity.Parse(string(s.typ))
	if err != nil {
		return Catalog{}, fmt.Errorf("describe choices: %w", err)
	}
	cat, err := s.choices.Describe(ctx, t, toParams(ListOptions{Filters: filters}), s.audience)
	if err != nil {
		return Catalog{}, fmt.Errorf("describe choices: %w", err)
	}

	out := Catalog{Facets: make([]FacetChoices, len(cat.Entries))}
	for i, e := range cat.Entries {
		fc := FacetChoices{Name: e.Name, Choices: make([]Choice, len(e.Choices))}
		for j, c := range e.Choices {
			fc.Choices[j] = Choice{Value: c.Key, Label: c.Label}
		}
		out.Facets[i] = fc
	}
	return out, nil
}

// Upsert creates or replaces a questionnaire. Returns true if created.
func (s *QuestionnaireService) Upsert(ctx context.Context, id string, in Input) (_ bool, err error) {
	sp := s.obs.begin("questionnaire.upsert", s.typ)
	defer func() { sp.end(err) }()

	t, err := entity.Parse(string(s.typ))
	if err != nil {
		return false, fmt.Errorf("upsert questionnaire: %w", err)
	}
	sp.with("id", id)
	_, created, err := s.records.Upsert(ctx, t, id, questionnaireuc.Input{
		Scalars:   in.Scalars,
		Lists:     in.Lists,
		Moderated: in.Moderated,
	})
	if err != nil {
		return false, fmt.Errorf("upsert questionnaire: %w", err)
	}
	return created, nil
}

// Get returns a questionnaire by id.
func (s *QuestionnaireService) Get(ctx context.Context, id string) (_ Questionnaire, err error) {
	sp := s.obs.begin("questionnaire.get", s.typ)
	defer func() { sp.end(err) }()

	t, err := entity.Parse(string(s.typ))
	if err != nil {
		return Questionnaire{}, fmt.Errorf("get questionnaire: %w", err)
	}
	rec, err := s.records.Get(ctx, t, id, s.audience)
	if err != nil {
		return Questionnaire{}, fmt.Errorf("get questionnaire: %w", err)
	}
	return fromView(listinguc.Render(&rec)), nil
}

// Delete soft-deletes a questionnaire.
func (s *QuestionnaireService) Delete(ctx context.Context, id string) (err error) {
	sp := s.obs.begin("questionnaire.delete", s.typ)
	defer func() { sp.end(err) }()

	t, err := entity.Parse(string(s.typ))
	if err != nil {
		return fmt.Errorf("delete questionnaire: %w", err)
	}
	if err := s.records.Delete(ctx, t, id); err != nil {
		return fmt.Errorf("delete questionnaire: %w", err)
	}
	return nil
}

// toParams goes through url.Values so the SDK parses exactly like the HTTP API.
func toParams(opts ListOptions) query.Params {
	v := make(url.Values, len(opts.Filters)+2)
	for k, raw := range opts.Filters {
		v.Set(k, raw)
	}
	if opts.Search != "" {
		v.Set(query.ParamSearch, opts.Search)
	}
	if opts.Ordering != "" {
		v.Set(query.ParamOrdering, opts.Ordering)
	}
	return query.FromValues(v)
}

func fromView(v listinguc.View) Questionnaire {
	return Questionnaire{
		ID:        v.ID,
		Type:      EntityType(v.Type),
		Scalars:   v.Scalars,
		Lists:     v.Lists,
		Moderated: v.Moderated,
		Deleted:   v.Deleted,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
