package facetdex

import (
	"context"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

// --- listingUseCase mock ---

type mockListingUC struct {
	listFn func(
		ctx context.Context, t entity.Type, p query.Params, a domrec.Audience, limit, offset int,
	) (listinguc.Page, error)
}

func (m *mockListingUC) List(
	ctx context.Context, t entity.Type, p query.Params, a domrec.Audience, limit, offset int,
) (listinguc.Page, error) {
	return m.listFn(ctx, t, p, a, limit, offset)
}

// --- choicesUseCase mock ---

type mockChoicesUC struct {
	describeFn func(ctx context.Context, t entity.Type, p query.Params, a domrec.Audience) (choicesuc.Catalog, error)
}

func (m *mockChoicesUC) Describe(
	ctx context.Context, t entity.Type, p query.Params, a domrec.Audience,
) (choicesuc.Catalog, error) {
	return m.describeFn(ctx, t, p, a)
}

// --- questionnaireUseCase mock ---

type mockRecordUC struct {
	upsertFn func(ctx context.Context, t entity.Type, id string, in questionnaireuc.Input) (domrec.Record, bool, error)
	getFn    func(ctx context.Context, t entity.Type, id string, a domrec.Audience) (domrec.Record, error)
	deleteFn func(ctx context.Context, t entity.Type, id string) error
}

func (m *mockRecordUC) Upsert(
	ctx context.Context, t entity.Type, id string, in questionnaireuc.Input,
) (domrec.Record, bool, error) {
	return m.upsertFn(ctx, t, id, in)
}

func (m *mockRecordUC) Get(ctx context.Context, t entity.Type, id string, a domrec.Audience) (domrec.Record, error) {
	return m.getFn(ctx, t, id, a)
}

func (m *mockRecordUC) Delete(ctx context.Context, t entity.Type, id string) error {
	return m.deleteFn(ctx, t, id)
}

// --- helpers ---

func testService(t EntityType, listing listingUseCase, choices choicesUseCase, records questionnaireUseCase) *QuestionnaireService {
	return &QuestionnaireService{
		typ:     t,
		listing: listing,
		choices: choices,
		records: records,
	}
}
