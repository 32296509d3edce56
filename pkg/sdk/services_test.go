package facetdex

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

func TestQuestionnaireService_List(t *testing.T) {
	rec, err := domrec.New("d1", entity.Designer, nil, map[string][]string{"segments": {"horeca"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mock := &mockListingUC{
		listFn: func(
			_ context.Context, et entity.Type, p query.Params, a domrec.Audience, limit, offset int,
		) (listinguc.Page, error) {
			if et != entity.Designer {
				t.Errorf("type = %q, want designer", et)
			}
			if got := p.Facets["city"]; len(got) != 2 || got[1] != "Казань" {
				t.Errorf("city tokens = %v", got)
			}
			if p.Search != "анна" || p.Ordering != "full_name" {
				t.Errorf("search/ordering = %q/%q", p.Search, p.Ordering)
			}
			if a != domrec.Public {
				t.Errorf("audience = %v, want public", a)
			}
			if limit != 10 || offset != 20 {
				t.Errorf("limit/offset = %d/%d", limit, offset)
			}
			return listinguc.Page{Records: []domrec.Record{rec}, Total: 21, Limit: 10, Offset: 20}, nil
		},
	}

	svc := testService(Designer, mock, nil, nil)
	page, err := svc.List(context.Background(), ListOptions{
		Filters:  map[string]string{"city": "Москва, Казань"},
		Search:   "анна",
		Ordering: "full_name",
		Limit:    10,
		Offset:   20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 21 || len(page.Results) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if got := page.Results[0].Lists["segments"]; len(got) != 1 || got[0] != "HoReCa" {
		t.Errorf("segments = %v, want labels", got)
	}
}

func TestQuestionnaireService_List_Error(t *testing.T) {
	mock := &mockListingUC{
		listFn: func(context.Context, entity.Type, query.Params, domrec.Audience, int, int) (listinguc.Page, error) {
			return listinguc.Page{}, ErrInvalidOrdering
		},
	}
	svc := testService(Media, mock, nil, nil)
	if _, err := svc.List(context.Background(), ListOptions{Ordering: "nope"}); !errors.Is(err, ErrInvalidOrdering) {
		t.Fatalf("expected ErrInvalidOrdering, got %v", err)
	}
}

func TestQuestionnaireService_UnknownType(t *testing.T) {
	svc := testService(EntityType("events"), nil, nil, nil)
	if _, err := svc.List(context.Background(), ListOptions{}); !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("List: expected ErrUnknownEntityType, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("Get: expected ErrUnknownEntityType, got %v", err)
	}
}

func TestQuestionnaireService_Choices(t *testing.T) {
	mock := &mockChoicesUC{
		describeFn: func(_ context.Context, _ entity.Type, p query.Params, _ domrec.Audience) (choicesuc.Catalog, error) {
			if got := p.Facets["group"]; len(got) != 1 || got[0] != "design" {
				t.Errorf("group tokens = %v", got)
			}
			return choicesuc.Catalog{Entries: []choicesuc.Entry{
				{Name: "city", Choices: []choice.Choice{{Key: "Москва", Label: "Москва"}}},
				{Name: "segment", Choices: []choice.Choice{{Key: "horeca", Label: "HoReCa"}}},
			}}, nil
		},
	}

	svc := testService(Designer, nil, mock, nil)
	cat, err := svc.Choices(context.Background(), map[string]string{"group": "design"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Facets) != 2 || cat.Facets[0].Name != "city" {
		t.Fatalf("facets = %+v", cat.Facets)
	}
	seg, ok := cat.Lookup("segment")
	if !ok || seg[0].Value != "horeca" || seg[0].Label != "HoReCa" {
		t.Errorf("segment = %+v", seg)
	}
}

func TestQuestionnaireService_Upsert(t *testing.T) {
	mock := &mockRecordUC{
		upsertFn: func(_ context.Context, et entity.Type, id string, in questionnaireuc.Input) (domrec.Record, bool, error) {
			if et != entity.Repair || id != "r1" {
				t.Errorf("upsert %s/%s", et, id)
			}
			if in.Moderated == nil || !*in.Moderated {
				t.Error("expected moderation flag")
			}
			rec, err := domrec.New(id, et, in.Scalars, in.Lists)
			return rec, true, err
		},
	}

	svc := testService(Repair, nil, nil, mock)
	created, err := svc.Upsert(context.Background(), "r1", Input{
		Scalars:   map[string]string{"full_name": "Бригада"},
		Moderated: Bool(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created")
	}
}

func TestQuestionnaireService_GetAndDelete(t *testing.T) {
	deleted := false
	mock := &mockRecordUC{
		getFn: func(_ context.Context, et entity.Type, id string, _ domrec.Audience) (domrec.Record, error) {
			if id == "missing" {
				return domrec.Record{}, ErrRecordNotFound
			}
			return domrec.New(id, et, map[string]string{"vat_payment": "no"}, nil)
		},
		deleteFn: func(_ context.Context, _ entity.Type, id string) error {
			deleted = id == "s1"
			return nil
		},
	}

	svc := testService(Supplier, nil, nil, mock)
	q, err := svc.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type != Supplier || q.Scalars["vat_payment"] != "Нет" {
		t.Errorf("questionnaire = %+v", q)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("delete not forwarded")
	}
}
