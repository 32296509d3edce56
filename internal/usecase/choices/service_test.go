package choices

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
)

// --- Mocks ---

type distinctCall struct {
	fields  []string
	filters filter.Expression
}

type mockRepo struct {
	values []string
	err    error
	calls  []distinctCall
}

func (m *mockRepo) Distinct(_ context.Context, _ entity.Type, fields []string, f filter.Expression) ([]string, error) {
	m.calls = append(m.calls, distinctCall{fields: fields, filters: f})
	return m.values, m.err
}

type mockCompiler struct {
	params   []query.Params
	audience domrec.Audience
	err      error
}

func (m *mockCompiler) Filters(
	_ context.Context, _ entity.Type, p query.Params, a domrec.Audience,
) (filter.Expression, error) {
	m.params = append(m.params, p)
	m.audience = a
	return filter.NewExpression(), m.err
}

func params(t *testing.T, raw string) query.Params {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	return query.FromValues(v)
}

// --- Tests ---

func TestDescribe_RegistryOrder(t *testing.T) {
	svc := New(&mockRepo{}, &mockCompiler{})

	cat, err := svc.Describe(context.Background(), entity.Designer, params(t, ""), domrec.Public)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	attrs := catalog.MustRegistry(entity.Designer).Attributes()
	if len(cat.Entries) != len(attrs)+1 {
		t.Fatalf("expected %d entries, got %d", len(attrs)+1, len(cat.Entries))
	}
	for i, a := range attrs {
		if cat.Entries[i].Name != a.Name() {
			t.Errorf("entry %d: expected %q, got %q", i, a.Name(), cat.Entries[i].Name)
		}
	}
	if last := cat.Entries[len(cat.Entries)-1]; last.Name != GroupsKey {
		t.Errorf("expected %q last, got %q", GroupsKey, last.Name)
	}

	segments, ok := cat.Lookup("segment")
	if !ok || len(segments) != 6 {
		t.Fatalf("expected 6 segment choices, got %v", segments)
	}
	if segments[0].Key != "horeca" || segments[0].Label != "HoReCa" {
		t.Errorf("unexpected first segment: %+v", segments[0])
	}
}

func TestDescribe_FederalDistricts(t *testing.T) {
	svc := New(&mockRepo{}, &mockCompiler{})

	cat, err := svc.Describe(context.Background(), entity.Repair, params(t, ""), domrec.Public)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	groups, ok := cat.Lookup(GroupsKey)
	if !ok {
		t.Fatal("expected federal districts")
	}
	if len(groups) != len(catalog.FederalDistricts) {
		t.Fatalf("expected %d districts, got %d", len(catalog.FederalDistricts), len(groups))
	}
	if groups[0].Key != "central" || groups[0].Label != "Центральный федеральный округ" {
		t.Errorf("unexpected first district: %+v", groups[0])
	}
}

func TestDescribe_DerivedCitiesNarrowed(t *testing.T) {
	repo := &mockRepo{values: []string{"Казань", "Москва"}}
	comp := &mockCompiler{}
	svc := New(repo, comp)

	p := params(t, "city=Сочи&group=design")
	cat, err := svc.Describe(context.Background(), entity.Designer, p, domrec.Staff)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if len(repo.calls) != 1 {
		t.Fatalf("expected 1 distinct call, got %d", len(repo.calls))
	}
	if got := strings.Join(repo.calls[0].fields, ","); got != "city,work_cities" {
		t.Errorf("expected city fields, got %q", got)
	}
	if _, ok := comp.params[0].Facets["city"]; ok {
		t.Error("city's own parameter must not narrow city choices")
	}
	if _, ok := comp.params[0].Facets["group"]; !ok {
		t.Error("upstream group filter must narrow city choices")
	}
	if comp.audience != domrec.Staff {
		t.Errorf("expected staff audience, got %v", comp.audience)
	}

	cities, _ := cat.Lookup("city")
	if len(cities) != 2 || cities[0].Key != "Казань" || cities[0].Label != "Казань" {
		t.Errorf("unexpected cities: %+v", cities)
	}
}

func TestDescribe_NoMatchesIsEmptyList(t *testing.T) {
	svc := New(&mockRepo{values: nil}, &mockCompiler{})

	cat, err := svc.Describe(context.Background(), entity.Media, params(t, "group=media"), domrec.Public)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	cities, ok := cat.Lookup("city")
	if !ok || cities == nil || len(cities) != 0 {
		t.Fatalf("expected empty non-nil city list, got %#v", cities)
	}

	body, err := json.Marshal(cat)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(body), `"city":[]`) {
		t.Errorf("expected empty city array in %s", body)
	}
}

func TestDescribe_SupplierAssortmentDerived(t *testing.T) {
	repo := &mockRepo{values: []string{"Ламинат"}}
	svc := New(repo, &mockCompiler{})

	cat, err := svc.Describe(context.Background(), entity.Supplier, params(t, ""), domrec.Public)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	derived := 0
	for _, a := range catalog.MustRegistry(entity.Supplier).Attributes() {
		if a.Derived() {
			derived++
		}
	}
	if len(repo.calls) != derived {
		t.Errorf("expected %d distinct calls, got %d", derived, len(repo.calls))
	}
	if got, _ := cat.Lookup("finishing_materials"); len(got) != 1 || got[0].Key != "Ламинат" {
		t.Errorf("unexpected finishing_materials: %+v", got)
	}
}

func TestDescribe_LabelsRoundTrip(t *testing.T) {
	svc := New(&mockRepo{}, &mockCompiler{})

	for _, et := range entity.All() {
		cat, err := svc.Describe(context.Background(), et, params(t, ""), domrec.Public)
		if err != nil {
			t.Fatalf("%s: Describe: %v", et, err)
		}
		reg := catalog.MustRegistry(et)
		for _, e := range cat.Entries {
			a, ok := reg.Lookup(e.Name)
			if !ok {
				continue
			}
			seen := make(map[string]bool)
			for _, c := range e.Choices {
				key := a.Resolve(c.Label).Value
				if key != c.Key {
					t.Errorf("%s.%s: label %q resolved to %q, want %q", et, e.Name, c.Label, key, c.Key)
				}
				if seen[key] {
					t.Errorf("%s.%s: key %q published twice", et, e.Name, key)
				}
				seen[key] = true
			}
		}
	}
}

func TestDescribe_Errors(t *testing.T) {
	_, err := New(&mockRepo{}, &mockCompiler{}).
		Describe(context.Background(), entity.Type("events"), params(t, ""), domrec.Public)
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Errorf("expected ErrUnknownEntityType, got %v", err)
	}

	boom := errors.New("boom")
	_, err = New(&mockRepo{err: boom}, &mockCompiler{}).
		Describe(context.Background(), entity.Designer, params(t, ""), domrec.Public)
	if !errors.Is(err, boom) {
		t.Errorf("expected repo error, got %v", err)
	}

	_, err = New(&mockRepo{}, &mockCompiler{err: boom}).
		Describe(context.Background(), entity.Designer, params(t, ""), domrec.Public)
	if !errors.Is(err, boom) {
		t.Errorf("expected compiler error, got %v", err)
	}
}

func TestCatalog_MarshalJSONOrder(t *testing.T) {
	cat := Catalog{Type: entity.Designer, Entries: []Entry{
		{Name: "segment", Choices: nil},
		{Name: "city", Choices: nil},
		{Name: "group", Choices: nil},
	}}
	body, err := json.Marshal(cat)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(body) != `{"segment":[],"city":[],"group":[]}` {
		t.Errorf("unexpected JSON: %s", body)
	}
}
