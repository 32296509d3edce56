package db

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func doc(id string, age int, scalars map[string]string, lists map[string][]string) *Document {
	return &Document{
		ID:        id,
		Type:      "designer",
		Scalars:   scalars,
		Lists:     lists,
		CreatedAt: epoch.Add(time.Duration(age) * time.Hour),
		UpdatedAt: epoch.Add(time.Duration(age) * time.Hour),
	}
}

func ids(docs []*Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clause(t *testing.T, c filter.Condition) filter.Clause {
	t.Helper()
	cl, err := filter.NewClause(c)
	if err != nil {
		t.Fatalf("clause: %v", err)
	}
	return cl
}

func equals(field, value string) filter.Condition {
	c, err := filter.NewEquals(field, value)
	if err != nil {
		panic(err)
	}
	return c
}

func fixture() []*Document {
	return []*Document{
		doc("a", 1, map[string]string{"city": "Москва", "rating": "9"}, map[string][]string{"segments": {"horeca"}}),
		doc("b", 3, map[string]string{"city": "Казань", "rating": "10"}, map[string][]string{"segments": {"business"}}),
		doc("c", 2, map[string]string{"city": "Москва"}, map[string][]string{"work_cities": {"Сочи", " Казань "}}),
		{ID: "x", Type: "media", Scalars: map[string]string{"city": "Омск"}},
	}
}

func TestApply_DefaultOrdering(t *testing.T) {
	res, err := Apply(fixture(), &FindQuery{Type: "designer", Ordering: request.ParseOrdering("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 3 {
		t.Errorf("total = %d, want 3", res.Total)
	}
	if got := ids(res.Documents); !equal(got, []string{"b", "c", "a"}) {
		t.Errorf("order = %v, want [b c a]", got)
	}
}

func TestApply_FilterAndPaginate(t *testing.T) {
	q := &FindQuery{
		Type:     "designer",
		Filters:  filter.NewExpression(clause(t, equals("city", "Москва"))),
		Ordering: request.ParseOrdering("created_at"),
		Offset:   1,
		Limit:    5,
	}
	res, err := Apply(fixture(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("total = %d, want 2", res.Total)
	}
	if got := ids(res.Documents); !equal(got, []string{"c"}) {
		t.Errorf("page = %v, want [c]", got)
	}
}

func TestApply_OffsetPastEnd(t *testing.T) {
	res, err := Apply(fixture(), &FindQuery{Type: "designer", Offset: 10, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 3 || res.Documents == nil || len(res.Documents) != 0 {
		t.Errorf("got total=%d docs=%v, want 3 and an empty page", res.Total, res.Documents)
	}
}

func TestApply_NumericOrderingMissingLast(t *testing.T) {
	for _, tc := range []struct {
		ordering string
		want     []string
	}{
		{"rating", []string{"a", "b", "c"}},
		{"-rating", []string{"b", "a", "c"}},
	} {
		res, err := Apply(fixture(), &FindQuery{Type: "designer", Ordering: request.ParseOrdering(tc.ordering)})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.ordering, err)
		}
		if got := ids(res.Documents); !equal(got, tc.want) {
			t.Errorf("%s: order = %v, want %v", tc.ordering, got, tc.want)
		}
	}
}

func TestApply_UnknownOrdering(t *testing.T) {
	_, err := Apply(fixture(), &FindQuery{Type: "designer", Ordering: request.ParseOrdering("-nonexistent")})
	if !errors.Is(err, ErrInvalidOrdering) {
		t.Fatalf("expected ErrInvalidOrdering, got %v", err)
	}
}

func TestDistinctValues(t *testing.T) {
	got := DistinctValues(fixture(), &DistinctQuery{Type: "designer", Fields: []string{"city", "work_cities"}})
	if want := []string{"Казань", "Москва", "Сочи"}; !equal(got, want) {
		t.Errorf("distinct = %v, want %v", got, want)
	}
}

func TestDistinctValues_Narrowed(t *testing.T) {
	q := &DistinctQuery{
		Type:    "designer",
		Fields:  []string{"city"},
		Filters: filter.NewExpression(clause(t, equals("city", "Казань"))),
	}
	if got := DistinctValues(fixture(), q); !equal(got, []string{"Казань"}) {
		t.Errorf("distinct = %v, want [Казань]", got)
	}
}

func TestDistinctValues_NoMatches(t *testing.T) {
	got := DistinctValues(nil, &DistinctQuery{Type: "repair", Fields: []string{"city"}})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d := fixture()[2]
	c := d.Clone()
	c.Scalars["city"] = "Тверь"
	c.Lists["work_cities"][0] = "Тверь"
	if d.Scalars["city"] != "Москва" || d.Lists["work_cities"][0] != "Сочи" {
		t.Error("clone shares maps with the original")
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpGet, Err: ErrKeyNotFound}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Error("expected errors.Is to see through db.Error")
	}
	if err.Error() != "GET: db: key not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
