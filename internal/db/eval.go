package db

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// Apply filters, orders and paginates documents in memory. Stores without a query
// engine of their own (memory, redis) load the documents of a type and delegate here.
//
// Ordering by a field that is neither built in nor carried by any document of the type
// fails with ErrInvalidOrdering.
func Apply(docs []*Document, q *FindQuery) (*FindResult, error) {
	if err := checkOrdering(docs, q.Type, q.Ordering.Field); err != nil {
		return nil, err
	}

	matched := make([]*Document, 0, len(docs))
	for _, d := range docs {
		if d.Type == q.Type && q.Filters.Matches(d) {
			matched = append(matched, d)
		}
	}
	Sort(matched, q.Ordering)

	return &FindResult{
		Total:     len(matched),
		Documents: paginate(matched, q.Offset, q.Limit),
	}, nil
}

// DistinctValues collects the distinct non-empty values of q.Fields over the matching
// documents, sorted for display.
func DistinctValues(docs []*Document, q *DistinctQuery) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, d := range docs {
		if d.Type != q.Type || !q.Filters.Matches(d) {
			continue
		}
		for _, f := range q.Fields {
			if v, ok := d.Scalars[f]; ok {
				add(v)
			}
			for _, v := range d.Lists[f] {
				add(v)
			}
		}
	}
	SortValues(out)
	return out
}

// SortValues orders display values with Russian collation.
func SortValues(values []string) {
	collate.New(language.Russian).SortStrings(values)
}

// Sort orders documents in place. Documents missing the field go last in either
// direction; ties break on id.
func Sort(docs []*Document, o request.Ordering) {
	slices.SortStableFunc(docs, func(a, b *Document) int {
		if c := compareField(a, b, o.Field, o.Desc); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func compareField(a, b *Document, field string, desc bool) int {
	var c int
	switch field {
	case FieldID:
		c = strings.Compare(a.ID, b.ID)
	case FieldCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case FieldUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		av, aok := a.Scalars[field]
		bv, bok := b.Scalars[field]
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c = compareValues(av, bv)
	}
	if desc {
		return -c
	}
	return c
}

// compareValues compares numerically when both values are numbers.
func compareValues(a, b string) int {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		return cmp.Compare(af, bf)
	}
	return strings.Compare(a, b)
}

func checkOrdering(docs []*Document, docType, field string) error {
	switch field {
	case "", FieldID, FieldCreatedAt, FieldUpdatedAt:
		return nil
	}
	for _, d := range docs {
		if d.Type != docType {
			continue
		}
		if _, ok := d.Scalars[field]; ok {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", field, ErrInvalidOrdering)
}

func paginate(docs []*Document, offset, limit int) []*Document {
	offset = max(offset, 0)
	if offset >= len(docs) {
		return []*Document{}
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}
