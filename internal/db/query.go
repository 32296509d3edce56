package db

import (
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// FindQuery is the input for a filtered, ordered, paginated read.
type FindQuery struct {
	Type     string
	Filters  filter.Expression
	Ordering request.Ordering
	Offset   int
	Limit    int
}

// FindResult is one page of a Find.
type FindResult struct {
	// Total counts every matching document, not just the page.
	Total     int
	Documents []*Document
}

// DistinctQuery asks for the distinct values of fields across matching documents.
// Scalars and list elements are both collected.
type DistinctQuery struct {
	Type    string
	Fields  []string
	Filters filter.Expression
}
