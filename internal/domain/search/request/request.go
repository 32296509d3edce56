package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// List parameter limits.
const (
	// DefaultOrdering is applied when the client sends none.
	DefaultOrdering = "-created_at"
	DefaultLimit    = 100
	MaxLimit        = 1000
)

// Ordering is a single sort key. The field name is not validated here; storage decides.
type Ordering struct {
	Field string
	Desc  bool
}

// ParseOrdering reads "field" or "-field". Empty input yields DefaultOrdering.
func ParseOrdering(s string) Ordering {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		s = DefaultOrdering
	}
	if strings.HasPrefix(s, "-") {
		return Ordering{Field: s[1:], Desc: true}
	}
	return Ordering{Field: s}
}

func (o Ordering) String() string {
	if o.Desc {
		return "-" + o.Field
	}
	return o.Field
}

// Request is a compiled list query ready for the storage layer.
type Request struct {
	entityType entity.Type
	filters    filter.Expression
	ordering   Ordering
	limit      int
	offset     int
}

// New validates pagination and creates a Request.
// limit=0 means DefaultLimit; limit above maxLimit is clamped.
func New(
	t entity.Type,
	filters filter.Expression,
	ordering Ordering,
	limit, offset, maxLimit int,
) (Request, error) {
	if !t.IsValid() {
		return Request{}, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}
	if limit < 0 || offset < 0 {
		return Request{}, fmt.Errorf("limit=%d offset=%d: %w", limit, offset, domain.ErrInvalidPagination)
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if ordering.Field == "" {
		ordering = ParseOrdering("")
	}
	return Request{
		entityType: t,
		filters:    filters,
		ordering:   ordering,
		limit:      limit,
		offset:     offset,
	}, nil
}

// EntityType returns the record type queried.
func (r *Request) EntityType() entity.Type { return r.entityType }

// Filters returns the compiled facet, search and visibility expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Ordering returns the sort key.
func (r *Request) Ordering() Ordering { return r.ordering }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of records skipped.
func (r *Request) Offset() int { return r.offset }
