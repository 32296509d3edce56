package facetdex

import "github.com/kailas-cloud/facetdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRecordNotFound    = domain.ErrRecordNotFound
	ErrUnknownEntityType = domain.ErrUnknownEntityType
	ErrInvalidRecord     = domain.ErrInvalidRecord
	ErrInvalidOrdering   = domain.ErrInvalidOrdering
	ErrInvalidPagination = domain.ErrInvalidPagination
)
