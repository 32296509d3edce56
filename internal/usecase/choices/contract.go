package choices

import (
	"context"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
)

// Repository reads distinct stored values.
type Repository interface {
	Distinct(ctx context.Context, t entity.Type, fields []string, filters filter.Expression) ([]string, error)
}

// FilterCompiler turns list parameters into the filters a listing would apply.
type FilterCompiler interface {
	Filters(ctx context.Context, t entity.Type, p query.Params, a domrec.Audience) (filter.Expression, error)
}
