package listing

import (
	"context"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/facet"
)

// Repository executes compiled list requests.
type Repository interface {
	Find(ctx context.Context, req *request.Request) ([]domrec.Record, int, error)
}

// Observer receives facet pipeline reports and result sizes (metrics).
type Observer interface {
	FacetBuilt(t entity.Type, facet string, r facet.Report)
	ListServed(t entity.Type, total int)
}
