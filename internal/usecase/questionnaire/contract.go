package questionnaire

import (
	"context"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
)

// Repository stores questionnaire records.
type Repository interface {
	Upsert(ctx context.Context, rec *domrec.Record) (bool, error)
	Get(ctx context.Context, t entity.Type, id string) (domrec.Record, error)
}
