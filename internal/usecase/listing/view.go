package listing

import (
	"time"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
)

// View is a record as clients see it: enumerated keys rendered as labels.
type View struct {
	ID        string
	Type      entity.Type
	Scalars   map[string]string
	Lists     map[string][]string
	Moderated bool
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Render replaces stored keys with their display labels. Unknown values pass unchanged.
func Render(rec *domrec.Record) View {
	v := View{
		ID:        rec.ID(),
		Type:      rec.EntityType(),
		Scalars:   make(map[string]string, len(rec.Scalars())),
		Lists:     make(map[string][]string, len(rec.Lists())),
		Moderated: rec.Moderated(),
		Deleted:   rec.Deleted(),
		CreatedAt: rec.CreatedAt(),
		UpdatedAt: rec.UpdatedAt(),
	}
	reg, err := catalog.Registry(rec.EntityType())
	if err != nil {
		for k, s := range rec.Scalars() {
			v.Scalars[k] = s
		}
		for k, l := range rec.Lists() {
			v.Lists[k] = append([]string(nil), l...)
		}
		return v
	}

	for k, s := range rec.Scalars() {
		v.Scalars[k] = reg.LabelFor(k, s)
	}
	for k, l := range rec.Lists() {
		out := make([]string, len(l))
		for i, s := range l {
			out[i] = reg.LabelFor(k, s)
		}
		v.Lists[k] = out
	}
	return v
}

// RenderAll renders a page of records.
func RenderAll(recs []domrec.Record) []View {
	out := make([]View, len(recs))
	for i := range recs {
		out[i] = Render(&recs[i])
	}
	return out
}
