package record

import (
	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
)

// toDocument flattens a record; the moderation flags travel as scalars so filters can see them.
func toDocument(r *domrec.Record) *db.Document {
	scalars := make(map[string]string, len(r.Scalars())+2)
	for k, v := range r.Scalars() {
		scalars[k] = v
	}
	scalars[domrec.FieldModeration] = domrec.FormatBool(r.Moderated())
	scalars[domrec.FieldDeleted] = domrec.FormatBool(r.Deleted())

	lists := make(map[string][]string, len(r.Lists()))
	for k, v := range r.Lists() {
		lists[k] = append([]string(nil), v...)
	}

	return &db.Document{
		ID:        r.ID(),
		Type:      r.EntityType().String(),
		Scalars:   scalars,
		Lists:     lists,
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

// fromDocument rebuilds a record, lifting the flags back out of the scalars.
func fromDocument(d *db.Document) domrec.Record {
	scalars := make(map[string]string, len(d.Scalars))
	var moderated, deleted bool
	for k, v := range d.Scalars {
		switch k {
		case domrec.FieldModeration:
			moderated = v == "true"
		case domrec.FieldDeleted:
			deleted = v == "true"
		default:
			scalars[k] = v
		}
	}
	lists := d.Lists
	if lists == nil {
		lists = map[string][]string{}
	}
	return domrec.Reconstruct(d.ID, entity.Type(d.Type), scalars, lists, moderated, deleted, d.CreatedAt, d.UpdatedAt)
}
