package db

import (
	"time"

	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// Built-in document fields available to filters and ordering.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

var _ filter.Fields = (*Document)(nil)

// Document is the stored form of one record: flat string scalars and string lists.
type Document struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Scalars   map[string]string   `json:"scalars,omitempty"`
	Lists     map[string][]string `json:"lists,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Scalar implements filter.Fields. The id is exposed as a scalar.
func (d *Document) Scalar(name string) (string, bool) {
	if name == FieldID {
		return d.ID, true
	}
	v, ok := d.Scalars[name]
	return v, ok
}

// List implements filter.Fields.
func (d *Document) List(name string) []string {
	return d.Lists[name]
}

// Clone returns a deep copy, so stores never share maps with callers.
func (d *Document) Clone() *Document {
	out := *d
	if d.Scalars != nil {
		out.Scalars = make(map[string]string, len(d.Scalars))
		for k, v := range d.Scalars {
			out.Scalars[k] = v
		}
	}
	if d.Lists != nil {
		out.Lists = make(map[string][]string, len(d.Lists))
		for k, v := range d.Lists {
			out.Lists[k] = append([]string(nil), v...)
		}
	}
	return &out
}
