package facetdex

import (
	"time"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

// EntityType names a questionnaire type.
type EntityType string

// Questionnaire types.
const (
	Designer EntityType = EntityType(entity.Designer)
	Repair   EntityType = EntityType(entity.Repair)
	Supplier EntityType = EntityType(entity.Supplier)
	Media    EntityType = EntityType(entity.Media)
)

// Questionnaire is a stored record with enumerated values rendered as labels.
type Questionnaire struct {
	ID        string
	Type      EntityType
	Scalars   map[string]string
	Lists     map[string][]string
	Moderated bool
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input is a questionnaire payload. Labels are stored as their keys.
type Input struct {
	Scalars map[string]string
	Lists   map[string][]string
	// Moderated is nil to keep the stored flag.
	Moderated *bool
}

// Bool returns a pointer to v, for Input.Moderated.
func Bool(v bool) *bool { return &v }

// ListOptions are the parameters of a listing.
type ListOptions struct {
	// Filters maps facet names to comma-separated values.
	Filters  map[string]string
	Search   string
	Ordering string // "field" or "-field"; default "-created_at"
	Limit    int
	Offset   int
}

// Page is one page of a listing.
type Page struct {
	Count   int
	Results []Questionnaire
	Limit   int
	Offset  int
}

// Choice is a filter value and its display label.
type Choice struct {
	Value string
	Label string
}

// FacetChoices lists the values of one facet.
type FacetChoices struct {
	Name    string
	Choices []Choice
}

// Catalog is the filter vocabulary of a type, in facet order.
type Catalog struct {
	Facets []FacetChoices
}

// Lookup returns the choices of a facet.
func (c Catalog) Lookup(name string) ([]Choice, bool) {
	for _, f := range c.Facets {
		if f.Name == name {
			return f.Choices, true
		}
	}
	return nil, false
}
