package choice

import (
	"fmt"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

// Registry is the ordered facet vocabulary of one entity type. Read-only after construction.
type Registry struct {
	entityType entity.Type
	attrs      []Attribute
	byName     map[string]int
	search     []string
}

// NewRegistry validates attribute names and keeps declaration order.
func NewRegistry(t entity.Type, search []string, attrs ...Attribute) (*Registry, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("registry: %w: %q", domain.ErrUnknownEntityType, t)
	}
	r := &Registry{
		entityType: t,
		attrs:      make([]Attribute, 0, len(attrs)),
		byName:     make(map[string]int, len(attrs)),
		search:     append([]string(nil), search...),
	}
	for _, a := range attrs {
		if _, dup := r.byName[a.Name()]; dup {
			return nil, fmt.Errorf("registry %s: duplicate attribute %q", t, a.Name())
		}
		r.byName[a.Name()] = len(r.attrs)
		r.attrs = append(r.attrs, a)
	}
	return r, nil
}

// MustRegistry is NewRegistry for static definitions; it panics on error.
func MustRegistry(t entity.Type, search []string, attrs ...Attribute) *Registry {
	r, err := NewRegistry(t, search, attrs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Type returns the entity type the registry describes.
func (r *Registry) Type() entity.Type { return r.entityType }

// SearchFields returns the display fields matched by free-text search.
func (r *Registry) SearchFields() []string { return r.search }

// Attribute returns the named attribute or ErrUnknownAttribute.
func (r *Registry) Attribute(name string) (Attribute, error) {
	a, ok := r.Lookup(name)
	if !ok {
		return Attribute{}, fmt.Errorf("%s.%s: %w", r.entityType, name, domain.ErrUnknownAttribute)
	}
	return a, nil
}

// Lookup is Attribute without the error, for user-supplied names.
func (r *Registry) Lookup(name string) (Attribute, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Attribute{}, false
	}
	return r.attrs[i], true
}

// Attributes returns all attributes in declaration order.
func (r *Registry) Attributes() []Attribute {
	out := make([]Attribute, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// LabelFor renders a stored value of a field through the first enumerated
// attribute whose primary field it is. Values of other fields are returned unchanged.
func (r *Registry) LabelFor(field, value string) string {
	for _, a := range r.attrs {
		if a.Field() == field && len(a.Choices()) > 0 {
			return a.Label(value)
		}
	}
	return value
}

// KeyFor is the inverse of LabelFor, used to canonicalize values on write.
func (r *Registry) KeyFor(field, value string) string {
	for _, a := range r.attrs {
		if a.Field() == field && len(a.Choices()) > 0 {
			return a.Resolve(value).Value
		}
	}
	return value
}
