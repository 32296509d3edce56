// Package choice holds the per-type facet vocabulary: attributes, their (key, label)
// choices and combinators, and label resolution in both directions.
package choice

import (
	"fmt"
	"sync"
)

// Choice is one enumerated value of an attribute.
type Choice struct {
	Key   string `json:"value"`
	Label string `json:"label"`
}

// Combinator is the rule for combining several selected values of one facet.
type Combinator string

const (
	// CombineOr matches records holding any of the values.
	CombineOr Combinator = "or"
	// CombineAnd matches records holding every value (city facets).
	CombineAnd Combinator = "and"
	// CombineHeuristic infers a category from free text keywords and legacy label spellings.
	CombineHeuristic Combinator = "heuristic"
	// CombineText matches values as substrings of free-text fields.
	CombineText Combinator = "text"
)

// IsValid reports whether c is a known combinator.
func (c Combinator) IsValid() bool {
	switch c {
	case CombineOr, CombineAnd, CombineHeuristic, CombineText:
		return true
	}
	return false
}

// Group is a named macro value expanding to a fixed member list.
type Group struct {
	Key     string   `json:"value"`
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// Attribute is an immutable facet definition. Copies share the lazily built label index.
type Attribute struct {
	name        string
	fields      []string
	choices     []Choice
	multiValued bool
	combinator  Combinator
	derived     bool
	textFields  []string
	keywords    map[string][]string
	groups      []Group
	index       *labelIndex
}

// AttributeOption configures an Attribute.
type AttributeOption func(*Attribute)

// Fields sets the storage fields the facet matches. The first one is primary.
func Fields(names ...string) AttributeOption {
	return func(a *Attribute) { a.fields = append([]string(nil), names...) }
}

// Choices sets the enumerated values in display order.
func Choices(cs ...Choice) AttributeOption {
	return func(a *Attribute) { a.choices = append([]Choice(nil), cs...) }
}

// MultiValued marks the primary field as a list.
func MultiValued() AttributeOption {
	return func(a *Attribute) { a.multiValued = true }
}

// Combine sets the combinator. Default: CombineOr.
func Combine(c Combinator) AttributeOption {
	return func(a *Attribute) { a.combinator = c }
}

// Derived marks an attribute whose values come from live data rather than an enumeration.
func Derived() AttributeOption {
	return func(a *Attribute) { a.derived = true }
}

// TextFields sets the free-text fields probed by heuristic and text facets.
func TextFields(names ...string) AttributeOption {
	return func(a *Attribute) { a.textFields = append([]string(nil), names...) }
}

// Keywords maps a choice key to substrings that imply it in free text.
func Keywords(key string, words ...string) AttributeOption {
	return func(a *Attribute) {
		if a.keywords == nil {
			a.keywords = make(map[string][]string)
		}
		a.keywords[key] = append(a.keywords[key], words...)
	}
}

// Groups declares group expansions recognized by the facet.
func Groups(gs ...Group) AttributeOption {
	return func(a *Attribute) { a.groups = append([]Group(nil), gs...) }
}

// NewAttribute validates and creates an Attribute.
// Keys and normalized labels must be unique within the attribute.
func NewAttribute(name string, opts ...AttributeOption) (Attribute, error) {
	a := Attribute{name: name, combinator: CombineOr}
	for _, o := range opts {
		o(&a)
	}

	if name == "" {
		return Attribute{}, fmt.Errorf("attribute name is required")
	}
	if len(a.fields) == 0 && len(a.textFields) == 0 {
		return Attribute{}, fmt.Errorf("attribute %q: at least one field is required", name)
	}
	if !a.combinator.IsValid() {
		return Attribute{}, fmt.Errorf("attribute %q: invalid combinator %q", name, a.combinator)
	}
	if (a.combinator == CombineHeuristic || a.combinator == CombineText) && len(a.textFields) == 0 {
		return Attribute{}, fmt.Errorf("attribute %q: %s combinator needs text fields", name, a.combinator)
	}
	if a.combinator == CombineHeuristic && len(a.fields) == 0 {
		return Attribute{}, fmt.Errorf("attribute %q: heuristic combinator needs a categories field", name)
	}

	keys := make(map[string]struct{}, len(a.choices))
	labels := make(map[string]struct{}, len(a.choices))
	for _, c := range a.choices {
		if c.Key == "" {
			return Attribute{}, fmt.Errorf("attribute %q: empty choice key", name)
		}
		if _, dup := keys[c.Key]; dup {
			return Attribute{}, fmt.Errorf("attribute %q: duplicate key %q", name, c.Key)
		}
		keys[c.Key] = struct{}{}
		l := Normalize(c.Label)
		if _, dup := labels[l]; dup {
			return Attribute{}, fmt.Errorf("attribute %q: duplicate label %q", name, c.Label)
		}
		labels[l] = struct{}{}
	}
	for k := range a.keywords {
		if _, ok := keys[k]; !ok {
			return Attribute{}, fmt.Errorf("attribute %q: keywords for undeclared key %q", name, k)
		}
	}
	for _, g := range a.groups {
		if g.Key == "" || len(g.Members) == 0 {
			return Attribute{}, fmt.Errorf("attribute %q: group %q needs a key and members", name, g.Label)
		}
	}

	a.index = &labelIndex{}
	return a, nil
}

// MustAttribute is NewAttribute for static definitions; it panics on error.
func MustAttribute(name string, opts ...AttributeOption) Attribute {
	a, err := NewAttribute(name, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the query parameter name.
func (a Attribute) Name() string { return a.name }

// Field returns the primary storage field, or "" for text-only facets.
func (a Attribute) Field() string {
	if len(a.fields) == 0 {
		return ""
	}
	return a.fields[0]
}

// Fields returns every storage field the facet matches.
func (a Attribute) Fields() []string { return a.fields }

// Choices returns the enumerated values in declared order.
func (a Attribute) Choices() []Choice { return a.choices }

// MultiValued reports whether the primary field holds a list.
func (a Attribute) MultiValued() bool { return a.multiValued }

// Combinator returns the facet's combinator.
func (a Attribute) Combinator() Combinator { return a.combinator }

// Derived reports whether values are computed from data.
func (a Attribute) Derived() bool { return a.derived }

// TextFields returns the free-text fields of heuristic and text facets.
func (a Attribute) TextFields() []string { return a.textFields }

// Groups returns the declared group expansions.
func (a Attribute) Groups() []Group { return a.groups }

// Keywords returns the free-text substrings implying key.
func (a Attribute) Keywords(key string) ([]string, bool) {
	kw, ok := a.keywords[key]
	return kw, ok
}

// Group finds the group whose key or label equals the normalized token.
func (a Attribute) Group(token string) (Group, bool) {
	t := Normalize(token)
	for _, g := range a.groups {
		if t == g.Key || t == Normalize(g.Label) {
			return g, true
		}
	}
	return Group{}, false
}

// labelIndex holds both lookup directions, built on first use.
type labelIndex struct {
	once    sync.Once
	byLabel map[string]string
	byKey   map[string]string
}

func (a Attribute) lookup() *labelIndex {
	idx := a.index
	if idx == nil {
		idx = &labelIndex{}
	}
	idx.once.Do(func() {
		idx.byLabel = make(map[string]string, len(a.choices))
		idx.byKey = make(map[string]string, len(a.choices))
		for _, c := range a.choices {
			idx.byLabel[Normalize(c.Label)] = c.Key
			idx.byKey[c.Key] = c.Label
		}
	})
	return idx
}
