// Package entity enumerates the questionnaire record types of the directory.
package entity

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/facetdex/internal/domain"
)

// Type identifies one of the four questionnaire record types.
type Type string

const (
	// Designer is an interior designer questionnaire.
	Designer Type = "designer"
	// Repair is a repair team or contractor questionnaire.
	Repair Type = "repair"
	// Supplier is a supplier, showroom or factory questionnaire.
	Supplier Type = "supplier"
	// Media is a media outlet questionnaire.
	Media Type = "media"
)

var all = []Type{Designer, Repair, Supplier, Media}

// plurals maps URL path segments onto types.
var plurals = map[string]Type{
	"designers": Designer,
	"repairs":   Repair,
	"suppliers": Supplier,
}

// All returns every type in a stable order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// Parse accepts a type name or its plural URL segment, case-insensitively.
func Parse(s string) (Type, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if t, ok := plurals[v]; ok {
		return t, nil
	}
	t := Type(v)
	if !t.IsValid() {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownEntityType)
	}
	return t, nil
}

// IsValid reports whether t is one of the known types.
func (t Type) IsValid() bool {
	switch t {
	case Designer, Repair, Supplier, Media:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }
