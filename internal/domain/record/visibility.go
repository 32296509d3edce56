package record

import (
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// Audience decides which records a caller may list.
type Audience int

const (
	// Public callers see moderated, non-deleted records.
	Public Audience = iota
	// Staff callers also see records awaiting moderation.
	Staff
)

func (a Audience) String() string {
	if a == Staff {
		return "staff"
	}
	return "public"
}

// FormatBool renders a flag the way it is stored in scalar fields.
func FormatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// VisibilityClauses returns the base-collection constraint for an audience.
// Staff browsing suppliers see deleted records too.
func VisibilityClauses(t entity.Type, a Audience) []filter.Clause {
	notDeleted := eq(FieldDeleted, FormatBool(false))
	if a == Staff {
		if t == entity.Supplier {
			return nil
		}
		return []filter.Clause{notDeleted}
	}
	return []filter.Clause{eq(FieldModeration, FormatBool(true)), notDeleted}
}

func eq(field, value string) filter.Clause {
	c, err := filter.NewEquals(field, value)
	if err != nil {
		panic(err)
	}
	cl, err := filter.NewClause(c)
	if err != nil {
		panic(err)
	}
	return cl
}
