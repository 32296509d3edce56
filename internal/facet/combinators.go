package facet

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// condSet collects conditions, skipping invalid and duplicate ones.
type condSet struct {
	conds []filter.Condition
	seen  map[filter.Condition]struct{}
}

func (s *condSet) add(c filter.Condition, err error) {
	if err != nil {
		return
	}
	if s.seen == nil {
		s.seen = make(map[filter.Condition]struct{})
	}
	if _, dup := s.seen[c]; dup {
		return
	}
	s.seen[c] = struct{}{}
	s.conds = append(s.conds, c)
}

// match adds the membership or equality test of the attribute's primary field.
func (s *condSet) match(attr choice.Attribute, v string) {
	if attr.Field() == "" {
		return
	}
	if attr.MultiValued() {
		s.add(filter.NewContains(attr.Field(), v))
		return
	}
	s.add(filter.NewEquals(attr.Field(), v))
}

// substring adds a containment test of v over every field.
func (s *condSet) substring(fields []string, v string) {
	for _, f := range fields {
		s.add(filter.NewSubstring(f, v))
	}
}

// orConditions: the record holds any of the keys.
func orConditions(attr choice.Attribute, values []value) []filter.Condition {
	var s condSet
	for _, v := range values {
		s.match(attr, v.key)
	}
	return s.conds
}

// combineAnd: one clause per value, so the record must match all of them.
// Each value may match any of the attribute's fields.
func combineAnd(attr choice.Attribute, values []value) []filter.Clause {
	var out []filter.Clause
	for _, v := range values {
		var s condSet
		s.substring(attr.Fields(), v.key)
		out = appendClause(out, s.conds)
	}
	return out
}

// memberConditions: an expanded group matches any member in any field.
func memberConditions(attr choice.Attribute, members []string) []filter.Condition {
	var s condSet
	for _, m := range members {
		s.substring(attr.Fields(), m)
	}
	return s.conds
}

// heuristicConditions infers a category. For a value with a keyword table the record
// matches when its free text contains a keyword, or its categories list holds the key
// or the label in one of the spellings legacy records use. Other values fall back to
// plain containment on the categories list.
func heuristicConditions(attr choice.Attribute, values []value) []filter.Condition {
	var s condSet
	for _, v := range values {
		keywords, ok := attr.Keywords(v.key)
		if !ok {
			s.match(attr, v.key)
			continue
		}
		for _, kw := range keywords {
			s.substring(attr.TextFields(), kw)
		}
		s.match(attr, v.key)
		for _, variant := range CaseVariants(attr.Label(v.key)) {
			s.match(attr, variant)
		}
	}
	return s.conds
}

// textConditions: the value is looked up in the primary field, if any, and as a
// substring of the free-text fields under both its key and its label.
func textConditions(attr choice.Attribute, values []value) []filter.Condition {
	var s condSet
	for _, v := range values {
		s.match(attr, v.key)
		s.substring(attr.TextFields(), v.key)
		if label := attr.Label(v.key); label != v.key {
			s.substring(attr.TextFields(), label)
		}
	}
	return s.conds
}

// CaseVariants returns the distinct capitalizations probed against legacy data:
// as declared, lower case, sentence case, title case and upper case.
func CaseVariants(s string) []string {
	if s == "" {
		return nil
	}
	lower := cases.Lower(language.Russian).String(s)
	candidates := []string{
		s,
		lower,
		upperFirst(lower),
		cases.Title(language.Russian).String(s),
		cases.Upper(language.Russian).String(s),
	}
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
