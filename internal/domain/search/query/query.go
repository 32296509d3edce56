// Package query turns raw list-endpoint parameters into facet tokens.
package query

import (
	"net/url"
	"strings"
)

// Reserved parameter names that are never treated as facets.
const (
	ParamSearch   = "search"
	ParamOrdering = "ordering"
	ParamLimit    = "limit"
	ParamOffset   = "offset"
)

var reserved = map[string]struct{}{
	ParamSearch:   {},
	ParamOrdering: {},
	ParamLimit:    {},
	ParamOffset:   {},
}

// Parse splits a comma-separated facet parameter into trimmed, non-empty tokens in order.
// An empty or blank parameter yields nil: the facet is not applied.
func Parse(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Params is the parsed form of a list request's query string.
type Params struct {
	Facets   map[string][]string
	Search   string
	Ordering string
}

// FromValues extracts facet tokens, search and ordering. Repeated facet keys are
// concatenated (?segment=a&segment=b is the same as ?segment=a,b). Unknown names are kept;
// callers ignore the ones their registry does not declare.
func FromValues(v url.Values) Params {
	p := Params{
		Facets:   make(map[string][]string),
		Search:   strings.TrimSpace(v.Get(ParamSearch)),
		Ordering: strings.TrimSpace(v.Get(ParamOrdering)),
	}
	for name, raws := range v {
		if _, ok := reserved[name]; ok {
			continue
		}
		var tokens []string
		for _, raw := range raws {
			tokens = append(tokens, Parse(raw)...)
		}
		if len(tokens) > 0 {
			p.Facets[name] = tokens
		}
	}
	return p
}

// Without returns a copy of p without the named facets.
func (p Params) Without(names ...string) Params {
	out := Params{
		Facets:   make(map[string][]string, len(p.Facets)),
		Search:   p.Search,
		Ordering: p.Ordering,
	}
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	for k, v := range p.Facets {
		if _, ok := skip[k]; !ok {
			out.Facets[k] = v
		}
	}
	return out
}
