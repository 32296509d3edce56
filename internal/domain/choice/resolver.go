package choice

import "strings"

// Source tells how a token was resolved.
type Source string

const (
	// SourceLabel means the token matched a label and was replaced by its key.
	SourceLabel Source = "label"
	// SourceKey means the token already was a declared key.
	SourceKey Source = "key"
	// SourcePassThrough means the token is unknown and is used literally.
	SourcePassThrough Source = "pass_through"
)

// Resolved is a token after label resolution.
type Resolved struct {
	Value  string
	Source Source
}

// Resolve translates a client token into a storage key.
// Labels are matched exactly after normalization; anything else passes through trimmed.
func (a Attribute) Resolve(token string) Resolved {
	idx := a.lookup()
	n := Normalize(token)
	if key, ok := idx.byLabel[n]; ok {
		return Resolved{Value: key, Source: SourceLabel}
	}
	v := strings.TrimSpace(token)
	if _, ok := idx.byKey[v]; ok {
		return Resolved{Value: v, Source: SourceKey}
	}
	return Resolved{Value: v, Source: SourcePassThrough}
}

// Label renders a stored key for display. Unknown keys are returned unchanged.
func (a Attribute) Label(key string) string {
	if l, ok := a.lookup().byKey[key]; ok {
		return l
	}
	return key
}
