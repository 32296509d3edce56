package choice

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NotImportant is the sentinel key meaning "no preference" for a facet.
const NotImportant = "not_important"

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u202f", " ", // narrow no-break space
	"\u2007", " ", // figure space
)

// Normalize canonicalizes a client token before it is compared to labels:
// no-break spaces become spaces, whitespace runs collapse, the result is trimmed and NFC-composed.
func Normalize(s string) string {
	s = spaceReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

// IsSentinel reports whether a token is the literal sentinel key.
func IsSentinel(token string) bool {
	return Normalize(token) == NotImportant
}
