package marshal

import (
	"strings"
	"unicode"
)

// ToWireName converts an in-memory camelCase identifier to the lower_snake_case
// spelling used on the wire, e.g. "conflictOfInterest" -> "conflict_of_interest".
//
// Every upper-case letter starts its own segment, so runs of capitals survive
// the trip back through FromWireName ("doiURL" -> "doi_u_r_l" -> "doiURL").
// Identifiers must start with a lower-case letter and contain no underscore.
func ToWireName(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier) + 4)
	for i, r := range identifier {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromWireName is the inverse of ToWireName.
func FromWireName(wire string) string {
	var b strings.Builder
	b.Grow(len(wire))
	upper := false
	for _, r := range wire {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
