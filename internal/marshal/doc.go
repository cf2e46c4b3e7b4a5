// Package marshal converts between wire records and in-memory entities.
//
// Every entity type declares a Schema once, as an ordered list of typed
// fields bound to struct members by accessor closures:
//
//	var AffiliationSchema = marshal.NewSchema("Affiliation", NewAffiliation,
//		marshal.UUID("uuid", func(a *Affiliation) *string { return &a.UUID }),
//		marshal.NullString("name", func(a *Affiliation) **string { return &a.Name }),
//		marshal.Int("position", func(a *Affiliation) *int { return &a.Position }),
//	)
//
// Decode and Encode walk the declaration, recursing into nested entities and
// collections. Fields marked opaque are read from the wire but never written
// back. Wire names are the lower_snake_case spelling of the declared camelCase
// identifiers.
package marshal
