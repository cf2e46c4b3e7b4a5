package models

import (
	"strings"

	"github.com/gnode/gcaeditor/internal/marshal"
)

// Owner is an account allowed to edit an abstract.
type Owner struct {
	Identity
	Mail      *string
	FirstName *string
	LastName  *string
}

func NewOwner() *Owner { return &Owner{} }

var OwnerSchema = marshal.NewSchema("Owner", NewOwner,
	marshal.UUID("uuid", func(o *Owner) *string { return &o.UUID }),
	marshal.NullString("mail", func(o *Owner) **string { return &o.Mail }),
	marshal.NullString("firstName", func(o *Owner) **string { return &o.FirstName }),
	marshal.NullString("lastName", func(o *Owner) **string { return &o.LastName }),
)

func (o *Owner) Record() *marshal.Record { return marshal.Encode(OwnerSchema, o) }

func (o *Owner) MarshalJSON() ([]byte, error) { return encodeJSON(OwnerSchema, o) }

func (o *Owner) UnmarshalJSON(b []byte) error { return decodeJSON(OwnerSchema, o, b) }

// Format returns "First Last <mail>", leaving out missing parts.
func (o *Owner) Format() string {
	name := joinNonEmpty(" ", Deref(o.FirstName), Deref(o.LastName))
	if m := Deref(o.Mail); m != "" {
		if name == "" {
			return m
		}
		return name + " <" + m + ">"
	}
	return name
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
