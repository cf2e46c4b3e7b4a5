// Package models defines the conference and abstract entities edited by the
// client together with their wire schemas.
package models

import (
	"encoding/json"
	"errors"

	"github.com/gnode/gcaeditor/internal/marshal"
)

// ErrIndexOutOfRange is returned by collection helpers for an invalid index.
var ErrIndexOutOfRange = errors.New("index out of range")

// Identifiable is implemented by every entity carrying a server identity.
type Identifiable interface {
	ID() string
	IsSaved() bool
}

// Marshaled is implemented by entities with a declared wire schema.
type Marshaled interface {
	Record() *marshal.Record
	json.Marshaler
	json.Unmarshaler
}

// Identity is the server assigned handle of an entity. It is empty until the
// entity has been created on the server.
type Identity struct {
	UUID string
}

func (i Identity) ID() string { return i.UUID }

// IsSaved reports whether the server has assigned an identity.
func (i Identity) IsSaved() bool { return i.UUID != "" }

// Str returns a pointer to s, for nullable string fields.
func Str(s string) *string { return &s }

// Deref returns the value of a nullable string or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func encodeJSON[T any](s *marshal.Schema[T], e *T) ([]byte, error) {
	return json.Marshal(marshal.Encode(s, e))
}

func decodeJSON[T any](s *marshal.Schema[T], dst *T, data []byte) error {
	rec, err := marshal.ParseRecord(data)
	if err != nil {
		return err
	}
	*dst = *s.New()
	return marshal.DecodeInto(s, dst, rec)
}
