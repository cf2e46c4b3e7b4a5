package marshal

import (
	"errors"
	"fmt"
)

// ErrFieldType is wrapped by decode errors for values of the wrong JSON type.
var ErrFieldType = errors.New("unexpected field type")

// Kind tells how a field is carried between the wire record and the entity.
type Kind int

const (
	// KindScalar is a string, number, boolean or a list of numbers.
	KindScalar Kind = iota
	// KindEntity is exactly one owned child entity.
	KindEntity
	// KindCollection is an ordered sequence of owned child entities.
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEntity:
		return "entity"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is a single declared member of a Schema. Fields are built with the
// typed constructors in fields.go and bound to a struct member by an accessor
// closure.
type Field[T any] struct {
	name   string
	kind   Kind
	opaque bool
	child  string

	decode func(dst *T, v any) error
	encode func(src *T) any
}

// Name is the in-memory identifier.
func (f Field[T]) Name() string { return f.name }

// WireName is the identifier used in wire records.
func (f Field[T]) WireName() string { return ToWireName(f.name) }

func (f Field[T]) Kind() Kind { return f.kind }

// Opaque fields are decoded but never encoded.
func (f Field[T]) Opaque() bool { return f.opaque }

// Child names the schema of a nested field, empty for scalars.
func (f Field[T]) Child() string { return f.child }

// AsOpaque returns a copy of f excluded from encoding.
func (f Field[T]) AsOpaque() Field[T] {
	f.opaque = true
	return f
}

// Schema is the explicit field declaration of an entity type T.
type Schema[T any] struct {
	name   string
	newFn  func() *T
	fields []Field[T]
}

// NewSchema declares the schema of T. newFn must return an instance holding
// the declared defaults. It panics on duplicate field names, since schemas are
// package-level declarations and such a mistake is a programming error.
func NewSchema[T any](name string, newFn func() *T, fields ...Field[T]) *Schema[T] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.name]; dup {
			panic(fmt.Sprintf("marshal: schema %s declares field %q twice", name, f.name))
		}
		seen[f.name] = struct{}{}
	}
	return &Schema[T]{name: name, newFn: newFn, fields: fields}
}

// Name returns the entity type name.
func (s *Schema[T]) Name() string { return s.name }

// New returns a fresh entity with declared defaults.
func (s *Schema[T]) New() *T { return s.newFn() }

// Fields returns the declared fields in order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the in-memory identifiers in declaration order.
func (s *Schema[T]) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Field looks up a declared field by in-memory name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}
