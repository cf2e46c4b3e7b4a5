package marshal

import (
	"fmt"
)

// Decode builds a new entity from a wire record.
//
// Each declared field is looked up by its wire name and then by its in-memory
// name, so the wire spelling wins when both are present. Absent fields keep
// the schema default and undeclared source fields are ignored.
func Decode[T any](s *Schema[T], src *Record) (*T, error) {
	dst := s.New()
	if err := DecodeInto(s, dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeInto applies a wire record to an existing entity.
func DecodeInto[T any](s *Schema[T], dst *T, src *Record) error {
	for _, f := range s.fields {
		v, ok := lookup(src, f)
		if !ok {
			continue
		}
		if err := f.decode(dst, v); err != nil {
			return fmt.Errorf("%s.%s: %w", s.name, f.name, err)
		}
	}
	return nil
}

// DecodeAll decodes an array of wire records, preserving order.
func DecodeAll[T any](s *Schema[T], items []any) ([]*T, error) {
	out := make([]*T, 0, len(items))
	for i, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: %w", s.name, i, typeError("object", item))
		}
		e, err := Decode(s, rec)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Encode writes every non-opaque field of e into a new record, in
// declaration order, using wire names.
func Encode[T any](s *Schema[T], e *T) *Record {
	rec := NewRecord()
	for _, f := range s.fields {
		if f.opaque {
			continue
		}
		rec.Set(f.WireName(), f.encode(e))
	}
	return rec
}

// EncodeAll encodes a collection. The result is never nil.
func EncodeAll[T any](s *Schema[T], items []*T) []any {
	out := make([]any, 0, len(items))
	for _, e := range items {
		out = append(out, Encode(s, e))
	}
	return out
}

func lookup[T any](src *Record, f Field[T]) (any, bool) {
	if v, ok := src.Get(f.WireName()); ok {
		return v, true
	}
	return src.Get(f.name)
}
