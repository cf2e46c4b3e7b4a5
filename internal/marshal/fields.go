package marshal

import (
	"encoding/json"
	"fmt"
	"math"
)

// UUID binds an identity token. The empty string is written as null and null
// reads back as the empty string.
func UUID[T any](name string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				*ptr(dst) = ""
				return nil
			}
			s, ok := v.(string)
			if !ok {
				return typeError("string", v)
			}
			*ptr(dst) = s
			return nil
		},
		encode: func(src *T) any {
			if s := *ptr(src); s != "" {
				return s
			}
			return nil
		},
	}
}

// String binds a non-nullable string. Null leaves the current value.
func String[T any](name string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				return nil
			}
			s, ok := v.(string)
			if !ok {
				return typeError("string", v)
			}
			*ptr(dst) = s
			return nil
		},
		encode: func(src *T) any { return *ptr(src) },
	}
}

// NullString binds a nullable string. Null overwrites the current value.
func NullString[T any](name string, ptr func(*T) **string) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				*ptr(dst) = nil
				return nil
			}
			s, ok := v.(string)
			if !ok {
				return typeError("string", v)
			}
			*ptr(dst) = &s
			return nil
		},
		encode: func(src *T) any {
			if p := *ptr(src); p != nil {
				return *p
			}
			return nil
		},
	}
}

// Int binds an integer. Null leaves the current value.
func Int[T any](name string, ptr func(*T) *int) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				return nil
			}
			n, err := toInt(v)
			if err != nil {
				return err
			}
			*ptr(dst) = n
			return nil
		},
		encode: func(src *T) any { return *ptr(src) },
	}
}

// Bool binds a boolean. Null leaves the current value.
func Bool[T any](name string, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				return nil
			}
			b, ok := v.(bool)
			if !ok {
				return typeError("boolean", v)
			}
			*ptr(dst) = b
			return nil
		},
		encode: func(src *T) any { return *ptr(src) },
	}
}

// Ints binds a list of integers, such as position references into a sibling
// collection. Null leaves the current value; an encoded list is never null.
func Ints[T any](name string, ptr func(*T) *[]int) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				return nil
			}
			items, ok := v.([]any)
			if !ok {
				return typeError("array", v)
			}
			out := make([]int, 0, len(items))
			for i, item := range items {
				n, err := toInt(item)
				if err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
				out = append(out, n)
			}
			*ptr(dst) = out
			return nil
		},
		encode: func(src *T) any {
			ints := *ptr(src)
			out := make([]any, len(ints))
			for i, n := range ints {
				out[i] = n
			}
			return out
		},
	}
}

// Enum binds a string-based enumeration. parse rejects values outside the
// enumeration; its error is wrapped together with ErrFieldType. Null leaves
// the current value.
func Enum[T any, E ~string](name string, parse func(string) (E, error), ptr func(*T) *E) Field[T] {
	return Field[T]{
		name: name,
		kind: KindScalar,
		decode: func(dst *T, v any) error {
			if v == nil {
				return nil
			}
			s, ok := v.(string)
			if !ok {
				return typeError("string", v)
			}
			e, err := parse(s)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFieldType, err)
			}
			*ptr(dst) = e
			return nil
		},
		encode: func(src *T) any { return string(*ptr(src)) },
	}
}

// One binds a single owned child entity. Null removes the child.
func One[T, C any](name string, child *Schema[C], ptr func(*T) **C) Field[T] {
	return Field[T]{
		name:  name,
		kind:  KindEntity,
		child: child.Name(),
		decode: func(dst *T, v any) error {
			if v == nil {
				*ptr(dst) = nil
				return nil
			}
			rec, ok := asRecord(v)
			if !ok {
				return typeError("object", v)
			}
			c, err := Decode(child, rec)
			if err != nil {
				return err
			}
			*ptr(dst) = c
			return nil
		},
		encode: func(src *T) any {
			c := *ptr(src)
			if c == nil {
				return nil
			}
			return Encode(child, c)
		},
	}
}

// Many binds an ordered collection of owned child entities. Null empties the
// collection; an encoded collection is never null.
func Many[T, C any](name string, child *Schema[C], ptr func(*T) *[]*C) Field[T] {
	return Field[T]{
		name:  name,
		kind:  KindCollection,
		child: child.Name(),
		decode: func(dst *T, v any) error {
			if v == nil {
				*ptr(dst) = make([]*C, 0)
				return nil
			}
			items, ok := v.([]any)
			if !ok {
				return typeError("array", v)
			}
			out, err := DecodeAll(child, items)
			if err != nil {
				return err
			}
			*ptr(dst) = out
			return nil
		},
		encode: func(src *T) any {
			return EncodeAll(child, *ptr(src))
		},
	}
}

func asRecord(v any) (*Record, bool) {
	switch x := v.(type) {
	case *Record:
		return x, true
	case map[string]any:
		return RecordFromMap(x), true
	default:
		return nil, false
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || x >= math.MaxInt+1 || x < math.MinInt {
			return 0, typeError("integer", v)
		}
		return int(x), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), nil
		}
		f, err := x.Float64()
		if err != nil || f != math.Trunc(f) || f >= math.MaxInt+1 || f < math.MinInt {
			return 0, typeError("integer", v)
		}
		return int(f), nil
	default:
		return 0, typeError("integer", v)
	}
}

func typeError(want string, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrFieldType, want, got)
}
