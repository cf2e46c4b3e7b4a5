package marshal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNotObject is returned when a wire payload is not a JSON object.
var ErrNotObject = errors.New("wire record must be a JSON object")

// Record is a wire record: a JSON object that remembers the order of its keys.
//
// Nested objects are held as *Record and arrays as []any, so a decoded payload
// can be walked without type switches on map[string]any.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key. A nil record has no keys.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present, even with a null value.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key from the record.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// MarshalJSON writes the record with its keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order. Numbers are kept
// as json.Number so integer fields are not rounded through float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = Record{values: make(map[string]any)}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}
	rec, err := readObject(dec)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// ParseRecord decodes a JSON object into a Record.
func ParseRecord(data []byte) (*Record, error) {
	r := NewRecord()
	if err := r.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return r, nil
}

func readObject(dec *json.Decoder) (*Record, error) {
	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		val, err := readValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		rec.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func readArray(dec *json.Decoder) ([]any, error) {
	out := make([]any, 0)
	for dec.More() {
		v, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return readObject(dec)
	case '[':
		return readArray(dec)
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", d)
	}
}

// RecordFromMap converts a generic JSON map into a Record. Keys are sorted
// because map iteration order carries no meaning.
func RecordFromMap(m map[string]any) *Record {
	rec := NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rec.Set(k, fromGeneric(m[k]))
	}
	return rec
}

func fromGeneric(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return RecordFromMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = fromGeneric(item)
		}
		return out
	default:
		return v
	}
}

// Map converts the record into plain Go values: nested records become maps
// and json.Number becomes int64 or float64.
func (r *Record) Map() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = toGeneric(r.values[k])
	}
	return out
}

func toGeneric(v any) any {
	switch x := v.(type) {
	case *Record:
		return x.Map()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toGeneric(item)
		}
		return out
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	default:
		return v
	}
}

// ToStruct converts the record into a protobuf Struct.
func (r *Record) ToStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(r.Map())
}

// RecordFromStruct is the inverse of ToStruct. Numbers come back as float64.
func RecordFromStruct(s *structpb.Struct) *Record {
	if s == nil {
		return NewRecord()
	}
	return RecordFromMap(s.AsMap())
}
