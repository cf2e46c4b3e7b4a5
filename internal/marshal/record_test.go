package marshal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestRecord_KeepsKeyOrder(t *testing.T) {
	in := `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",{"k":"v"}]}`

	rec, err := ParseRecord([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, rec.Keys())

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestRecord_NumbersStayExact(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"n": 9007199254740993}`))
	require.NoError(t, err)

	v, ok := rec.Get("n")
	require.True(t, ok)
	assert.Equal(t, json.Number("9007199254740993"), v)
	assert.Equal(t, int64(9007199254740993), rec.Map()["n"])
}

func TestRecord_SetDelete(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, rec.Keys())

	v, _ := rec.Get("a")
	assert.Equal(t, 3, v)

	rec.Delete("a")
	rec.Delete("missing")
	assert.Equal(t, []string{"b"}, rec.Keys())
	assert.Equal(t, 1, rec.Len())
	assert.False(t, rec.Has("a"))
}

func TestRecord_NilIsEmpty(t *testing.T) {
	var rec *Record
	assert.False(t, rec.Has("x"))
	assert.Zero(t, rec.Len())
	assert.Nil(t, rec.Keys())

	b, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestRecord_RejectsNonObject(t *testing.T) {
	for _, in := range []string{`[]`, `"s"`, `12`} {
		_, err := ParseRecord([]byte(in))
		assert.ErrorIs(t, err, ErrNotObject, in)
	}

	_, err := ParseRecord([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestRecord_StructRoundTrip(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"title":"T","count":2,"tags":[{"rank":1}],"none":null}`))
	require.NoError(t, err)

	s, err := rec.ToStruct()
	require.NoError(t, err)

	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(s)
	require.NoError(t, err)

	var back structpb.Struct
	require.NoError(t, proto.Unmarshal(b, &back))

	got := RecordFromStruct(&back)
	assert.Equal(t, []string{"count", "none", "tags", "title"}, got.Keys())

	count, _ := got.Get("count")
	assert.Equal(t, float64(2), count)

	tags, _ := got.Get("tags")
	require.Len(t, tags, 1)
	first, ok := tags.([]any)[0].(*Record)
	require.True(t, ok)
	rank, _ := first.Get("rank")
	assert.Equal(t, float64(1), rank)

	none, ok := got.Get("none")
	assert.True(t, ok)
	assert.Nil(t, none)
}

func TestRecordFromStruct_Nil(t *testing.T) {
	assert.Zero(t, RecordFromStruct(nil).Len())
}
