package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOptional(t *testing.T) {
	c := Optional(String())

	data, err := Marshal(c, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{TagNone}, data)

	data, err = Marshal(c, ptr("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte{TagSome, TagStringBase + 1, 'x'}, data)

	v, err := Unmarshal(c, data)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "x", *v)

	assert.Equal(t, "*string", c.TypeName())
	assert.True(t, c.IsDefault(nil))

	t.Run("FieldFramer", func(t *testing.T) {
		ff, ok := c.(FieldFramer[*string])
		require.True(t, ok)
		assert.True(t, ff.Absent(nil))

		w := NewWriter(0)
		require.NoError(t, ff.EncodePresent(w, ptr("x")))
		assert.Equal(t, []byte{TagStringBase + 1, 'x'}, w.Bytes())
	})
}

func TestSlice(t *testing.T) {
	t.Run("ShortHeader", func(t *testing.T) {
		data, err := Marshal(Slice(Uint8()), []uint8{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.Equal(t, []byte{TagSeqBase + 5, 1, 2, 3, 4, 5}, data)
	})

	t.Run("LongHeader", func(t *testing.T) {
		data, err := Marshal(Slice(Uint8()), []uint8{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, []byte{TagSeqLong, 6, 1, 2, 3, 4, 5, 6}, data)
	})

	t.Run("Nested", func(t *testing.T) {
		c := Slice(Slice(String()))
		in := [][]string{{"a"}, {}, {"b", "c"}}
		data, err := Marshal(c, in)
		require.NoError(t, err)
		out, err := Unmarshal(c, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("HugeLengthRejected", func(t *testing.T) {
		w := NewWriter(0)
		_ = w.WriteByte(TagSeqLong)
		WriteUint(w, 1<<40)
		_, err := Unmarshal(Slice(Uint8()), w.Bytes())
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("PackUsesElementPack", func(t *testing.T) {
		data, err := Pack(Slice(Float32()), []float32{1, 2})
		require.NoError(t, err)
		assert.Len(t, data, 1+4+4)
		out, err := UnpackBytes(Slice(Float32()), data)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, out)
	})
}

func TestArray(t *testing.T) {
	c := Array(3, Int32())
	assert.Equal(t, "[3]int32", c.TypeName())

	data, err := Marshal(c, []int32{1, -2, 3})
	require.NoError(t, err)
	out, err := Unmarshal(c, data)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, -2, 3}, out)

	_, err = Marshal(c, []int32{1})
	assert.ErrorIs(t, err, ErrEncode)

	data, err = Marshal(Slice(Int32()), []int32{1, 2})
	require.NoError(t, err)
	_, err = Unmarshal(c, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Array length mismatch")

	assert.True(t, c.IsDefault([]int32{0, 0, 0}))
	assert.False(t, c.IsDefault([]int32{0, 1, 0}))
}

func TestSet(t *testing.T) {
	c := Set(String())
	in := map[string]struct{}{"a": {}, "b": {}}
	data, err := Marshal(c, in)
	require.NoError(t, err)
	assert.Equal(t, TagSeqBase+2, data[0])
	out, err := Unmarshal(c, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMaps(t *testing.T) {
	t.Run("SortedIsDeterministic", func(t *testing.T) {
		c := SortedMap(String(), Uint32())
		in := map[string]uint32{"b": 2, "a": 1}
		data, err := Marshal(c, in)
		require.NoError(t, err)
		assert.Equal(t, []byte{
			TagMap, 2,
			TagStringBase + 1, 'a', 1,
			TagStringBase + 1, 'b', 2,
		}, data)

		out, err := Unmarshal(Map(String(), Uint32()), data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("PairsKeepOrder", func(t *testing.T) {
		c := Pairs(String(), Bool())
		in := []Entry[string, bool]{{"z", true}, {"a", false}}
		data, err := Marshal(c, in)
		require.NoError(t, err)
		out, err := Unmarshal(c, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)

		// Pairs and Map share the wire form
		m, err := Unmarshal(Map(String(), Bool()), data)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"z": true, "a": false}, m)
	})

	t.Run("WrongTag", func(t *testing.T) {
		_, err := Unmarshal(Map(String(), Bool()), []byte{TagSeqBase})
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestTuples(t *testing.T) {
	t.Run("Pair", func(t *testing.T) {
		c := Pair(Uint8(), String())
		in := Tuple2[uint8, string]{First: 7, Second: "x"}
		data, err := Marshal(c, in)
		require.NoError(t, err)
		assert.Equal(t, []byte{TagTuple, 2, 7, TagStringBase + 1, 'x'}, data)
		out, err := Unmarshal(c, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		data, err := Marshal(Pair(Uint8(), Uint8()), Tuple2[uint8, uint8]{First: 1, Second: 2})
		require.NoError(t, err)
		_, err = Unmarshal(Triple(Uint8(), Uint8(), Uint8()), data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expected 3-tuple but got 2-tuple")
	})

	t.Run("Dynamic", func(t *testing.T) {
		c := Tuple(Erase(Bool()), Erase(Int64()), Erase(String()))
		assert.Equal(t, "(bool, int64, string)", c.TypeName())
		in := []any{true, int64(-9), "s"}
		data, err := Marshal(c, in)
		require.NoError(t, err)

		typed, err := Unmarshal(Triple(Bool(), Int64(), String()), data)
		require.NoError(t, err)
		assert.Equal(t, Tuple3[bool, int64, string]{First: true, Second: -9, Third: "s"}, typed)

		out, err := Unmarshal(c, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)

		_, err = Marshal(c, []any{true})
		assert.ErrorIs(t, err, ErrEncode)
		_, err = Marshal(c, []any{"no", int64(1), "s"})
		assert.ErrorIs(t, err, ErrEncode)
	})
}

type tree struct {
	Value    uint32
	Children []tree
}

func TestLazyRecursive(t *testing.T) {
	var c Codec[tree]
	c = Lazy(func() Codec[tree] {
		return treeCodec{children: Slice(c)}
	})

	in := tree{Value: 1, Children: []tree{{Value: 2}, {Value: 3, Children: []tree{{Value: 4}}}}}
	data, err := Marshal(c, in)
	require.NoError(t, err)
	out, err := Unmarshal(c, data)
	require.NoError(t, err)
	assert.Equal(t, in.Children[1].Children[0].Value, out.Children[1].Children[0].Value)
	assert.Len(t, out.Children, 2)
}

// treeCodec writes a tree as a (value, children) tuple.
type treeCodec struct {
	children Codec[[]tree]
}

func (c treeCodec) Encode(w *Writer, v tree) error {
	WriteTupleHeader(w, 2)
	WriteUint(w, uint64(v.Value))
	return c.children.Encode(w, v.Children)
}

func (c treeCodec) Decode(r *Reader) (tree, error) {
	if err := readTupleHeader(r, 2, "tree"); err != nil {
		return tree{}, err
	}
	v, err := Uint32().Decode(r)
	if err != nil {
		return tree{}, err
	}
	children, err := c.children.Decode(r)
	if err != nil {
		return tree{}, err
	}
	return tree{Value: v, Children: children}, nil
}

func (c treeCodec) Pack(w *Writer, v tree) error   { return c.Encode(w, v) }
func (c treeCodec) Unpack(r *Reader) (tree, error) { return c.Decode(r) }
func (treeCodec) IsDefault(v tree) bool            { return v.Value == 0 && len(v.Children) == 0 }
func (treeCodec) TypeName() string                 { return "tree" }
