package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encoded builds a byte stream with fn and returns it.
func encoded(fn func(w *Writer)) []byte {
	w := NewWriter(0)
	fn(w)
	return w.Bytes()
}

func mustMarshal[T any](t *testing.T, c Codec[T], v T) []byte {
	t.Helper()
	data, err := Marshal(c, v)
	require.NoError(t, err)
	return data
}

func TestSkipConsumesExactlyOneValue(t *testing.T) {
	cases := map[string][]byte{
		"compact":      {42},
		"none":         {TagNone},
		"some":         mustMarshal(t, Optional(Uint16()), ptr(uint16(999))),
		"u8":           mustMarshal(t, Uint64(), 200),
		"u16":          mustMarshal(t, Uint64(), 1000),
		"u32":          mustMarshal(t, Uint64(), 1<<20),
		"u64":          mustMarshal(t, Uint64(), 1<<40),
		"u128":         mustMarshal(t, Uint128(), U128{Hi: 3}),
		"negative":     mustMarshal(t, Int64(), -1<<33),
		"f32":          mustMarshal(t, Float32(), 1),
		"f64":          mustMarshal(t, Float64(), 1),
		"short string": mustMarshal(t, String(), "abc"),
		"long string":  mustMarshal(t, String(), strings.Repeat("x", 100)),
		"binary":       mustMarshal(t, Bytes(), []byte{1, 2, 3}),
		"sequence":     mustMarshal(t, Slice(String()), []string{"a", "b", "c", "d", "e", "f", "g"}),
		"map":          mustMarshal(t, SortedMap(String(), Slice(Int8())), map[string][]int8{"a": {-1}, "b": nil}),
		"tuple":        mustMarshal(t, Pair(Bool(), Optional(String())), Tuple2[bool, *string]{First: true}),
		"struct unit":  {TagStructUnit},
		"struct named": encoded(func(w *Writer) {
			_ = w.WriteByte(TagStructNamed)
			WriteFieldID(w, 7)
			WriteString(w, "v")
			WriteFieldID(w, 1<<40)
			// nested named struct with its own terminator
			_ = w.WriteByte(TagStructNamed)
			WriteFieldID(w, 3)
			WriteUint(w, 1)
			WriteTerminator(w)
			WriteTerminator(w)
		}),
		"struct tuple": encoded(func(w *Writer) {
			_ = w.WriteByte(TagStructTuple)
			WriteLen(w, 2)
			WriteUint(w, 5)
			WriteString(w, "s")
		}),
		"enum unit": encoded(func(w *Writer) {
			_ = w.WriteByte(TagEnumUnit)
			WriteFieldID(w, 0xDEADBEEF)
		}),
		"enum named": encoded(func(w *Writer) {
			_ = w.WriteByte(TagEnumNamed)
			WriteFieldID(w, 9)
			WriteFieldID(w, 2)
			WriteInt(w, -7)
			WriteTerminator(w)
		}),
		"enum tuple": encoded(func(w *Writer) {
			_ = w.WriteByte(TagEnumTuple)
			WriteFieldID(w, 300)
			WriteLen(w, 1)
			WriteSeqHeader(w, 0)
		}),
		"datetime": encoded(func(w *Writer) {
			_ = w.WriteByte(TagDateTime)
			WriteInt(w, 1_700_000_000)
			WriteUint(w, 999)
		}),
		"date": encoded(func(w *Writer) {
			_ = w.WriteByte(TagDate)
			WriteInt(w, -365)
		}),
		"time": encoded(func(w *Writer) {
			_ = w.WriteByte(TagTime)
			WriteUint(w, 3600)
			WriteUint(w, 0)
		}),
		"decimal": encoded(func(w *Writer) {
			_ = w.WriteByte(TagDecimal)
			WriteI128(w, I128From64(-12345))
			WriteUint(w, 2)
		}),
		"uuid": encoded(func(w *Writer) {
			_ = w.WriteByte(TagUUID)
			_, _ = w.Write(make([]byte, 16))
		}),
		"json null": {TagJSONNull},
		"json bool": {TagJSONBool, TagOne},
		"json number": encoded(func(w *Writer) {
			_ = w.WriteByte(TagJSONNumber)
			_ = w.WriteByte(JSONNumberFloat)
			_ = Float64().Encode(w, 2.5)
		}),
		"json string": encoded(func(w *Writer) {
			_ = w.WriteByte(TagJSONString)
			WriteString(w, "j")
		}),
		"json array": encoded(func(w *Writer) {
			_ = w.WriteByte(TagJSONArray)
			WriteLen(w, 2)
			_ = w.WriteByte(TagJSONNull)
			_ = w.WriteByte(TagJSONNumber)
			_ = w.WriteByte(JSONNumberInt)
			WriteInt(w, -1)
		}),
		"json object": encoded(func(w *Writer) {
			_ = w.WriteByte(TagJSONObject)
			WriteLen(w, 1)
			WriteString(w, "k")
			_ = w.WriteByte(TagJSONBool)
			_ = w.WriteByte(TagZero)
		}),
	}

	sentinel := byte(0x5A)
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			stream := append(append([]byte{}, data...), sentinel)
			r := NewReader(stream)
			require.NoError(t, Skip(r))
			assert.Equal(t, 1, r.Remaining(), "skip must stop at the value boundary")
			b, err := r.ReadByte()
			require.NoError(t, err)
			assert.Equal(t, sentinel, b)
		})
	}
}

func TestSkipErrors(t *testing.T) {
	t.Run("UnknownTag", func(t *testing.T) {
		for _, tag := range []byte{130, 208, 255} {
			err := Skip(NewReader([]byte{tag}))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Contains(t, err.Error(), "unknown or unhandled tag")
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Skip(NewReader([]byte{TagStructNamed, 5}))
		assert.ErrorIs(t, err, ErrInsufficientData)

		err = Skip(NewReader([]byte{TagUUID, 1, 2}))
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("BadJSONNumberMarker", func(t *testing.T) {
		err := Skip(NewReader([]byte{TagJSONNumber, 9, 0}))
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestFieldID(t *testing.T) {
	for _, id := range []uint64{1, 250, 251, 1 << 32, ^uint64(0)} {
		w := NewWriter(0)
		WriteFieldID(w, id)
		if id <= 250 {
			assert.Len(t, w.Bytes(), 1)
		} else {
			assert.Len(t, w.Bytes(), 9)
		}
		got, err := ReadFieldID(NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	got, err := ReadFieldID(NewReader([]byte{253}))
	require.NoError(t, err)
	assert.Equal(t, uint64(253), got)
}
