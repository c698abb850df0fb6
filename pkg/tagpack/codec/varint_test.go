package codec

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsignedWidths(t *testing.T) {
	t.Run("EncodedLength", func(t *testing.T) {
		cases := []struct {
			value uint64
			size  int
		}{
			{0, 1}, {1, 1}, {2, 1}, {127, 1},
			{128, 2}, {383, 2},
			{384, 3}, {math.MaxUint16, 3},
			{math.MaxUint16 + 1, 5}, {math.MaxUint32, 5},
			{math.MaxUint32 + 1, 9}, {math.MaxUint64, 9},
		}
		for _, tc := range cases {
			data, err := Marshal(Uint64(), tc.value)
			require.NoError(t, err)
			assert.Len(t, data, tc.size, "value %d", tc.value)
		}
	})

	t.Run("U128NeedsWideMarker", func(t *testing.T) {
		v := U128{Hi: 1, Lo: 2}
		data, err := Marshal(Uint128(), v)
		require.NoError(t, err)
		require.Len(t, data, 17)
		assert.Equal(t, TagU128, data[0])

		back, err := Unmarshal(Uint128(), data)
		require.NoError(t, err)
		assert.Equal(t, v, back)

		_, err = Unmarshal(Uint64(), data)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("NarrowDecoderAcceptsWideMarker", func(t *testing.T) {
		w := NewWriter(0)
		_ = w.WriteByte(TagU32)
		w.PutUint32(200)
		v, err := Unmarshal(Uint8(), w.Bytes())
		require.NoError(t, err)
		assert.Equal(t, uint8(200), v)
	})

	t.Run("OverflowIsDecodeError", func(t *testing.T) {
		data, err := Marshal(Uint16(), 300)
		require.NoError(t, err)
		_, err = Unmarshal(Uint8(), data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)
		assert.Contains(t, err.Error(), "too large for uint8")

		// 131 followed by 255 is 383, which a uint8 cannot hold
		_, err = Unmarshal(Uint8(), []byte{TagU8, 0xFF})
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("WidenedDecode", func(t *testing.T) {
		data, err := Marshal(Uint8(), 250)
		require.NoError(t, err)
		v, err := Unmarshal(Uint64(), data)
		require.NoError(t, err)
		assert.Equal(t, uint64(250), v)
	})

	t.Run("TruncatedPayload", func(t *testing.T) {
		_, err := Unmarshal(Uint32(), []byte{TagU32, 1, 2})
		assert.ErrorIs(t, err, ErrInsufficientData)
		_, err = Unmarshal(Uint32(), nil)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestSignedIntegers(t *testing.T) {
	t.Run("NegativeFive", func(t *testing.T) {
		data, err := Marshal(Int32(), -5)
		require.NoError(t, err)
		assert.Equal(t, []byte{TagNegative, 4}, data)
	})

	t.Run("Extremes", func(t *testing.T) {
		for _, v := range []int8{math.MinInt8, -1, 0, 1, math.MaxInt8} {
			data, err := Marshal(Int8(), v)
			require.NoError(t, err)
			back, err := Unmarshal(Int8(), data)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		}
		for _, v := range []int64{math.MinInt64, -1 << 40, -129, 129, math.MaxInt64} {
			data, err := Marshal(Int64(), v)
			require.NoError(t, err)
			back, err := Unmarshal(Int64(), data)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		}
	})

	t.Run("CrossSignDecode", func(t *testing.T) {
		data, err := Marshal(Uint16(), 1000)
		require.NoError(t, err)
		v, err := Unmarshal(Int16(), data)
		require.NoError(t, err)
		assert.Equal(t, int16(1000), v)

		data, err = Marshal(Uint16(), 40000)
		require.NoError(t, err)
		_, err = Unmarshal(Int16(), data)
		assert.ErrorIs(t, err, ErrDecode)

		data, err = Marshal(Int16(), -3)
		require.NoError(t, err)
		_, err = Unmarshal(Uint16(), data)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("NegativeOutOfRange", func(t *testing.T) {
		// inverted magnitude 200 would not be negative as int8
		_, err := Unmarshal(Int8(), []byte{TagNegative, TagU8, 72})
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("NamedType", func(t *testing.T) {
		type port uint16
		c := UnsignedOf[port]()
		assert.Equal(t, "uint16", c.TypeName())
		data, err := Marshal(c, port(8080))
		require.NoError(t, err)
		back, err := Unmarshal(c, data)
		require.NoError(t, err)
		assert.Equal(t, port(8080), back)
	})

	t.Run("PlatformInt", func(t *testing.T) {
		data, err := Marshal(Int(), -42)
		require.NoError(t, err)
		v64, err := Unmarshal(Int64(), data)
		require.NoError(t, err)
		assert.Equal(t, int64(-42), v64)

		u, err := Unmarshal(Uint(), []byte{7})
		require.NoError(t, err)
		assert.Equal(t, uint(7), u)
	})
}

func TestInt128(t *testing.T) {
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

	for _, b := range []*big.Int{lo, big.NewInt(-1), big.NewInt(0), big.NewInt(math.MaxInt64), hi} {
		v, ok := I128FromBig(b)
		require.True(t, ok)
		assert.Equal(t, b.String(), v.String())

		data, err := Marshal(Int128(), v)
		require.NoError(t, err)
		back, err := Unmarshal(Int128(), data)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	_, ok := I128FromBig(new(big.Int).Add(hi, big.NewInt(1)))
	assert.False(t, ok)

	t.Run("SmallValuesStayCompact", func(t *testing.T) {
		data, err := Marshal(Int128(), I128From64(-5))
		require.NoError(t, err)
		assert.Equal(t, []byte{TagNegative, 4}, data)

		// the same bytes decode as a narrower signed integer
		v, err := Unmarshal(Int32(), data)
		require.NoError(t, err)
		assert.Equal(t, int32(-5), v)
	})

	t.Run("U128Big", func(t *testing.T) {
		u := U128{Hi: math.MaxUint64, Lo: math.MaxUint64}
		back, ok := U128FromBig(u.Big())
		require.True(t, ok)
		assert.Equal(t, u, back)
		_, ok = U128FromBig(big.NewInt(-1))
		assert.False(t, ok)
	})
}
