package adapters

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

type decimalCodec struct{}

// Decimal returns the codec for decimal.Decimal: TagDecimal, the mantissa as
// a signed 128-bit integer and the scale as an unsigned integer, so that the
// value is mantissa / 10^scale. Values whose mantissa needs more than 128
// bits cannot be encoded.
func Decimal() codec.Codec[decimal.Decimal] { return decimalCodec{} }

// mantissaScale folds a positive exponent into the mantissa, since the wire
// form only carries a scale.
func mantissaScale(d decimal.Decimal) (*big.Int, int32) {
	m, exp := d.Coefficient(), d.Exponent()
	if exp > 0 {
		m.Mul(m, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		exp = 0
	}
	return m, -exp
}

func (decimalCodec) Encode(w *codec.Writer, d decimal.Decimal) error {
	m, scale := mantissaScale(d)
	mantissa, ok := codec.I128FromBig(m)
	if !ok {
		return codec.Encodef("decimal", "mantissa of %s does not fit in 128 bits", d)
	}
	_ = w.WriteByte(codec.TagDecimal)
	codec.WriteI128(w, mantissa)
	codec.WriteUint(w, uint64(scale))
	return nil
}

func (decimalCodec) Decode(r *codec.Reader) (decimal.Decimal, error) {
	if err := expectTag(r, codec.TagDecimal, "decimal"); err != nil {
		return decimal.Decimal{}, err
	}
	mantissa, err := codec.ReadI128(r, "decimal mantissa")
	if err != nil {
		return decimal.Decimal{}, err
	}
	scale, err := codec.ReadUint(r, math.MaxInt32, "decimal scale")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(mantissa.Big(), -int32(scale)), nil
}

func (c decimalCodec) Pack(w *codec.Writer, d decimal.Decimal) error   { return c.Encode(w, d) }
func (c decimalCodec) Unpack(r *codec.Reader) (decimal.Decimal, error) { return c.Decode(r) }
func (decimalCodec) IsDefault(d decimal.Decimal) bool                  { return d.IsZero() }
func (decimalCodec) TypeName() string                                  { return "decimal" }
