package codec

import (
	"math/big"
)

// U128 is an unsigned 128-bit integer.
type U128 struct {
	Hi, Lo uint64
}

// U128From64 widens v.
func U128From64(v uint64) U128 { return U128{Lo: v} }

// IsZero reports whether u is zero.
func (u U128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

// Big converts u to a big.Int.
func (u U128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u U128) String() string { return u.Big().String() }

// U128FromBig narrows b. It reports false if b is negative or needs more
// than 128 bits.
func U128FromBig(b *big.Int) (U128, bool) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return U128{}, false
	}
	lo := new(big.Int).And(b, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(b, 64)
	return U128{Hi: hi.Uint64(), Lo: lo.Uint64()}, true
}

// I128 is a signed 128-bit integer stored in two's complement.
type I128 struct {
	Hi, Lo uint64
}

// I128From64 sign-extends v.
func I128From64(v int64) I128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return I128{Hi: hi, Lo: uint64(v)}
}

// IsNegative reports whether i is below zero.
func (i I128) IsNegative() bool { return i.Hi>>63 == 1 }

// IsZero reports whether i is zero.
func (i I128) IsZero() bool { return i.Hi == 0 && i.Lo == 0 }

// Not returns the bitwise complement of i.
func (i I128) Not() I128 { return I128{Hi: ^i.Hi, Lo: ^i.Lo} }

// Big converts i to a big.Int.
func (i I128) Big() *big.Int {
	b := U128(i).Big()
	if i.IsNegative() {
		b.Sub(b, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return b
}

func (i I128) String() string { return i.Big().String() }

var (
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// I128FromBig narrows b. It reports false if b is outside the signed 128-bit
// range.
func I128FromBig(b *big.Int) (I128, bool) {
	if b.Cmp(minI128) < 0 || b.Cmp(maxI128) > 0 {
		return I128{}, false
	}
	v := new(big.Int).Set(b)
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	u, _ := U128FromBig(v)
	return I128(u), true
}
