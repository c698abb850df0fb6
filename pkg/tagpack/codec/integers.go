package codec

import (
	"math/bits"
	"unsafe"
)

// Unsigned is the set of unsigned integer kinds handled by UnsignedOf.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Signed is the set of signed integer kinds handled by SignedOf.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

type unsignedCodec[T Unsigned] struct {
	name string
	max  uint64
}

// UnsignedOf returns the codec for any unsigned integer kind, including named
// types such as `type Port uint16`. The width comes from the underlying type.
func UnsignedOf[T Unsigned]() Codec[T] {
	var zero T
	size := int(unsafe.Sizeof(zero)) * 8
	return unsignedCodec[T]{name: unsignedName(size), max: uint64(^T(0))}
}

func unsignedName(size int) string {
	switch size {
	case 8:
		return "uint8"
	case 16:
		return "uint16"
	case 32:
		return "uint32"
	default:
		return "uint64"
	}
}

func (c unsignedCodec[T]) Encode(w *Writer, v T) error {
	WriteUint(w, uint64(v))
	return nil
}

func (c unsignedCodec[T]) Decode(r *Reader) (T, error) {
	v, err := ReadUint(r, c.max, c.name)
	return T(v), err
}

func (c unsignedCodec[T]) Pack(w *Writer, v T) error   { return c.Encode(w, v) }
func (c unsignedCodec[T]) Unpack(r *Reader) (T, error) { return c.Decode(r) }
func (c unsignedCodec[T]) IsDefault(v T) bool          { return v == 0 }
func (c unsignedCodec[T]) TypeName() string            { return c.name }

type signedCodec[T Signed] struct {
	name string
	bits int
}

// SignedOf returns the codec for any signed integer kind.
func SignedOf[T Signed]() Codec[T] {
	var zero T
	size := int(unsafe.Sizeof(zero)) * 8
	return signedCodec[T]{name: "int" + unsignedName(size)[4:], bits: size}
}

func (c signedCodec[T]) Encode(w *Writer, v T) error {
	WriteInt(w, int64(v))
	return nil
}

func (c signedCodec[T]) Decode(r *Reader) (T, error) {
	v, err := ReadInt(r, c.bits, c.name)
	return T(v), err
}

func (c signedCodec[T]) Pack(w *Writer, v T) error   { return c.Encode(w, v) }
func (c signedCodec[T]) Unpack(r *Reader) (T, error) { return c.Decode(r) }
func (c signedCodec[T]) IsDefault(v T) bool          { return v == 0 }
func (c signedCodec[T]) TypeName() string            { return c.name }

// Uint8 returns the uint8 codec.
func Uint8() Codec[uint8] { return UnsignedOf[uint8]() }

// Uint16 returns the uint16 codec.
func Uint16() Codec[uint16] { return UnsignedOf[uint16]() }

// Uint32 returns the uint32 codec.
func Uint32() Codec[uint32] { return UnsignedOf[uint32]() }

// Uint64 returns the uint64 codec.
func Uint64() Codec[uint64] { return UnsignedOf[uint64]() }

// Uint returns the codec for the platform-sized uint. It shares the wire
// form of the 32- or 64-bit codec, whichever matches bits.UintSize.
func Uint() Codec[uint] {
	return unsignedCodec[uint]{name: "uint", max: uint64(^uint(0))}
}

// Int8 returns the int8 codec.
func Int8() Codec[int8] { return SignedOf[int8]() }

// Int16 returns the int16 codec.
func Int16() Codec[int16] { return SignedOf[int16]() }

// Int32 returns the int32 codec.
func Int32() Codec[int32] { return SignedOf[int32]() }

// Int64 returns the int64 codec.
func Int64() Codec[int64] { return SignedOf[int64]() }

// Int returns the codec for the platform-sized int.
func Int() Codec[int] {
	return signedCodec[int]{name: "int", bits: bits.UintSize}
}

type u128Codec struct{}

// Uint128 returns the U128 codec.
func Uint128() Codec[U128] { return u128Codec{} }

func (u128Codec) Encode(w *Writer, v U128) error {
	WriteU128(w, v)
	return nil
}

func (u128Codec) Decode(r *Reader) (U128, error)   { return ReadU128(r, "uint128") }
func (c u128Codec) Pack(w *Writer, v U128) error   { return c.Encode(w, v) }
func (c u128Codec) Unpack(r *Reader) (U128, error) { return c.Decode(r) }
func (u128Codec) IsDefault(v U128) bool            { return v.IsZero() }
func (u128Codec) TypeName() string                 { return "uint128" }

type i128Codec struct{}

// Int128 returns the I128 codec.
func Int128() Codec[I128] { return i128Codec{} }

func (i128Codec) Encode(w *Writer, v I128) error {
	WriteI128(w, v)
	return nil
}

func (i128Codec) Decode(r *Reader) (I128, error)   { return ReadI128(r, "int128") }
func (c i128Codec) Pack(w *Writer, v I128) error   { return c.Encode(w, v) }
func (c i128Codec) Unpack(r *Reader) (I128, error) { return c.Decode(r) }
func (i128Codec) IsDefault(v I128) bool            { return v.IsZero() }
func (i128Codec) TypeName() string                 { return "int128" }
