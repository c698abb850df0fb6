package codec

import (
	"fmt"
	"math"
)

// WriteUint writes v with the smallest unsigned marker that holds it.
func WriteUint(w *Writer, v uint64) {
	switch {
	case v <= uint64(TagCompactMax):
		_ = w.WriteByte(byte(v))
	case v <= 383:
		_ = w.WriteByte(TagU8)
		_ = w.WriteByte(byte(v - 128))
	case v <= math.MaxUint16:
		_ = w.WriteByte(TagU16)
		w.PutUint16(uint16(v))
	case v <= math.MaxUint32:
		_ = w.WriteByte(TagU32)
		w.PutUint32(uint32(v))
	default:
		_ = w.WriteByte(TagU64)
		w.PutUint64(v)
	}
}

// WriteU128 writes v, falling back to the 16-byte marker only when v does
// not fit in 64 bits.
func WriteU128(w *Writer, v U128) {
	if v.Hi == 0 {
		WriteUint(w, v.Lo)
		return
	}
	_ = w.WriteByte(TagU128)
	w.PutUint64(v.Lo)
	w.PutUint64(v.Hi)
}

// WriteInt writes v. Negative values are written as TagNegative followed by
// the unsigned form of ^v.
func WriteInt(w *Writer, v int64) {
	if v >= 0 {
		WriteUint(w, uint64(v))
		return
	}
	_ = w.WriteByte(TagNegative)
	WriteUint(w, uint64(^v))
}

// WriteI128 is WriteInt for 128-bit values.
func WriteI128(w *Writer, v I128) {
	if !v.IsNegative() {
		WriteU128(w, U128(v))
		return
	}
	_ = w.WriteByte(TagNegative)
	WriteU128(w, U128(v.Not()))
}

// WriteLen writes a container length.
func WriteLen(w *Writer, n int) {
	WriteUint(w, uint64(n))
}

// readUnsignedBody decodes the payload of an unsigned marker whose tag has
// already been consumed. ok is false when tag is not an unsigned marker.
func readUnsignedBody(r *Reader, tag byte) (v U128, ok bool, err error) {
	switch {
	case tag <= TagCompactMax:
		return U128{Lo: uint64(tag)}, true, nil
	case tag == TagU8:
		b, err := r.ReadByte()
		return U128{Lo: uint64(b) + 128}, true, err
	case tag == TagU16:
		x, err := r.Uint16()
		return U128{Lo: uint64(x)}, true, err
	case tag == TagU32:
		x, err := r.Uint32()
		return U128{Lo: uint64(x)}, true, err
	case tag == TagU64:
		x, err := r.Uint64()
		return U128{Lo: x}, true, err
	case tag == TagU128:
		lo, err := r.Uint64()
		if err != nil {
			return U128{}, true, err
		}
		hi, err := r.Uint64()
		return U128{Hi: hi, Lo: lo}, true, err
	}
	return U128{}, false, nil
}

// ReadU128 reads any unsigned integer.
func ReadU128(r *Reader, typ string) (U128, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return U128{}, err
	}
	v, ok, err := readUnsignedBody(r, tag)
	if !ok {
		return U128{}, UnexpectedTag(typ, tag)
	}
	return v, err
}

// ReadUint reads an unsigned integer and checks that it does not exceed max.
// Any unsigned marker is accepted as long as the value fits.
func ReadUint(r *Reader, max uint64, typ string) (uint64, error) {
	v, err := ReadU128(r, typ)
	if err != nil {
		return 0, err
	}
	if v.Hi != 0 || v.Lo > max {
		return 0, Decodef(typ, "value %s too large for %s", v, typ)
	}
	return v.Lo, nil
}

// ReadInt reads a signed integer of the given bit width (8..64).
func ReadInt(r *Reader, bits int, typ string) (int64, error) {
	max := uint64(1)<<(bits-1) - 1
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if tag == TagNegative {
		inv, err := ReadU128(r, typ)
		if err != nil {
			return 0, err
		}
		if inv.Hi != 0 || inv.Lo > max {
			return 0, Decodef(typ, "negative value out of range for %s", typ)
		}
		return ^int64(inv.Lo), nil
	}
	v, ok, err := readUnsignedBody(r, tag)
	if !ok {
		return 0, UnexpectedTag(typ, tag)
	}
	if err != nil {
		return 0, err
	}
	if v.Hi != 0 || v.Lo > max {
		return 0, Decodef(typ, "value %s too large for %s", v, typ)
	}
	return int64(v.Lo), nil
}

// ReadI128 reads a signed 128-bit integer.
func ReadI128(r *Reader, typ string) (I128, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return I128{}, err
	}
	if tag == TagNegative {
		inv, err := ReadU128(r, typ)
		if err != nil {
			return I128{}, err
		}
		if inv.Hi>>63 != 0 {
			return I128{}, Decodef(typ, "negative value out of range for %s", typ)
		}
		return I128(inv).Not(), nil
	}
	v, ok, err := readUnsignedBody(r, tag)
	if !ok {
		return I128{}, UnexpectedTag(typ, tag)
	}
	if err != nil {
		return I128{}, err
	}
	if v.Hi>>63 != 0 {
		return I128{}, Decodef(typ, "value %s too large for %s", v, typ)
	}
	return I128(v), nil
}

// ReadLen reads a container length. The length is not checked against the
// remaining input; callers that allocate must do that themselves.
func ReadLen(r *Reader, typ string) (int, error) {
	n, err := ReadUint(r, math.MaxInt, typ+" length")
	return int(n), err
}

// checkLen fails with ErrInsufficientData when n elements of at least one
// byte each cannot be present in the remaining input.
func checkLen(r *Reader, n int) error {
	if n > r.Remaining() {
		return fmt.Errorf("%w: need %d elements, %d bytes left", ErrInsufficientData, n, r.Remaining())
	}
	return nil
}
