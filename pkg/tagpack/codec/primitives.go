package codec

import (
	"unicode/utf8"
)

type boolCodec struct{}

// Bool returns the bool codec. Tagged decoding accepts only 0 and 1; packed
// decoding treats any nonzero byte as true.
func Bool() Codec[bool] { return boolCodec{} }

func (boolCodec) Encode(w *Writer, v bool) error {
	if v {
		return w.WriteByte(TagOne)
	}
	return w.WriteByte(TagZero)
}

func (boolCodec) Decode(r *Reader) (bool, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch tag {
	case TagZero:
		return false, nil
	case TagOne:
		return true, nil
	}
	return false, UnexpectedTag("bool", tag)
}

func (c boolCodec) Pack(w *Writer, v bool) error { return c.Encode(w, v) }

func (boolCodec) Unpack(r *Reader) (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func (boolCodec) IsDefault(v bool) bool { return !v }
func (boolCodec) TypeName() string      { return "bool" }

type float32Codec struct{}

// Float32 returns the float32 codec. It also decodes F64-tagged values,
// rounding them to float32.
func Float32() Codec[float32] { return float32Codec{} }

func (float32Codec) Encode(w *Writer, v float32) error {
	_ = w.WriteByte(TagF32)
	w.PutFloat32(v)
	return nil
}

func (float32Codec) Decode(r *Reader) (float32, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch tag {
	case TagF32:
		return r.Float32()
	case TagF64:
		v, err := r.Float64()
		return float32(v), err
	}
	return 0, UnexpectedTag("float32", tag)
}

func (float32Codec) Pack(w *Writer, v float32) error {
	w.PutFloat32(v)
	return nil
}

func (float32Codec) Unpack(r *Reader) (float32, error) { return r.Float32() }
func (float32Codec) IsDefault(v float32) bool          { return v == 0 }
func (float32Codec) TypeName() string                  { return "float32" }

type float64Codec struct{}

// Float64 returns the float64 codec. F32-tagged input is rejected.
func Float64() Codec[float64] { return float64Codec{} }

func (float64Codec) Encode(w *Writer, v float64) error {
	_ = w.WriteByte(TagF64)
	w.PutFloat64(v)
	return nil
}

func (float64Codec) Decode(r *Reader) (float64, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch tag {
	case TagF64:
		return r.Float64()
	case TagF32:
		return 0, Decodef("float64", "f32 to f64 cross-decoding is not supported")
	}
	return 0, UnexpectedTag("float64", tag)
}

func (float64Codec) Pack(w *Writer, v float64) error {
	w.PutFloat64(v)
	return nil
}

func (float64Codec) Unpack(r *Reader) (float64, error) { return r.Float64() }
func (float64Codec) IsDefault(v float64) bool          { return v == 0 }
func (float64Codec) TypeName() string                  { return "float64" }

// WriteString writes s with its length folded into the tag when it is short.
func WriteString(w *Writer, s string) {
	if len(s) <= MaxShortString {
		_ = w.WriteByte(TagStringBase + byte(len(s)))
	} else {
		_ = w.WriteByte(TagStringLong)
		WriteLen(w, len(s))
	}
	_, _ = w.WriteString(s)
}

// stringPayload consumes the body of a string whose tag was already read.
func stringPayload(r *Reader, tag byte, typ string) ([]byte, error) {
	var n int
	switch {
	case IsShortString(tag):
		n = int(tag - TagStringBase)
	case tag == TagStringLong:
		var err error
		if n, err = ReadLen(r, typ); err != nil {
			return nil, err
		}
	default:
		return nil, UnexpectedTag(typ, tag)
	}
	return r.Next(n)
}

// ReadString reads a UTF-8 string.
func ReadString(r *Reader) (string, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	p, err := stringPayload(r, tag, "string")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", Decodef("string", "invalid UTF-8")
	}
	return string(p), nil
}

type stringCodec struct{}

// String returns the string codec.
func String() Codec[string] { return stringCodec{} }

func (stringCodec) Encode(w *Writer, v string) error {
	WriteString(w, v)
	return nil
}

func (stringCodec) Decode(r *Reader) (string, error)   { return ReadString(r) }
func (c stringCodec) Pack(w *Writer, v string) error   { return c.Encode(w, v) }
func (c stringCodec) Unpack(r *Reader) (string, error) { return c.Decode(r) }
func (stringCodec) IsDefault(v string) bool            { return v == "" }
func (stringCodec) TypeName() string                   { return "string" }

type bytesCodec struct{}

// Bytes returns the codec for raw byte strings (TagBinary). Decoding also
// accepts string tags and sequences of uint8, so byte data written by any of
// those forms is readable. Decoded slices alias the input.
func Bytes() Codec[[]byte] { return bytesCodec{} }

func (bytesCodec) Encode(w *Writer, v []byte) error {
	_ = w.WriteByte(TagBinary)
	WriteLen(w, len(v))
	_, _ = w.Write(v)
	return nil
}

func (bytesCodec) Decode(r *Reader) ([]byte, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case tag == TagBinary:
		n, err := ReadLen(r, "bytes")
		if err != nil {
			return nil, err
		}
		return r.Next(n)
	case IsShortString(tag) || tag == TagStringLong:
		return stringPayload(r, tag, "bytes")
	case IsShortSeq(tag) || tag == TagSeqLong:
		n, err := seqLen(r, tag, "bytes")
		if err != nil {
			return nil, err
		}
		if err := checkLen(r, n); err != nil {
			return nil, err
		}
		out := make([]byte, n)
		for i := range out {
			v, err := ReadUint(r, 255, "uint8")
			if err != nil {
				return nil, err
			}
			out[i] = byte(v)
		}
		return out, nil
	}
	return nil, UnexpectedTag("bytes", tag)
}

func (c bytesCodec) Pack(w *Writer, v []byte) error   { return c.Encode(w, v) }
func (c bytesCodec) Unpack(r *Reader) ([]byte, error) { return c.Decode(r) }
func (bytesCodec) IsDefault(v []byte) bool            { return len(v) == 0 }
func (bytesCodec) TypeName() string                   { return "[]byte" }

type unitCodec struct{}

// Unit returns the codec for struct{}, written as an empty tuple.
func Unit() Codec[struct{}] { return unitCodec{} }

func (unitCodec) Encode(w *Writer, _ struct{}) error {
	_ = w.WriteByte(TagTuple)
	return w.WriteByte(0)
}

func (unitCodec) Decode(r *Reader) (struct{}, error) {
	return struct{}{}, readTupleHeader(r, 0, "()")
}

func (c unitCodec) Pack(w *Writer, v struct{}) error   { return c.Encode(w, v) }
func (c unitCodec) Unpack(r *Reader) (struct{}, error) { return c.Decode(r) }
func (unitCodec) IsDefault(struct{}) bool              { return true }
func (unitCodec) TypeName() string                     { return "()" }
