package codec

import (
	"fmt"
)

// WriteSeqHeader writes the sequence tag for n elements.
func WriteSeqHeader(w *Writer, n int) {
	if n <= MaxShortSeq {
		_ = w.WriteByte(TagSeqBase + byte(n))
		return
	}
	_ = w.WriteByte(TagSeqLong)
	WriteLen(w, n)
}

// seqLen returns the element count of a sequence whose tag was already read.
func seqLen(r *Reader, tag byte, typ string) (int, error) {
	switch {
	case IsShortSeq(tag):
		return int(tag - TagSeqBase), nil
	case tag == TagSeqLong:
		return ReadLen(r, typ)
	}
	return 0, UnexpectedTag(typ, tag)
}

// ReadSeqHeader reads a sequence tag and returns the element count. The count
// is bounded by the remaining input, so callers may allocate from it.
func ReadSeqHeader(r *Reader, typ string) (int, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	n, err := seqLen(r, tag, typ)
	if err != nil {
		return 0, err
	}
	return n, checkLen(r, n)
}

type sliceCodec[T any] struct {
	elem Codec[T]
	// fixed >= 0 makes the codec reject any other length.
	fixed int
}

// Slice returns the codec for []T. Use Bytes for []byte.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem, fixed: -1}
}

// Array returns the codec for a fixed-length list of n elements. Encoding
// and decoding fail on any other length.
func Array[T any](n int, elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem, fixed: n}
}

func (c sliceCodec[T]) check(n int) string {
	if c.fixed >= 0 && n != c.fixed {
		return fmt.Sprintf("Array length mismatch: expected %d, got %d", c.fixed, n)
	}
	return ""
}

func (c sliceCodec[T]) Encode(w *Writer, v []T) error {
	if msg := c.check(len(v)); msg != "" {
		return &EncodeError{Type: c.TypeName(), Reason: msg}
	}
	WriteSeqHeader(w, len(v))
	for _, e := range v {
		if err := c.elem.Encode(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (c sliceCodec[T]) Decode(r *Reader) ([]T, error) {
	return c.read(r, c.elem.Decode)
}

func (c sliceCodec[T]) Pack(w *Writer, v []T) error {
	if msg := c.check(len(v)); msg != "" {
		return &EncodeError{Type: c.TypeName(), Reason: msg}
	}
	WriteSeqHeader(w, len(v))
	for _, e := range v {
		if err := c.elem.Pack(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (c sliceCodec[T]) Unpack(r *Reader) ([]T, error) {
	return c.read(r, c.elem.Unpack)
}

func (c sliceCodec[T]) read(r *Reader, decode func(*Reader) (T, error)) ([]T, error) {
	n, err := ReadSeqHeader(r, c.TypeName())
	if err != nil {
		return nil, err
	}
	if msg := c.check(n); msg != "" {
		return nil, &DecodeError{Type: c.TypeName(), Reason: msg}
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = decode(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c sliceCodec[T]) IsDefault(v []T) bool {
	if c.fixed < 0 {
		return len(v) == 0
	}
	for _, e := range v {
		if !c.elem.IsDefault(e) {
			return false
		}
	}
	return true
}

func (c sliceCodec[T]) TypeName() string {
	if c.fixed >= 0 {
		return fmt.Sprintf("[%d]%s", c.fixed, c.elem.TypeName())
	}
	return "[]" + c.elem.TypeName()
}

type setCodec[T comparable] struct {
	elem Codec[T]
}

// Set returns the codec for map[T]struct{}, written as a sequence. Element
// order follows map iteration and is not deterministic.
func Set[T comparable](elem Codec[T]) Codec[map[T]struct{}] {
	return setCodec[T]{elem: elem}
}

func (c setCodec[T]) Encode(w *Writer, v map[T]struct{}) error {
	WriteSeqHeader(w, len(v))
	for e := range v {
		if err := c.elem.Encode(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (c setCodec[T]) Decode(r *Reader) (map[T]struct{}, error) {
	return c.read(r, c.elem.Decode)
}

func (c setCodec[T]) Pack(w *Writer, v map[T]struct{}) error {
	WriteSeqHeader(w, len(v))
	for e := range v {
		if err := c.elem.Pack(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (c setCodec[T]) Unpack(r *Reader) (map[T]struct{}, error) {
	return c.read(r, c.elem.Unpack)
}

func (c setCodec[T]) read(r *Reader, decode func(*Reader) (T, error)) (map[T]struct{}, error) {
	n, err := ReadSeqHeader(r, c.TypeName())
	if err != nil {
		return nil, err
	}
	out := make(map[T]struct{}, n)
	for i := 0; i < n; i++ {
		e, err := decode(r)
		if err != nil {
			return nil, err
		}
		out[e] = struct{}{}
	}
	return out, nil
}

func (c setCodec[T]) IsDefault(v map[T]struct{}) bool { return len(v) == 0 }
func (c setCodec[T]) TypeName() string                { return "set[" + c.elem.TypeName() + "]" }
