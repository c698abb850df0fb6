package codec

import (
	"fmt"
	"sync"

	"github.com/clockworklabs/tagpack/internal/wire"
)

type (
	// Writer is the append-only output buffer shared by all codecs.
	Writer = wire.Writer
	// Reader is the input cursor shared by all codecs.
	Reader = wire.Reader
)

// NewWriter returns a Writer with an initial capacity of size bytes.
func NewWriter(size int) *Writer { return wire.NewWriter(size) }

// NewReader returns a Reader over data. Decoded byte slices alias data.
func NewReader(data []byte) *Reader { return wire.NewReader(data) }

// Encoder writes T in the evolvable tagged form.
type Encoder[T any] interface {
	Encode(w *Writer, v T) error
	// IsDefault reports whether v equals the zero value for the purposes of
	// skip-default field elision.
	IsDefault(v T) bool
}

// Decoder reads T from the tagged form.
type Decoder[T any] interface {
	Decode(r *Reader) (T, error)
}

// Packer writes T in the compact positional form.
type Packer[T any] interface {
	Pack(w *Writer, v T) error
}

// Unpacker reads T from the compact positional form.
type Unpacker[T any] interface {
	Unpack(r *Reader) (T, error)
}

// Codec is the full set of capabilities a value type carries. Every codec in
// this package implements it.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
	Packer[T]
	Unpacker[T]
	// TypeName renders the shape of T. It feeds structure hashes, so it must
	// be stable.
	TypeName() string
}

// FieldFramer is implemented by codecs whose values may be absent from a
// named field list. A present value is framed without its own presence tag.
type FieldFramer[T any] interface {
	Absent(v T) bool
	EncodePresent(w *Writer, v T) error
	DecodePresent(r *Reader) (T, error)
}

// Marshal encodes v into a new byte slice.
func Marshal[T any](c Encoder[T], v T) ([]byte, error) {
	w := NewWriter(64)
	if err := c.Encode(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes exactly one value from data.
func Unmarshal[T any](c Decoder[T], data []byte) (T, error) {
	r := NewReader(data)
	v, err := c.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.Remaining() != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Remaining())
	}
	return v, nil
}

// Pack packs v into a new byte slice.
func Pack[T any](c Packer[T], v T) ([]byte, error) {
	w := NewWriter(64)
	if err := c.Pack(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnpackBytes unpacks exactly one value from data.
func UnpackBytes[T any](c Unpacker[T], data []byte) (T, error) {
	r := NewReader(data)
	v, err := c.Unpack(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.Remaining() != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Remaining())
	}
	return v, nil
}

// Lazy defers building a codec until first use, which allows recursive
// shapes to refer to their own codec. Decoding deeply nested input recurses
// once per level; no depth limit is applied.
func Lazy[T any](build func() Codec[T]) Codec[T] {
	return &lazyCodec[T]{build: build}
}

type lazyCodec[T any] struct {
	once  sync.Once
	build func() Codec[T]
	c     Codec[T]
}

func (l *lazyCodec[T]) get() Codec[T] {
	l.once.Do(func() { l.c = l.build() })
	return l.c
}

func (l *lazyCodec[T]) Encode(w *Writer, v T) error { return l.get().Encode(w, v) }
func (l *lazyCodec[T]) Decode(r *Reader) (T, error) { return l.get().Decode(r) }
func (l *lazyCodec[T]) Pack(w *Writer, v T) error   { return l.get().Pack(w, v) }
func (l *lazyCodec[T]) Unpack(r *Reader) (T, error) { return l.get().Unpack(r) }
func (l *lazyCodec[T]) IsDefault(v T) bool          { return l.get().IsDefault(v) }
func (l *lazyCodec[T]) TypeName() string            { return l.get().TypeName() }

// Erase hides the static type of c so heterogeneous codecs can share a slice,
// as Tuple requires.
func Erase[T any](c Codec[T]) Codec[any] {
	return erased[T]{c: c}
}

type erased[T any] struct{ c Codec[T] }

func (e erased[T]) cast(v any) (T, error) {
	t, ok := v.(T)
	if !ok && v != nil {
		return t, Encodef(e.c.TypeName(), "got %T", v)
	}
	return t, nil
}

func (e erased[T]) Encode(w *Writer, v any) error {
	t, err := e.cast(v)
	if err != nil {
		return err
	}
	return e.c.Encode(w, t)
}

func (e erased[T]) Decode(r *Reader) (any, error) {
	v, err := e.c.Decode(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[T]) Pack(w *Writer, v any) error {
	t, err := e.cast(v)
	if err != nil {
		return err
	}
	return e.c.Pack(w, t)
}

func (e erased[T]) Unpack(r *Reader) (any, error) {
	v, err := e.c.Unpack(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[T]) IsDefault(v any) bool {
	t, err := e.cast(v)
	return err == nil && e.c.IsDefault(t)
}

func (e erased[T]) TypeName() string { return e.c.TypeName() }
