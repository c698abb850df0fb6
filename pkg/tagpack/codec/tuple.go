package codec

import (
	"fmt"
	"strings"
)

// WriteTupleHeader writes TagTuple and the arity.
func WriteTupleHeader(w *Writer, arity int) {
	_ = w.WriteByte(TagTuple)
	WriteLen(w, arity)
}

// readTupleHeader reads TagTuple and fails unless the arity is want.
func readTupleHeader(r *Reader, want int, typ string) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	if tag != TagTuple {
		return UnexpectedTag(typ, tag)
	}
	got, err := ReadLen(r, typ)
	if err != nil {
		return err
	}
	if got != want {
		return Decodef(typ, "Expected %d-tuple but got %d-tuple", want, got)
	}
	return nil
}

// Tuple2 is a pair of values.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

type tuple2Codec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

// Pair returns the codec for Tuple2.
func Pair[A, B any](a Codec[A], b Codec[B]) Codec[Tuple2[A, B]] {
	return tuple2Codec[A, B]{a: a, b: b}
}

func (c tuple2Codec[A, B]) Encode(w *Writer, v Tuple2[A, B]) error {
	WriteTupleHeader(w, 2)
	if err := c.a.Encode(w, v.First); err != nil {
		return err
	}
	return c.b.Encode(w, v.Second)
}

func (c tuple2Codec[A, B]) Decode(r *Reader) (out Tuple2[A, B], err error) {
	if err = readTupleHeader(r, 2, c.TypeName()); err != nil {
		return out, err
	}
	if out.First, err = c.a.Decode(r); err != nil {
		return Tuple2[A, B]{}, err
	}
	if out.Second, err = c.b.Decode(r); err != nil {
		return Tuple2[A, B]{}, err
	}
	return out, nil
}

func (c tuple2Codec[A, B]) Pack(w *Writer, v Tuple2[A, B]) error {
	WriteTupleHeader(w, 2)
	if err := c.a.Pack(w, v.First); err != nil {
		return err
	}
	return c.b.Pack(w, v.Second)
}

func (c tuple2Codec[A, B]) Unpack(r *Reader) (out Tuple2[A, B], err error) {
	if err = readTupleHeader(r, 2, c.TypeName()); err != nil {
		return out, err
	}
	if out.First, err = c.a.Unpack(r); err != nil {
		return Tuple2[A, B]{}, err
	}
	if out.Second, err = c.b.Unpack(r); err != nil {
		return Tuple2[A, B]{}, err
	}
	return out, nil
}

func (c tuple2Codec[A, B]) IsDefault(v Tuple2[A, B]) bool {
	return c.a.IsDefault(v.First) && c.b.IsDefault(v.Second)
}

func (c tuple2Codec[A, B]) TypeName() string {
	return "(" + c.a.TypeName() + ", " + c.b.TypeName() + ")"
}

// Tuple3 is a triple of values.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type tuple3Codec[A, B, C any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
}

// Triple returns the codec for Tuple3.
func Triple[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Tuple3[A, B, C]] {
	return tuple3Codec[A, B, C]{a: a, b: b, c: c}
}

func (t tuple3Codec[A, B, C]) Encode(w *Writer, v Tuple3[A, B, C]) error {
	WriteTupleHeader(w, 3)
	if err := t.a.Encode(w, v.First); err != nil {
		return err
	}
	if err := t.b.Encode(w, v.Second); err != nil {
		return err
	}
	return t.c.Encode(w, v.Third)
}

func (t tuple3Codec[A, B, C]) Decode(r *Reader) (out Tuple3[A, B, C], err error) {
	if err = readTupleHeader(r, 3, t.TypeName()); err != nil {
		return out, err
	}
	if out.First, err = t.a.Decode(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.Second, err = t.b.Decode(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.Third, err = t.c.Decode(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	return out, nil
}

func (t tuple3Codec[A, B, C]) Pack(w *Writer, v Tuple3[A, B, C]) error {
	WriteTupleHeader(w, 3)
	if err := t.a.Pack(w, v.First); err != nil {
		return err
	}
	if err := t.b.Pack(w, v.Second); err != nil {
		return err
	}
	return t.c.Pack(w, v.Third)
}

func (t tuple3Codec[A, B, C]) Unpack(r *Reader) (out Tuple3[A, B, C], err error) {
	if err = readTupleHeader(r, 3, t.TypeName()); err != nil {
		return out, err
	}
	if out.First, err = t.a.Unpack(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.Second, err = t.b.Unpack(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.Third, err = t.c.Unpack(r); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	return out, nil
}

func (t tuple3Codec[A, B, C]) IsDefault(v Tuple3[A, B, C]) bool {
	return t.a.IsDefault(v.First) && t.b.IsDefault(v.Second) && t.c.IsDefault(v.Third)
}

func (t tuple3Codec[A, B, C]) TypeName() string {
	return "(" + t.a.TypeName() + ", " + t.b.TypeName() + ", " + t.c.TypeName() + ")"
}

type tupleCodec struct {
	elems []Codec[any]
}

// Tuple returns a codec for tuples of any arity, represented as []any with
// one entry per element codec. Build the element codecs with Erase.
func Tuple(elems ...Codec[any]) Codec[[]any] {
	return tupleCodec{elems: elems}
}

func (c tupleCodec) check(v []any) error {
	if len(v) != len(c.elems) {
		return Encodef(c.TypeName(), "got %d values", len(v))
	}
	return nil
}

func (c tupleCodec) Encode(w *Writer, v []any) error {
	if err := c.check(v); err != nil {
		return err
	}
	WriteTupleHeader(w, len(c.elems))
	for i, e := range c.elems {
		if err := e.Encode(w, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c tupleCodec) Decode(r *Reader) ([]any, error) {
	if err := readTupleHeader(r, len(c.elems), c.TypeName()); err != nil {
		return nil, err
	}
	out := make([]any, len(c.elems))
	for i, e := range c.elems {
		v, err := e.Decode(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c tupleCodec) Pack(w *Writer, v []any) error {
	if err := c.check(v); err != nil {
		return err
	}
	WriteTupleHeader(w, len(c.elems))
	for i, e := range c.elems {
		if err := e.Pack(w, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c tupleCodec) Unpack(r *Reader) ([]any, error) {
	if err := readTupleHeader(r, len(c.elems), c.TypeName()); err != nil {
		return nil, err
	}
	out := make([]any, len(c.elems))
	for i, e := range c.elems {
		v, err := e.Unpack(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c tupleCodec) IsDefault(v []any) bool {
	if len(v) != len(c.elems) {
		return false
	}
	for i, e := range c.elems {
		if !e.IsDefault(v[i]) {
			return false
		}
	}
	return true
}

func (c tupleCodec) TypeName() string {
	names := make([]string, len(c.elems))
	for i, e := range c.elems {
		names[i] = e.TypeName()
	}
	return fmt.Sprintf("(%s)", strings.Join(names, ", "))
}
