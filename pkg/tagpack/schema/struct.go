package schema

import (
	"fmt"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

// Kind is the framing of a struct or enum variant.
type Kind int

const (
	KindUnit Kind = iota
	KindNamed
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindNamed:
		return "named"
	case KindTuple:
		return "tuple"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Struct is the schema of a Go struct type T. It implements codec.Codec[T],
// so it can be nested inside other schemas and containers. A Struct is
// immutable once built and safe for concurrent use.
type Struct[T any] struct {
	name   string
	kind   Kind
	fields fieldSet[T]
	hash   uint64
	cfg    config
}

// NewStruct builds the schema of a struct with named fields. It fails when
// two fields resolve to the same ID or an attribute is invalid.
func NewStruct[T any](name string, fields []FieldDef[T], opts ...SchemaOption) (*Struct[T], error) {
	cfg := newConfig(opts)
	fs, err := buildNamed(name, fields, cfg)
	if err != nil {
		return nil, err
	}
	return newStruct(name, KindNamed, fs, name+fs.namedShape(), cfg), nil
}

// NewTupleStruct builds the schema of a struct with positional fields,
// declared with Elem.
func NewTupleStruct[T any](name string, elems []FieldDef[T], opts ...SchemaOption) (*Struct[T], error) {
	fs, err := buildPositional(name, elems)
	if err != nil {
		return nil, err
	}
	return newStruct(name, KindTuple, fs, name+fs.positionalShape(), newConfig(opts)), nil
}

// NewUnitStruct builds the schema of a struct without fields.
func NewUnitStruct[T any](name string, opts ...SchemaOption) (*Struct[T], error) {
	return newStruct(name, KindUnit, fieldSet[T]{}, name, newConfig(opts)), nil
}

// MustStruct is NewStruct that panics on error, for package-level schemas.
func MustStruct[T any](name string, fields []FieldDef[T], opts ...SchemaOption) *Struct[T] {
	s, err := NewStruct(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustTupleStruct is NewTupleStruct that panics on error.
func MustTupleStruct[T any](name string, elems []FieldDef[T], opts ...SchemaOption) *Struct[T] {
	s, err := NewTupleStruct(name, elems, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustUnitStruct is NewUnitStruct that panics on error.
func MustUnitStruct[T any](name string, opts ...SchemaOption) *Struct[T] {
	s, err := NewUnitStruct[T](name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func newStruct[T any](name string, kind Kind, fs fieldSet[T], shape string, cfg config) *Struct[T] {
	s := &Struct[T]{name: name, kind: kind, fields: fs, hash: Checksum([]byte(shape)), cfg: cfg}
	cfg.debug("structure hash", "shape", shape, "hash", fmt.Sprintf("0x%016X", s.hash))
	return s
}

// Name returns the struct name.
func (s *Struct[T]) Name() string { return s.name }

// Kind returns the struct framing.
func (s *Struct[T]) Kind() Kind { return s.kind }

// StructureHash returns the shape hash written in front of packed values.
func (s *Struct[T]) StructureHash() uint64 { return s.hash }

// FieldID returns the wire ID of the named field.
func (s *Struct[T]) FieldID(name string) (uint64, bool) {
	for _, f := range s.fields.fields {
		if f.name == name {
			return f.id, true
		}
	}
	return 0, false
}

func (s *Struct[T]) tag() byte {
	switch s.kind {
	case KindNamed:
		return codec.TagStructNamed
	case KindTuple:
		return codec.TagStructTuple
	default:
		return codec.TagStructUnit
	}
}

// Encode writes v in the tagged form.
func (s *Struct[T]) Encode(w *codec.Writer, v T) error {
	if err := s.cfg.checkEncode(s.name); err != nil {
		return err
	}
	_ = w.WriteByte(s.tag())
	switch s.kind {
	case KindNamed:
		return s.fields.encodeNamed(w, &v)
	case KindTuple:
		return s.fields.encodePositional(w, &v)
	}
	return nil
}

// Decode reads a value in the tagged form. Unknown fields are skipped;
// required fields that are absent fail the decode.
func (s *Struct[T]) Decode(r *codec.Reader) (T, error) {
	var out, zero T
	if err := s.cfg.checkEncode(s.name); err != nil {
		return zero, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return zero, err
	}
	if want := s.tag(); tag != want {
		return zero, &StructDecodeError{Kind: InvalidTag, Struct: s.name, Expected: uint64(want), Actual: uint64(tag)}
	}
	switch s.kind {
	case KindNamed:
		err = s.fields.decodeNamed(r, &out, func(field string) error {
			return &StructDecodeError{Kind: MissingRequiredField, Struct: s.name, Field: field}
		})
	case KindTuple:
		err = s.fields.decodePositional(r, &out, s.name, func(got int) error {
			return &StructDecodeError{Kind: FieldCountMismatch, Struct: s.name,
				Expected: uint64(len(s.fields.fields)), Actual: uint64(got)}
		})
	}
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Pack writes the structure hash followed by the fields in declaration order.
func (s *Struct[T]) Pack(w *codec.Writer, v T) error {
	if err := s.cfg.checkPack(s.name); err != nil {
		return err
	}
	w.PutUint64(s.hash)
	return s.fields.pack(w, &v)
}

// Unpack checks the structure hash before reading any field.
func (s *Struct[T]) Unpack(r *codec.Reader) (T, error) {
	var out, zero T
	if err := s.cfg.checkPack(s.name); err != nil {
		return zero, err
	}
	hash, err := r.Uint64()
	if err != nil {
		return zero, err
	}
	if hash != s.hash {
		return zero, &StructDecodeError{Kind: StructureHashMismatch, Struct: s.name, Expected: s.hash, Actual: hash}
	}
	if err := s.fields.unpack(r, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// IsDefault reports whether every field holds its default value.
func (s *Struct[T]) IsDefault(v T) bool {
	if s.cfg.disableEncode {
		return false
	}
	return s.fields.isDefault(&v)
}

// TypeName returns the struct name.
func (s *Struct[T]) TypeName() string { return s.name }
