package schema

import (
	"fmt"
	"reflect"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

// variantBody is the framing of one variant with its payload type erased.
type variantBody[E any] interface {
	kind() Kind
	shape() string
	count() int
	matches(e E) bool
	encode(w *codec.Writer, e E) error
	decode(r *codec.Reader, missing func(field string) error, mismatch func(got int) error) (E, error)
	pack(w *codec.Writer, e E) error
	unpack(r *codec.Reader) (E, error)
	isDefault(e E) bool
	// selector identifies the values the variant claims: the unit value, or
	// the payload type.
	selector() selector
}

type selector struct {
	value any
	typ   reflect.Type
}

func (s selector) String() string {
	if s.typ != nil {
		return "type " + s.typ.String()
	}
	return fmt.Sprintf("value %v", s.value)
}

// overlaps reports whether a value could belong to both selectors.
func (s selector) overlaps(o selector) bool {
	switch {
	case s.typ != nil && o.typ != nil:
		return s.typ == o.typ
	case s.typ != nil:
		return reflect.TypeOf(o.value) == s.typ
	case o.typ != nil:
		return reflect.TypeOf(s.value) == o.typ
	}
	return s.value == o.value
}

// VariantDef describes one variant of an enum E. Build it with UnitVariant,
// NamedVariant or TupleVariant.
type VariantDef[E any] struct {
	name  string
	attrs Attributes
	err   error
	build func(enum string, cfg config) (variantBody[E], error)
}

// Name returns the declared variant name.
func (v VariantDef[E]) Name() string { return v.name }

// UnitVariant declares a variant without payload. A value of the enum
// belongs to it when it equals value.
func UnitVariant[E comparable](name string, value E, opts ...Option) VariantDef[E] {
	v := VariantDef[E]{name: name}
	v.attrs, v.err = variantAttributes(opts)
	v.build = func(string, config) (variantBody[E], error) {
		return unitBody[E]{value: value}, nil
	}
	return v
}

// NamedVariant declares a variant whose payload V has named fields. The enum
// type E is usually an interface implemented by V; a value belongs to the
// variant when its dynamic type is V.
func NamedVariant[E, V any](name string, fields []FieldDef[V], opts ...Option) VariantDef[E] {
	v := VariantDef[E]{name: name}
	v.attrs, v.err = variantAttributes(opts)
	v.build = func(enum string, cfg config) (variantBody[E], error) {
		if err := checkPayload[E, V](enum, name); err != nil {
			return nil, err
		}
		fs, err := buildNamed(enum+"::"+name, fields, cfg)
		if err != nil {
			return nil, err
		}
		return &fieldsBody[E, V]{k: KindNamed, fs: fs}, nil
	}
	return v
}

// TupleVariant declares a variant whose payload V has positional fields,
// declared with Elem.
func TupleVariant[E, V any](name string, elems []FieldDef[V], opts ...Option) VariantDef[E] {
	v := VariantDef[E]{name: name}
	v.attrs, v.err = variantAttributes(opts)
	v.build = func(enum string, cfg config) (variantBody[E], error) {
		if err := checkPayload[E, V](enum, name); err != nil {
			return nil, err
		}
		fs, err := buildPositional(enum+"::"+name, elems)
		if err != nil {
			return nil, err
		}
		return &fieldsBody[E, V]{k: KindTuple, fs: fs}, nil
	}
	return v
}

func checkPayload[E, V any](enum, variant string) error {
	var zero V
	if _, ok := any(zero).(E); !ok {
		return fmt.Errorf("schema: %s::%s: %v does not convert to %v",
			enum, variant, reflect.TypeFor[V](), reflect.TypeFor[E]())
	}
	return nil
}

type unitBody[E comparable] struct{ value E }

func (u unitBody[E]) kind() Kind                      { return KindUnit }
func (u unitBody[E]) shape() string                   { return "" }
func (u unitBody[E]) count() int                      { return 0 }
func (u unitBody[E]) matches(e E) bool                { return e == u.value }
func (u unitBody[E]) encode(*codec.Writer, E) error   { return nil }
func (u unitBody[E]) pack(*codec.Writer, E) error     { return nil }
func (u unitBody[E]) unpack(*codec.Reader) (E, error) { return u.value, nil }
func (u unitBody[E]) isDefault(e E) bool              { return e == u.value }
func (u unitBody[E]) selector() selector              { return selector{value: u.value} }
func (u unitBody[E]) decode(*codec.Reader, func(string) error, func(int) error) (E, error) {
	return u.value, nil
}

type fieldsBody[E, V any] struct {
	k  Kind
	fs fieldSet[V]
}

func (b *fieldsBody[E, V]) kind() Kind { return b.k }
func (b *fieldsBody[E, V]) count() int { return len(b.fs.fields) }

func (b *fieldsBody[E, V]) selector() selector { return selector{typ: reflect.TypeFor[V]()} }

func (b *fieldsBody[E, V]) shape() string {
	if b.k == KindNamed {
		return b.fs.namedShape()
	}
	return b.fs.positionalShape()
}

func (b *fieldsBody[E, V]) matches(e E) bool {
	_, ok := any(e).(V)
	return ok
}

func (b *fieldsBody[E, V]) payload(e E) *V {
	v := any(e).(V)
	return &v
}

func (b *fieldsBody[E, V]) wrap(v V) E {
	return any(v).(E)
}

func (b *fieldsBody[E, V]) encode(w *codec.Writer, e E) error {
	if b.k == KindNamed {
		return b.fs.encodeNamed(w, b.payload(e))
	}
	return b.fs.encodePositional(w, b.payload(e))
}

func (b *fieldsBody[E, V]) decode(r *codec.Reader, missing func(string) error, mismatch func(int) error) (E, error) {
	var v V
	var err error
	if b.k == KindNamed {
		err = b.fs.decodeNamed(r, &v, missing)
	} else {
		err = b.fs.decodePositional(r, &v, reflect.TypeFor[V]().String(), mismatch)
	}
	if err != nil {
		var zero E
		return zero, err
	}
	return b.wrap(v), nil
}

func (b *fieldsBody[E, V]) pack(w *codec.Writer, e E) error {
	return b.fs.pack(w, b.payload(e))
}

func (b *fieldsBody[E, V]) unpack(r *codec.Reader) (E, error) {
	var v V
	if err := b.fs.unpack(r, &v); err != nil {
		var zero E
		return zero, err
	}
	return b.wrap(v), nil
}

func (b *fieldsBody[E, V]) isDefault(e E) bool {
	return b.matches(e) && b.fs.isDefault(b.payload(e))
}

type variant[E any] struct {
	name string
	id   uint64
	hash uint64
	def  bool
	body variantBody[E]
}

// Enum is the schema of a sum type E. It implements codec.Codec[E].
type Enum[E any] struct {
	name     string
	variants []variant[E]
	byID     map[uint64]int
	cfg      config
}

// NewEnum builds an enum schema. Variant IDs are derived from the variant
// names unless overridden with ID, and must be unique within the enum.
func NewEnum[E any](name string, variants []VariantDef[E], opts ...SchemaOption) (*Enum[E], error) {
	cfg := newConfig(opts)
	e := &Enum[E]{name: name, variants: make([]variant[E], 0, len(variants)), byID: make(map[uint64]int, len(variants)), cfg: cfg}
	defaults := 0
	for _, def := range variants {
		if def.err != nil {
			return nil, fmt.Errorf("%s::%s: %w", name, def.name, def.err)
		}
		body, err := def.build(name, cfg)
		if err != nil {
			return nil, err
		}
		id := def.attrs.wireID(def.name)
		if j, dup := e.byID[id]; dup {
			return nil, &DuplicateIDError{Shape: name, First: e.variants[j].name, Second: def.name, ID: id}
		}
		sel := body.selector()
		for _, prev := range e.variants {
			if prev.body.selector().overlaps(sel) {
				return nil, &AmbiguousVariantError{Enum: name, First: prev.name, Second: def.name, Selector: sel.String()}
			}
		}
		if def.attrs.defaultVariant {
			defaults++
		}
		shape := name + "::" + def.name + body.shape()
		v := variant[E]{name: def.name, id: id, hash: Checksum([]byte(shape)), def: def.attrs.defaultVariant, body: body}
		e.byID[id] = len(e.variants)
		e.variants = append(e.variants, v)
		cfg.debug("derived variant id", "enum", name, "variant", def.name, "id", fmt.Sprintf("0x%016X", id),
			"hash", fmt.Sprintf("0x%016X", v.hash))
	}
	if defaults > 1 {
		return nil, fmt.Errorf("schema: %s: more than one default variant", name)
	}
	return e, nil
}

// MustEnum is NewEnum that panics on error.
func MustEnum[E any](name string, variants []VariantDef[E], opts ...SchemaOption) *Enum[E] {
	e, err := NewEnum(name, variants, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the enum name.
func (e *Enum[E]) Name() string { return e.name }

// VariantID returns the wire ID of the named variant.
func (e *Enum[E]) VariantID(name string) (uint64, bool) {
	for _, v := range e.variants {
		if v.name == name {
			return v.id, true
		}
	}
	return 0, false
}

// VariantHash returns the structure hash of the named variant's payload.
func (e *Enum[E]) VariantHash(name string) (uint64, bool) {
	for _, v := range e.variants {
		if v.name == name {
			return v.hash, true
		}
	}
	return 0, false
}

func (e *Enum[E]) find(val E) (*variant[E], error) {
	for i := range e.variants {
		if e.variants[i].body.matches(val) {
			return &e.variants[i], nil
		}
	}
	return nil, codec.Encodef(e.name, "value of type %T matches no variant", val)
}

func variantTag(k Kind) byte {
	switch k {
	case KindNamed:
		return codec.TagEnumNamed
	case KindTuple:
		return codec.TagEnumTuple
	default:
		return codec.TagEnumUnit
	}
}

// Encode writes the variant tag, the variant ID and the payload framing.
func (e *Enum[E]) Encode(w *codec.Writer, val E) error {
	if err := e.cfg.checkEncode(e.name); err != nil {
		return err
	}
	v, err := e.find(val)
	if err != nil {
		return err
	}
	_ = w.WriteByte(variantTag(v.body.kind()))
	codec.WriteFieldID(w, v.id)
	return v.body.encode(w, val)
}

// Decode reads a value written by Encode. The tag selects which kind of
// variant the ID must name.
func (e *Enum[E]) Decode(r *codec.Reader) (E, error) {
	var zero E
	if err := e.cfg.checkEncode(e.name); err != nil {
		return zero, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return zero, err
	}
	var kind Kind
	var unknown DecodeErrorKind
	switch tag {
	case codec.TagEnumUnit:
		kind, unknown = KindUnit, UnknownUnitVariantID
	case codec.TagEnumNamed:
		kind, unknown = KindNamed, UnknownNamedVariantID
	case codec.TagEnumTuple:
		kind, unknown = KindTuple, UnknownUnnamedVariantID
	default:
		return zero, &EnumDecodeError{Kind: UnknownTag, Enum: e.name, Tag: tag}
	}
	id, err := codec.ReadFieldID(r)
	if err != nil {
		return zero, err
	}
	i, ok := e.byID[id]
	if !ok || e.variants[i].body.kind() != kind {
		return zero, &EnumDecodeError{Kind: unknown, Enum: e.name, Tag: tag, ID: id}
	}
	v := &e.variants[i]
	out, err := v.body.decode(r,
		func(field string) error {
			return &EnumDecodeError{Kind: MissingRequiredField, Enum: e.name, Variant: v.name, Field: field}
		},
		func(got int) error {
			return &EnumDecodeError{Kind: FieldCountMismatch, Enum: e.name, Variant: v.name,
				Expected: uint64(v.body.count()), Actual: uint64(got)}
		})
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Pack writes the variant ID; variants with a payload follow it with their
// structure hash and positional fields.
func (e *Enum[E]) Pack(w *codec.Writer, val E) error {
	if err := e.cfg.checkPack(e.name); err != nil {
		return err
	}
	v, err := e.find(val)
	if err != nil {
		return err
	}
	codec.WriteFieldID(w, v.id)
	if v.body.kind() == KindUnit {
		return nil
	}
	w.PutUint64(v.hash)
	return v.body.pack(w, val)
}

// Unpack reads a value written by Pack.
func (e *Enum[E]) Unpack(r *codec.Reader) (E, error) {
	var zero E
	if err := e.cfg.checkPack(e.name); err != nil {
		return zero, err
	}
	id, err := codec.ReadFieldID(r)
	if err != nil {
		return zero, err
	}
	i, ok := e.byID[id]
	if !ok {
		return zero, &EnumDecodeError{Kind: UnknownVariantID, Enum: e.name, ID: id}
	}
	v := &e.variants[i]
	if v.body.kind() != KindUnit {
		hash, err := r.Uint64()
		if err != nil {
			return zero, err
		}
		if hash != v.hash {
			return zero, &EnumDecodeError{Kind: StructureHashMismatch, Enum: e.name, Variant: v.name,
				Expected: v.hash, Actual: hash}
		}
	}
	out, err := v.body.unpack(r)
	if err != nil {
		return zero, err
	}
	return out, nil
}

// IsDefault reports whether val is the zero E or the default variant holding
// only default fields. Enums without a DefaultVariant are default only when
// val is the zero E.
func (e *Enum[E]) IsDefault(val E) bool {
	if e.cfg.disableEncode {
		return false
	}
	if reflect.ValueOf(&val).Elem().IsZero() {
		return true
	}
	for _, v := range e.variants {
		if v.def {
			return v.body.isDefault(val)
		}
	}
	return false
}

// TypeName returns the enum name.
func (e *Enum[E]) TypeName() string { return e.name }
