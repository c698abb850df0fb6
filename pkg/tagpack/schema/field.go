package schema

import (
	"fmt"
	"strings"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

// FieldDef describes one member of a struct or variant of shape S. Build it
// with Field for named members and Elem for positional ones.
type FieldDef[S any] struct {
	name     string
	typeName string
	attrs    Attributes
	id       uint64
	optional bool
	err      error

	absent    func(*S) bool
	isDefault func(*S) bool
	// encodeField/decodeField use the named-list framing, which drops the
	// presence tag of optional values. encodeValue/decodeValue write the
	// complete value.
	encodeField func(*codec.Writer, *S) error
	decodeField func(*codec.Reader, *S) error
	encodeValue func(*codec.Writer, *S) error
	decodeValue func(*codec.Reader, *S) error
	pack        func(*codec.Writer, *S) error
	unpack      func(*codec.Reader, *S) error
	discard     func(*codec.Reader) error
}

// Field declares a named member. get returns a pointer to the member inside
// the shape; it is used for both reading and writing.
//
// A codec that implements codec.FieldFramer (Optional does) makes the field
// optional: it is omitted while absent and tolerated as missing on decode.
func Field[S, F any](name string, c codec.Codec[F], get func(*S) *F, opts ...Option) FieldDef[S] {
	f := member(c, get)
	f.name = name
	f.attrs, f.err = fieldAttributes(opts)
	if ff, ok := c.(codec.FieldFramer[F]); ok {
		f.optional = true
		f.absent = func(s *S) bool { return ff.Absent(*get(s)) }
		f.encodeField = func(w *codec.Writer, s *S) error { return ff.EncodePresent(w, *get(s)) }
		f.decodeField = func(r *codec.Reader, s *S) error {
			v, err := ff.DecodePresent(r)
			if err != nil {
				return err
			}
			*get(s) = v
			return nil
		}
	}
	return f
}

// Elem declares a positional member of a tuple struct or tuple variant.
func Elem[S, F any](c codec.Codec[F], get func(*S) *F) FieldDef[S] {
	return member(c, get)
}

func member[S, F any](c codec.Codec[F], get func(*S) *F) FieldDef[S] {
	f := FieldDef[S]{typeName: c.TypeName()}
	f.absent = func(*S) bool { return false }
	f.isDefault = func(s *S) bool { return c.IsDefault(*get(s)) }
	f.encodeValue = func(w *codec.Writer, s *S) error { return c.Encode(w, *get(s)) }
	f.decodeValue = func(r *codec.Reader, s *S) error {
		v, err := c.Decode(r)
		if err != nil {
			return err
		}
		*get(s) = v
		return nil
	}
	f.encodeField = f.encodeValue
	f.decodeField = f.decodeValue
	f.pack = func(w *codec.Writer, s *S) error { return c.Pack(w, *get(s)) }
	f.unpack = func(r *codec.Reader, s *S) error {
		v, err := c.Unpack(r)
		if err != nil {
			return err
		}
		*get(s) = v
		return nil
	}
	f.discard = func(r *codec.Reader) error {
		_, err := c.Unpack(r)
		return err
	}
	return f
}

// Name returns the declared name, or "" for positional members.
func (f FieldDef[S]) Name() string { return f.name }

// ID returns the wire ID. It is zero until the owning schema is built.
func (f FieldDef[S]) ID() uint64 { return f.id }

// fieldSet is a built list of members with their resolved IDs.
type fieldSet[S any] struct {
	fields []FieldDef[S]
	byID   map[uint64]int
}

// buildNamed resolves IDs and rejects collisions within shape.
func buildNamed[S any](shape string, defs []FieldDef[S], cfg config) (fieldSet[S], error) {
	fs := fieldSet[S]{fields: make([]FieldDef[S], len(defs)), byID: make(map[uint64]int, len(defs))}
	copy(fs.fields, defs)
	for i := range fs.fields {
		f := &fs.fields[i]
		if f.err != nil {
			return fs, fmt.Errorf("%s.%s: %w", shape, f.name, f.err)
		}
		if f.name == "" {
			return fs, fmt.Errorf("schema: %s: positional member in a named shape", shape)
		}
		f.id = f.attrs.wireID(f.name)
		if j, dup := fs.byID[f.id]; dup {
			return fs, &DuplicateIDError{Shape: shape, First: fs.fields[j].name, Second: f.name, ID: f.id}
		}
		fs.byID[f.id] = i
		cfg.debug("derived field id", "shape", shape, "field", f.name, "id", fmt.Sprintf("0x%016X", f.id))
	}
	return fs, nil
}

func buildPositional[S any](shape string, defs []FieldDef[S]) (fieldSet[S], error) {
	fs := fieldSet[S]{fields: make([]FieldDef[S], len(defs))}
	copy(fs.fields, defs)
	for _, f := range fs.fields {
		if f.name != "" {
			return fs, fmt.Errorf("schema: %s: named member %q in a positional shape", shape, f.name)
		}
	}
	return fs, nil
}

// namedShape renders "{a:int32,b:string}" for structure hashing.
func (fs fieldSet[S]) namedShape() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fs.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.attrs.wireName(f.name))
		b.WriteByte(':')
		b.WriteString(f.typeName)
	}
	b.WriteByte('}')
	return b.String()
}

// positionalShape renders "(int32,string)" for structure hashing.
func (fs fieldSet[S]) positionalShape() string {
	parts := make([]string, len(fs.fields))
	for i, f := range fs.fields {
		parts[i] = f.typeName
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (fs fieldSet[S]) encodeNamed(w *codec.Writer, s *S) error {
	for i := range fs.fields {
		f := &fs.fields[i]
		if f.attrs.SkipEncode || f.absent(s) {
			continue
		}
		if f.attrs.SkipDefault && f.isDefault(s) {
			continue
		}
		codec.WriteFieldID(w, f.id)
		if err := f.encodeField(w, s); err != nil {
			return err
		}
	}
	codec.WriteTerminator(w)
	return nil
}

// decodeNamed reads a field list up to its terminator. Unknown and
// skip-decode fields are stepped over. missing builds the error for the first
// required field that never arrived.
func (fs fieldSet[S]) decodeNamed(r *codec.Reader, s *S, missing func(field string) error) error {
	filled := make([]bool, len(fs.fields))
	for {
		id, err := codec.ReadFieldID(r)
		if err != nil {
			return err
		}
		if id == 0 {
			break
		}
		i, ok := fs.byID[id]
		if !ok || fs.fields[i].attrs.SkipDecode {
			if err := codec.Skip(r); err != nil {
				return err
			}
			continue
		}
		if err := fs.fields[i].decodeField(r, s); err != nil {
			return err
		}
		filled[i] = true
	}
	for i, f := range fs.fields {
		if filled[i] || f.optional || f.attrs.tolerant() {
			continue
		}
		return missing(f.name)
	}
	return nil
}

func (fs fieldSet[S]) encodePositional(w *codec.Writer, s *S) error {
	codec.WriteLen(w, len(fs.fields))
	for i := range fs.fields {
		if err := fs.fields[i].encodeValue(w, s); err != nil {
			return err
		}
	}
	return nil
}

// decodePositional reads the element count and the elements. mismatch builds
// the error for a count that differs from the declaration.
func (fs fieldSet[S]) decodePositional(r *codec.Reader, s *S, shape string, mismatch func(got int) error) error {
	n, err := codec.ReadLen(r, shape)
	if err != nil {
		return err
	}
	if n != len(fs.fields) {
		return mismatch(n)
	}
	for i := range fs.fields {
		if err := fs.fields[i].decodeValue(r, s); err != nil {
			return err
		}
	}
	return nil
}

func (fs fieldSet[S]) pack(w *codec.Writer, s *S) error {
	for i := range fs.fields {
		f := &fs.fields[i]
		if f.attrs.SkipEncode {
			continue
		}
		if err := f.pack(w, s); err != nil {
			return err
		}
	}
	return nil
}

func (fs fieldSet[S]) unpack(r *codec.Reader, s *S) error {
	for i := range fs.fields {
		f := &fs.fields[i]
		switch {
		case f.attrs.SkipEncode:
			continue
		case f.attrs.SkipDecode:
			if err := f.discard(r); err != nil {
				return err
			}
		default:
			if err := f.unpack(r, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (fs fieldSet[S]) isDefault(s *S) bool {
	for i := range fs.fields {
		if !fs.fields[i].isDefault(s) {
			return false
		}
	}
	return true
}
