package schema

import (
	"fmt"
	"log/slog"
)

// Attributes are the per-field and per-variant settings. They are orthogonal
// and may be combined.
type Attributes struct {
	ID          uint64 // explicit wire ID; zero means derive from the name
	Rename      string // name hashed instead of the declared name
	Default     bool   // missing on decode yields the zero value
	SkipEncode  bool   // never written
	SkipDecode  bool   // ignored on decode, always the zero value
	SkipDefault bool   // omitted on encode when equal to the zero value

	defaultVariant bool
	hasID          bool
	fieldOnly      []string
	variantOnly    []string
}

// Option sets an attribute on a field or variant.
type Option func(*Attributes)

// ID overrides the derived wire ID. It must not be zero.
func ID(id uint64) Option {
	return func(a *Attributes) {
		a.ID = id
		a.hasID = true
	}
}

// Rename hashes name instead of the declared name when deriving the ID.
func Rename(name string) Option {
	return func(a *Attributes) { a.Rename = name }
}

// Default tolerates the field being absent on decode.
func Default() Option {
	return func(a *Attributes) {
		a.Default = true
		a.fieldOnly = append(a.fieldOnly, "Default")
	}
}

// SkipEncode keeps the field off the wire.
func SkipEncode() Option {
	return func(a *Attributes) {
		a.SkipEncode = true
		a.fieldOnly = append(a.fieldOnly, "SkipEncode")
	}
}

// SkipDecode discards the field on decode; it always decodes as the zero value.
func SkipDecode() Option {
	return func(a *Attributes) {
		a.SkipDecode = true
		a.fieldOnly = append(a.fieldOnly, "SkipDecode")
	}
}

// SkipDefault omits the field on encode when it holds its default value and
// tolerates its absence on decode.
func SkipDefault() Option {
	return func(a *Attributes) {
		a.SkipDefault = true
		a.fieldOnly = append(a.fieldOnly, "SkipDefault")
	}
}

// DefaultVariant marks the enum variant whose all-default form reports
// IsDefault.
func DefaultVariant() Option {
	return func(a *Attributes) {
		a.defaultVariant = true
		a.variantOnly = append(a.variantOnly, "DefaultVariant")
	}
}

func fieldAttributes(opts []Option) (Attributes, error) {
	a := collect(opts)
	if len(a.variantOnly) > 0 {
		return a, fmt.Errorf("schema: %s is not valid on a field", a.variantOnly[0])
	}
	return a, a.checkID()
}

func variantAttributes(opts []Option) (Attributes, error) {
	a := collect(opts)
	if len(a.fieldOnly) > 0 {
		return a, fmt.Errorf("schema: %s is not valid on a variant", a.fieldOnly[0])
	}
	return a, a.checkID()
}

func collect(opts []Option) Attributes {
	var a Attributes
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a Attributes) checkID() error {
	if a.hasID && a.ID == 0 {
		return ErrZeroID
	}
	return nil
}

// wireID resolves the ID for a member declared as name.
func (a Attributes) wireID(name string) uint64 {
	if a.hasID {
		return a.ID
	}
	return DeriveID(a.wireName(name))
}

func (a Attributes) wireName(name string) string {
	if a.Rename != "" {
		return a.Rename
	}
	return name
}

// tolerant reports whether a missing field decodes to its zero value.
func (a Attributes) tolerant() bool {
	return a.Default || a.SkipDecode || a.SkipDefault
}

type config struct {
	disableEncode bool
	disablePack   bool
	logger        *slog.Logger
}

// SchemaOption configures a struct or enum schema.
type SchemaOption func(*config)

// DisableEncode makes Encode, Decode and IsDefault unavailable. Encode and
// Decode return ErrDisabled.
func DisableEncode() SchemaOption {
	return func(c *config) { c.disableEncode = true }
}

// DisablePack makes Pack and Unpack return ErrDisabled.
func DisablePack() SchemaOption {
	return func(c *config) { c.disablePack = true }
}

// WithLogger logs derived IDs and structure hashes at debug level while the
// schema is built.
func WithLogger(l *slog.Logger) SchemaOption {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []SchemaOption) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c config) checkEncode(shape string) error {
	if c.disableEncode {
		return &DisabledError{Shape: shape, Mode: "encode"}
	}
	return nil
}

func (c config) checkPack(shape string) error {
	if c.disablePack {
		return &DisabledError{Shape: shape, Mode: "pack"}
	}
	return nil
}
