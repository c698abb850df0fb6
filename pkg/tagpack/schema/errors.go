package schema

import (
	"errors"
	"fmt"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

var (
	ErrZeroID                = errors.New("schema: explicit id must not be zero")
	ErrDisabled              = errors.New("tagpack: mode disabled")
	ErrInvalidTag            = errors.New("tagpack: invalid tag")
	ErrMissingRequiredField  = errors.New("tagpack: required field missing")
	ErrFieldCountMismatch    = errors.New("tagpack: field count mismatch")
	ErrStructureHashMismatch = errors.New("tagpack: structure hash mismatch")
	ErrUnknownTag            = errors.New("tagpack: unknown enum tag")
	ErrUnknownVariantID      = errors.New("tagpack: unknown variant id")
	ErrAmbiguousVariant      = errors.New("schema: ambiguous variant")
)

// DecodeErrorKind classifies struct and enum decode failures.
type DecodeErrorKind int

const (
	InvalidTag DecodeErrorKind = iota
	MissingRequiredField
	FieldCountMismatch
	StructureHashMismatch
	UnknownTag
	UnknownVariantID // pack mode
	UnknownUnitVariantID
	UnknownNamedVariantID
	UnknownUnnamedVariantID
)

func (k DecodeErrorKind) sentinel() error {
	switch k {
	case InvalidTag:
		return ErrInvalidTag
	case MissingRequiredField:
		return ErrMissingRequiredField
	case FieldCountMismatch:
		return ErrFieldCountMismatch
	case StructureHashMismatch:
		return ErrStructureHashMismatch
	case UnknownTag:
		return ErrUnknownTag
	default:
		return ErrUnknownVariantID
	}
}

// StructDecodeError reports a struct whose wire form does not match its schema.
type StructDecodeError struct {
	Kind     DecodeErrorKind
	Struct   string
	Field    string
	Expected uint64
	Actual   uint64
}

func (e *StructDecodeError) Error() string {
	switch e.Kind {
	case InvalidTag:
		return fmt.Sprintf("tagpack: struct %s: expected tag %d (%s), got %d (%s)",
			e.Struct, e.Expected, codec.TagName(byte(e.Expected)), e.Actual, codec.TagName(byte(e.Actual)))
	case MissingRequiredField:
		return fmt.Sprintf("tagpack: Required field '%s' not found for struct %s", e.Field, e.Struct)
	case FieldCountMismatch:
		return fmt.Sprintf("tagpack: struct %s: expected %d fields, got %d", e.Struct, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("tagpack: struct %s: structure hash mismatch: expected 0x%016X, got 0x%016X",
			e.Struct, e.Expected, e.Actual)
	}
}

func (e *StructDecodeError) Is(target error) bool { return target == e.Kind.sentinel() }

// EnumDecodeError reports an enum whose wire form does not match its schema.
type EnumDecodeError struct {
	Kind     DecodeErrorKind
	Enum     string
	Variant  string
	Field    string
	Tag      byte
	ID       uint64
	Expected uint64
	Actual   uint64
}

func (e *EnumDecodeError) Error() string {
	switch e.Kind {
	case UnknownTag:
		return fmt.Sprintf("tagpack: enum %s: unknown tag %d (%s)", e.Enum, e.Tag, codec.TagName(e.Tag))
	case UnknownVariantID:
		return fmt.Sprintf("tagpack: enum %s: unknown variant id 0x%016X", e.Enum, e.ID)
	case UnknownUnitVariantID:
		return fmt.Sprintf("tagpack: enum %s: unknown unit variant id 0x%016X", e.Enum, e.ID)
	case UnknownNamedVariantID:
		return fmt.Sprintf("tagpack: enum %s: unknown named variant id 0x%016X", e.Enum, e.ID)
	case UnknownUnnamedVariantID:
		return fmt.Sprintf("tagpack: enum %s: unknown unnamed variant id 0x%016X", e.Enum, e.ID)
	case MissingRequiredField:
		return fmt.Sprintf("tagpack: Required field '%s' not found for variant %s::%s", e.Field, e.Enum, e.Variant)
	case FieldCountMismatch:
		return fmt.Sprintf("tagpack: variant %s::%s: expected %d fields, got %d", e.Enum, e.Variant, e.Expected, e.Actual)
	case StructureHashMismatch:
		return fmt.Sprintf("tagpack: variant %s::%s: structure hash mismatch: expected 0x%016X, got 0x%016X",
			e.Enum, e.Variant, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("tagpack: enum %s: decode failed", e.Enum)
	}
}

func (e *EnumDecodeError) Is(target error) bool { return target == e.Kind.sentinel() }

// DuplicateIDError is returned at construction when two fields or variants of
// one shape resolve to the same ID.
type DuplicateIDError struct {
	Shape  string
	First  string
	Second string
	ID     uint64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("schema: %s: %q and %q share id 0x%016X", e.Shape, e.First, e.Second, e.ID)
}

// AmbiguousVariantError is returned at construction when two variants of an
// enum claim the same Go type or the same unit value.
type AmbiguousVariantError struct {
	Enum     string
	First    string
	Second   string
	Selector string
}

func (e *AmbiguousVariantError) Error() string {
	return fmt.Sprintf("schema: %s: %q and %q both select %s", e.Enum, e.First, e.Second, e.Selector)
}

func (e *AmbiguousVariantError) Is(target error) bool { return target == ErrAmbiguousVariant }

// DisabledError is returned by an entry point whose mode was disabled for the
// shape.
type DisabledError struct {
	Shape string
	Mode  string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("tagpack: %s is disabled for %s", e.Mode, e.Shape)
}

func (e *DisabledError) Is(target error) bool { return target == ErrDisabled }
