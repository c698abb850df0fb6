package codec

import (
	"errors"
	"fmt"

	"github.com/clockworklabs/tagpack/internal/wire"
)

var (
	// ErrInsufficientData is returned when the input ends before a value does.
	ErrInsufficientData = wire.ErrInsufficientData
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("tagpack: decode error")
	// ErrEncode matches every *EncodeError.
	ErrEncode = errors.New("tagpack: encode error")
	// ErrTrailingData is returned by Unmarshal when input remains after the value.
	ErrTrailingData = errors.New("tagpack: trailing data after value")
)

// DecodeError describes malformed or mismatched input.
type DecodeError struct {
	Type   string // Go-side type being decoded
	Reason string
	Err    error // optional cause
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tagpack: decoding %s: %s: %v", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("tagpack: decoding %s: %s", e.Type, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) hold for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// EncodeError describes a value that cannot be represented on the wire.
type EncodeError struct {
	Type   string
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tagpack: encoding %s: %s: %v", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("tagpack: encoding %s: %s", e.Type, e.Reason)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// Decodef builds a DecodeError for typ.
func Decodef(typ, format string, args ...any) error {
	return &DecodeError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}

// Encodef builds an EncodeError for typ.
func Encodef(typ, format string, args ...any) error {
	return &EncodeError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}

// UnexpectedTag reports a tag that does not belong to typ.
func UnexpectedTag(typ string, tag byte) error {
	return &DecodeError{Type: typ, Reason: fmt.Sprintf("unexpected tag %d (%s)", tag, TagName(tag))}
}
