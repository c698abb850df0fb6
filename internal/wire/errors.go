package wire

import "errors"

var (
	// ErrInsufficientData is returned when a read runs past the end of the input.
	ErrInsufficientData = errors.New("tagpack: insufficient data in buffer")
)
