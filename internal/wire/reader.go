package wire

import (
	"encoding/binary"
	"math"
)

// Reader is a forward-only cursor over a caller-owned byte slice.
// Slices returned by Next alias the underlying buffer; nothing is copied.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// BytesRead returns the number of bytes consumed so far.
func (r *Reader) BytesRead() int {
	return r.off
}

// ReadByte consumes one byte. It implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrInsufficientData
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrInsufficientData
	}
	return r.buf[r.off], nil
}

// Next consumes n bytes and returns them as a sub-slice of the input.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrInsufficientData
	}
	p := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return p, nil
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.Next(n)
	return err
}

// Uint16 consumes a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	p, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// Uint32 consumes a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	p, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// Uint64 consumes a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	p, err := r.Next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

// Float32 consumes a little-endian IEEE-754 float32.
func (r *Reader) Float32() (float32, error) {
	bits, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Float64 consumes a little-endian IEEE-754 float64.
func (r *Reader) Float64() (float64, error) {
	bits, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
