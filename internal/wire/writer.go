package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer is an append-only byte buffer used by the encoders.
// Writes never fail; the zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer with room for size bytes before it has to grow.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the bytes written so far. The slice aliases the Writer's
// storage and is only valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset discards the written bytes but keeps the allocated storage.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteByte appends a single byte. It implements io.ByteWriter and always
// returns nil.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Write appends p. It implements io.Writer and always returns len(p), nil.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteString appends the bytes of s.
func (w *Writer) WriteString(s string) (int, error) {
	w.buf = append(w.buf, s...)
	return len(s), nil
}

// PutUint16 appends v in little-endian order.
func (w *Writer) PutUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// PutUint32 appends v in little-endian order.
func (w *Writer) PutUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// PutUint64 appends v in little-endian order.
func (w *Writer) PutUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// PutFloat32 appends the IEEE-754 bits of v in little-endian order.
func (w *Writer) PutFloat32(v float32) {
	w.PutUint32(math.Float32bits(v))
}

// PutFloat64 appends the IEEE-754 bits of v in little-endian order.
func (w *Writer) PutFloat64(v float64) {
	w.PutUint64(math.Float64bits(v))
}

// WriteTo flushes the buffered bytes to dst and resets the Writer.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	if err == nil {
		w.Reset()
	}
	return int64(n), err
}
