package codec

// Field and variant IDs use their own compact form: 0 terminates a named
// field list, 1..250 fit in one byte, anything else is 255 and a u64.
const (
	maxInlineID = 250
	idEscape    = 255
)

// WriteFieldID writes a field or variant ID.
func WriteFieldID(w *Writer, id uint64) {
	if id <= maxInlineID {
		_ = w.WriteByte(byte(id))
		return
	}
	_ = w.WriteByte(idEscape)
	w.PutUint64(id)
}

// ReadFieldID reads a field or variant ID. A zero result is the terminator.
// Bytes 251..254 are never written but read back as their own value.
func ReadFieldID(r *Reader) (uint64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b == idEscape {
		return r.Uint64()
	}
	return uint64(b), nil
}

// WriteTerminator ends a named field list.
func WriteTerminator(w *Writer) {
	_ = w.WriteByte(0)
}
