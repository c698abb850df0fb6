package codec

type optionCodec[T any] struct {
	inner Codec[T]
}

// Optional returns the codec for *T: TagNone for nil, otherwise TagSome and
// the inner value. Inside a named struct the field is omitted when nil and a
// present value is written without TagSome.
func Optional[T any](inner Codec[T]) Codec[*T] {
	return optionCodec[T]{inner: inner}
}

func (c optionCodec[T]) Encode(w *Writer, v *T) error {
	if v == nil {
		return w.WriteByte(TagNone)
	}
	_ = w.WriteByte(TagSome)
	return c.inner.Encode(w, *v)
}

func (c optionCodec[T]) Decode(r *Reader) (*T, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNone:
		return nil, nil
	case TagSome:
		return c.DecodePresent(r)
	}
	return nil, UnexpectedTag(c.TypeName(), tag)
}

func (c optionCodec[T]) Pack(w *Writer, v *T) error {
	if v == nil {
		return w.WriteByte(TagNone)
	}
	_ = w.WriteByte(TagSome)
	return c.inner.Pack(w, *v)
}

func (c optionCodec[T]) Unpack(r *Reader) (*T, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNone:
		return nil, nil
	case TagSome:
		v, err := c.inner.Unpack(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, UnexpectedTag(c.TypeName(), tag)
}

func (c optionCodec[T]) IsDefault(v *T) bool { return v == nil }
func (c optionCodec[T]) TypeName() string    { return "*" + c.inner.TypeName() }

func (c optionCodec[T]) Absent(v *T) bool { return v == nil }

func (c optionCodec[T]) EncodePresent(w *Writer, v *T) error {
	return c.inner.Encode(w, *v)
}

func (c optionCodec[T]) DecodePresent(r *Reader) (*T, error) {
	v, err := c.inner.Decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
