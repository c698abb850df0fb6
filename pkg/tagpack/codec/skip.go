package codec

// Skip consumes exactly one tagged value of any shape without decoding it.
// Schema decoders use it to step over fields they do not recognize.
func Skip(r *Reader) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	return skipBody(r, tag)
}

func skipN(r *Reader, n int) error {
	for i := 0; i < n; i++ {
		if err := Skip(r); err != nil {
			return err
		}
	}
	return nil
}

func skipCounted(r *Reader, per int) error {
	n, err := ReadLen(r, "skip")
	if err != nil {
		return err
	}
	if err := checkLen(r, n); err != nil {
		return err
	}
	return skipN(r, n*per)
}

// skipNamed steps over a named field list up to and including its terminator.
func skipNamed(r *Reader) error {
	for {
		id, err := ReadFieldID(r)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}
		if err := Skip(r); err != nil {
			return err
		}
	}
}

func skipUint(r *Reader) error {
	_, err := ReadU128(r, "skip")
	return err
}

func skipInt(r *Reader) error {
	_, err := ReadI128(r, "skip")
	return err
}

func skipBody(r *Reader, tag byte) error {
	switch {
	case tag <= TagCompactMax:
		return nil
	case IsShortString(tag):
		return r.Skip(int(tag - TagStringBase))
	case IsShortSeq(tag):
		return skipN(r, int(tag-TagSeqBase))
	}

	switch tag {
	case TagNone, TagStructUnit, TagJSONNull:
		return nil
	case TagSome:
		return Skip(r)
	case TagU8:
		return r.Skip(1)
	case TagU16:
		return r.Skip(2)
	case TagU32, TagF32:
		return r.Skip(4)
	case TagU64, TagF64:
		return r.Skip(8)
	case TagU128:
		return r.Skip(16)
	case TagNegative:
		return skipUint(r)
	case TagStringLong, TagBinary:
		n, err := ReadLen(r, "skip")
		if err != nil {
			return err
		}
		return r.Skip(n)
	case TagStructNamed:
		return skipNamed(r)
	case TagStructTuple, TagSeqLong, TagTuple, TagJSONArray:
		return skipCounted(r, 1)
	case TagMap:
		return skipCounted(r, 2)
	case TagEnumUnit:
		_, err := ReadFieldID(r)
		return err
	case TagEnumNamed:
		if _, err := ReadFieldID(r); err != nil {
			return err
		}
		return skipNamed(r)
	case TagEnumTuple:
		if _, err := ReadFieldID(r); err != nil {
			return err
		}
		return skipCounted(r, 1)
	case TagDateTime:
		if err := skipInt(r); err != nil {
			return err
		}
		return skipUint(r)
	case TagDate:
		return skipInt(r)
	case TagTime:
		if err := skipUint(r); err != nil {
			return err
		}
		return skipUint(r)
	case TagDecimal:
		if err := skipInt(r); err != nil {
			return err
		}
		return skipUint(r)
	case TagUUID:
		return r.Skip(16)
	case TagJSONBool:
		_, err := Bool().Decode(r)
		return err
	case TagJSONNumber:
		marker, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch marker {
		case JSONNumberUint:
			return skipUint(r)
		case JSONNumberInt:
			return skipInt(r)
		case JSONNumberFloat:
			_, err := Float64().Decode(r)
			return err
		}
		return Decodef("json number", "invalid number marker %d", marker)
	case TagJSONString:
		_, err := ReadString(r)
		return err
	case TagJSONObject:
		n, err := ReadLen(r, "skip")
		if err != nil {
			return err
		}
		if err := checkLen(r, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if _, err := ReadString(r); err != nil {
				return err
			}
			if err := Skip(r); err != nil {
				return err
			}
		}
		return nil
	}
	return Decodef("skip", "unknown or unhandled tag %d", tag)
}
