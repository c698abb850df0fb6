package adapters

import (
	"bytes"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

type jsonCodec struct{}

// JSON returns the codec for a decoded JSON document: nil, bool, string,
// float64, gojson.Number, any Go integer, []any and map[string]any. Object
// keys are written in sorted order.
//
// Integers decode as gojson.Number so that values beyond float64 precision
// survive; floats decode as float64.
func JSON() codec.Codec[any] { return jsonCodec{} }

func (c jsonCodec) Encode(w *codec.Writer, v any) error {
	switch v := v.(type) {
	case nil:
		return w.WriteByte(codec.TagJSONNull)
	case bool:
		_ = w.WriteByte(codec.TagJSONBool)
		return codec.Bool().Encode(w, v)
	case string:
		_ = w.WriteByte(codec.TagJSONString)
		codec.WriteString(w, v)
		return nil
	case gojson.Number:
		return writeNumber(w, v)
	case float64:
		writeFloat(w, v)
		return nil
	case float32:
		writeFloat(w, float64(v))
		return nil
	case int:
		writeSigned(w, int64(v))
		return nil
	case int8:
		writeSigned(w, int64(v))
		return nil
	case int16:
		writeSigned(w, int64(v))
		return nil
	case int32:
		writeSigned(w, int64(v))
		return nil
	case int64:
		writeSigned(w, v)
		return nil
	case uint:
		writeUnsigned(w, uint64(v))
		return nil
	case uint8:
		writeUnsigned(w, uint64(v))
		return nil
	case uint16:
		writeUnsigned(w, uint64(v))
		return nil
	case uint32:
		writeUnsigned(w, uint64(v))
		return nil
	case uint64:
		writeUnsigned(w, v)
		return nil
	case []any:
		_ = w.WriteByte(codec.TagJSONArray)
		codec.WriteLen(w, len(v))
		for _, e := range v {
			if err := c.Encode(w, e); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		_ = w.WriteByte(codec.TagJSONObject)
		codec.WriteLen(w, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			codec.WriteString(w, k)
			if err := c.Encode(w, v[k]); err != nil {
				return err
			}
		}
		return nil
	}
	return codec.Encodef("json", "unsupported value of type %T", v)
}

func writeUnsigned(w *codec.Writer, v uint64) {
	_ = w.WriteByte(codec.TagJSONNumber)
	_ = w.WriteByte(codec.JSONNumberUint)
	codec.WriteUint(w, v)
}

// writeSigned prefers the unsigned marker for non-negative values.
func writeSigned(w *codec.Writer, v int64) {
	if v >= 0 {
		writeUnsigned(w, uint64(v))
		return
	}
	_ = w.WriteByte(codec.TagJSONNumber)
	_ = w.WriteByte(codec.JSONNumberInt)
	codec.WriteInt(w, v)
}

func writeFloat(w *codec.Writer, v float64) {
	_ = w.WriteByte(codec.TagJSONNumber)
	_ = w.WriteByte(codec.JSONNumberFloat)
	_ = codec.Float64().Encode(w, v)
}

func writeNumber(w *codec.Writer, n gojson.Number) error {
	s := n.String()
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		writeUnsigned(w, u)
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		writeSigned(w, i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return codec.Encodef("json", "invalid number %q", s)
	}
	writeFloat(w, f)
	return nil
}

func (c jsonCodec) Decode(r *codec.Reader) (any, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case codec.TagJSONNull:
		return nil, nil
	case codec.TagJSONBool:
		return codec.Bool().Decode(r)
	case codec.TagJSONNumber:
		return readNumber(r)
	case codec.TagJSONString:
		return codec.ReadString(r)
	case codec.TagJSONArray:
		n, err := codec.ReadLen(r, "json array")
		if err != nil {
			return nil, err
		}
		if n > r.Remaining() {
			return nil, codec.ErrInsufficientData
		}
		arr := make([]any, n)
		for i := range arr {
			if arr[i], err = c.Decode(r); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case codec.TagJSONObject:
		n, err := codec.ReadLen(r, "json object")
		if err != nil {
			return nil, err
		}
		if n > r.Remaining()/2 {
			return nil, codec.ErrInsufficientData
		}
		obj := make(map[string]any, n)
		for range n {
			k, err := codec.ReadString(r)
			if err != nil {
				return nil, err
			}
			if obj[k], err = c.Decode(r); err != nil {
				return nil, err
			}
		}
		return obj, nil
	}
	return nil, codec.Decodef("json", "expected a JSON value tag (%d-%d), got %d", codec.TagJSONNull, codec.TagJSONObject, tag)
}

func readNumber(r *codec.Reader) (any, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch marker {
	case codec.JSONNumberUint:
		u, err := codec.ReadUint(r, math.MaxUint64, "json number")
		if err != nil {
			return nil, err
		}
		return gojson.Number(strconv.FormatUint(u, 10)), nil
	case codec.JSONNumberInt:
		i, err := codec.ReadInt(r, 64, "json number")
		if err != nil {
			return nil, err
		}
		return gojson.Number(strconv.FormatInt(i, 10)), nil
	case codec.JSONNumberFloat:
		return codec.Float64().Decode(r)
	}
	return nil, codec.Decodef("json", "invalid number type marker %d", marker)
}

func (c jsonCodec) Pack(w *codec.Writer, v any) error   { return c.Encode(w, v) }
func (c jsonCodec) Unpack(r *codec.Reader) (any, error) { return c.Decode(r) }
func (jsonCodec) IsDefault(v any) bool                  { return v == nil }
func (jsonCodec) TypeName() string                      { return "json" }

type rawJSONCodec struct{}

// RawJSON returns a codec for JSON text. The text is parsed on encode and
// re-rendered compactly on decode, so whitespace and key order are not
// preserved. An empty document is written as JSON null.
func RawJSON() codec.Codec[[]byte] { return rawJSONCodec{} }

func parseJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &codec.EncodeError{Type: "json", Reason: "invalid JSON text", Err: err}
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("more than one JSON value")
		}
		return nil, &codec.EncodeError{Type: "json", Reason: "invalid JSON text", Err: err}
	}
	return v, nil
}

func (rawJSONCodec) Encode(w *codec.Writer, data []byte) error {
	v, err := parseJSON(data)
	if err != nil {
		return err
	}
	return jsonCodec{}.Encode(w, v)
}

func (rawJSONCodec) Decode(r *codec.Reader) ([]byte, error) {
	v, err := jsonCodec{}.Decode(r)
	if err != nil {
		return nil, err
	}
	out, err := gojson.Marshal(v)
	if err != nil {
		return nil, &codec.DecodeError{Type: "json", Reason: "cannot render JSON text", Err: err}
	}
	return out, nil
}

func (c rawJSONCodec) Pack(w *codec.Writer, data []byte) error { return c.Encode(w, data) }
func (c rawJSONCodec) Unpack(r *codec.Reader) ([]byte, error)  { return c.Decode(r) }

func (rawJSONCodec) IsDefault(data []byte) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || string(t) == "null"
}

func (rawJSONCodec) TypeName() string { return "json" }
