// Package inspect decodes tagged-mode data without a schema. Every value is
// turned into a Node that records its tag, a rendered scalar and its
// children, which is enough to read a stream by eye or diff two of them.
package inspect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/clockworklabs/tagpack/pkg/tagpack/adapters"
	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

// MaxDepth bounds the nesting the inspector follows, so that hostile input
// cannot exhaust the stack.
const MaxDepth = 256

// ErrTooDeep is returned for values nested deeper than MaxDepth.
var ErrTooDeep = errors.New("inspect: value nested too deeply")

// Kind names the shape of a Node.
type Kind string

const (
	KindUint        Kind = "uint"
	KindInt         Kind = "int"
	KindFloat32     Kind = "float32"
	KindFloat64     Kind = "float64"
	KindString      Kind = "string"
	KindBytes       Kind = "bytes"
	KindNone        Kind = "none"
	KindSome        Kind = "some"
	KindUnitStruct  Kind = "unit-struct"
	KindStruct      Kind = "struct"
	KindTupleStruct Kind = "tuple-struct"
	KindUnitVariant Kind = "unit-variant"
	KindVariant     Kind = "variant"
	KindTupleVar    Kind = "tuple-variant"
	KindSeq         Kind = "seq"
	KindTuple       Kind = "tuple"
	KindMap         Kind = "map"
	KindEntry       Kind = "entry"
	KindDateTime    Kind = "datetime"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindDecimal     Kind = "decimal"
	KindUUID        Kind = "uuid"
	KindJSON        Kind = "json"
	KindJSONArray   Kind = "json-array"
	KindJSONObject  Kind = "json-object"
)

// Node is one decoded value. ID is set on struct fields (the field ID) and on
// enum values (the variant ID). Entries of a map or a JSON object are
// KindEntry nodes holding the key and the value. JSON scalars are KindJSON
// nodes whose Value is the rendered JSON text.
type Node struct {
	Kind     Kind    `json:"kind" yaml:"kind"`
	Tag      byte    `json:"tag" yaml:"tag"`
	ID       uint64  `json:"id,omitempty" yaml:"id,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode reads exactly one value from data.
func Decode(data []byte) (*Node, error) {
	r := codec.NewReader(data)
	n, err := Read(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after the value", codec.ErrTrailingData, r.Remaining())
	}
	return n, nil
}

// DecodeAll reads values until data is exhausted. On error the values read so
// far are returned with it.
func DecodeAll(data []byte) ([]*Node, error) {
	r := codec.NewReader(data)
	var out []*Node
	for r.Remaining() > 0 {
		n, err := Read(r)
		if err != nil {
			return out, fmt.Errorf("value %d at offset %d: %w", len(out), r.BytesRead(), err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Read decodes the next value from r.
func Read(r *codec.Reader) (*Node, error) {
	return read(r, 0)
}

func read(r *codec.Reader, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	tag, err := r.PeekByte()
	if err != nil {
		return nil, err
	}
	n := &Node{Tag: tag}

	switch {
	case codec.IsUnsignedTag(tag):
		v, err := codec.ReadU128(r, "inspect")
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindUint, v.String()
		return n, nil
	case codec.IsShortString(tag) || tag == codec.TagStringLong:
		s, err := codec.ReadString(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindString, strconv.Quote(s)
		return n, nil
	case codec.IsShortSeq(tag) || tag == codec.TagSeqLong:
		count, err := codec.ReadSeqHeader(r, "inspect")
		if err != nil {
			return nil, err
		}
		n.Kind = KindSeq
		return n, readChildren(r, n, count, depth)
	}

	switch tag {
	case codec.TagNegative:
		v, err := codec.ReadI128(r, "inspect")
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindInt, v.String()
	case codec.TagF32:
		v, err := codec.Float32().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindFloat32, strconv.FormatFloat(float64(v), 'g', -1, 32)
	case codec.TagF64:
		v, err := codec.Float64().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindFloat64, strconv.FormatFloat(v, 'g', -1, 64)
	case codec.TagBinary:
		v, err := codec.Bytes().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindBytes, hex.EncodeToString(v)
	case codec.TagNone:
		_, _ = r.ReadByte()
		n.Kind = KindNone
	case codec.TagSome:
		_, _ = r.ReadByte()
		n.Kind = KindSome
		return n, readChildren(r, n, 1, depth)
	case codec.TagStructUnit:
		_, _ = r.ReadByte()
		n.Kind = KindUnitStruct
	case codec.TagStructNamed:
		_, _ = r.ReadByte()
		n.Kind = KindStruct
		return n, readFields(r, n, depth)
	case codec.TagStructTuple, codec.TagTuple:
		_, _ = r.ReadByte()
		count, err := readCount(r, 1)
		if err != nil {
			return nil, err
		}
		n.Kind = KindTupleStruct
		if tag == codec.TagTuple {
			n.Kind = KindTuple
		}
		return n, readChildren(r, n, count, depth)
	case codec.TagEnumUnit, codec.TagEnumNamed, codec.TagEnumTuple:
		_, _ = r.ReadByte()
		id, err := codec.ReadFieldID(r)
		if err != nil {
			return nil, err
		}
		n.ID = id
		switch tag {
		case codec.TagEnumUnit:
			n.Kind = KindUnitVariant
			return n, nil
		case codec.TagEnumNamed:
			n.Kind = KindVariant
			return n, readFields(r, n, depth)
		}
		n.Kind = KindTupleVar
		count, err := readCount(r, 1)
		if err != nil {
			return nil, err
		}
		return n, readChildren(r, n, count, depth)
	case codec.TagMap:
		count, err := codec.ReadMapHeader(r, "inspect")
		if err != nil {
			return nil, err
		}
		n.Kind = KindMap
		for range count {
			e := &Node{Kind: KindEntry, Tag: codec.TagMap}
			if err := readChildren(r, e, 2, depth); err != nil {
				return nil, err
			}
			n.Children = append(n.Children, e)
		}
	case codec.TagDateTime:
		v, err := adapters.DateTime().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindDateTime, v.Format(time.RFC3339Nano)
	case codec.TagDate:
		v, err := adapters.Date().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindDate, v.String()
	case codec.TagTime:
		v, err := adapters.TimeOfDay().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindTime, v.String()
	case codec.TagDecimal:
		v, err := adapters.Decimal().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindDecimal, v.String()
	case codec.TagUUID:
		v, err := adapters.UUID().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindUUID, v.String()
	case codec.TagJSONNull, codec.TagJSONBool, codec.TagJSONNumber, codec.TagJSONString:
		text, err := adapters.RawJSON().Decode(r)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Value = KindJSON, string(text)
	case codec.TagJSONArray:
		_, _ = r.ReadByte()
		count, err := readCount(r, 1)
		if err != nil {
			return nil, err
		}
		n.Kind = KindJSONArray
		return n, readChildren(r, n, count, depth)
	case codec.TagJSONObject:
		_, _ = r.ReadByte()
		count, err := readCount(r, 2)
		if err != nil {
			return nil, err
		}
		n.Kind = KindJSONObject
		for range count {
			e := &Node{Kind: KindEntry, Tag: codec.TagJSONObject}
			if err := readChildren(r, e, 2, depth); err != nil {
				return nil, err
			}
			n.Children = append(n.Children, e)
		}
	default:
		return nil, codec.UnexpectedTag("inspect", tag)
	}
	return n, nil
}

// readCount reads a container length whose elements take at least per bytes
// each.
func readCount(r *codec.Reader, per int) (int, error) {
	count, err := codec.ReadLen(r, "inspect")
	if err != nil {
		return 0, err
	}
	if count > r.Remaining()/per {
		return 0, fmt.Errorf("%w: %d elements, %d bytes left", codec.ErrInsufficientData, count, r.Remaining())
	}
	return count, nil
}

func readChildren(r *codec.Reader, n *Node, count, depth int) error {
	for range count {
		c, err := read(r, depth+1)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, c)
	}
	return nil
}

func readFields(r *codec.Reader, n *Node, depth int) error {
	for {
		id, err := codec.ReadFieldID(r)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}
		c, err := read(r, depth+1)
		if err != nil {
			return err
		}
		c.ID = id
		n.Children = append(n.Children, c)
	}
}

// JSON renders the node tree as indented JSON.
func (n *Node) JSON() ([]byte, error) {
	return gojson.MarshalIndent(n, "", "  ")
}
