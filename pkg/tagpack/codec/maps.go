package codec

import (
	"cmp"
	"maps"
	"slices"
)

// WriteMapHeader writes TagMap and the entry count.
func WriteMapHeader(w *Writer, n int) {
	_ = w.WriteByte(TagMap)
	WriteLen(w, n)
}

// ReadMapHeader reads TagMap and the entry count.
func ReadMapHeader(r *Reader, typ string) (int, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if tag != TagMap {
		return 0, UnexpectedTag(typ, tag)
	}
	n, err := ReadLen(r, typ)
	if err != nil {
		return 0, err
	}
	// every entry is at least a key byte and a value byte
	if n > r.Remaining()/2 {
		return 0, checkLen(r, r.Remaining()+1)
	}
	return n, nil
}

// Entry is one key/value pair of an ordered map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

type entriesCodec[K, V any] struct {
	key   Codec[K]
	value Codec[V]
}

// Pairs returns a map codec over a slice of entries, preserving their order
// on both encode and decode. Duplicate keys are kept as written.
func Pairs[K, V any](key Codec[K], value Codec[V]) Codec[[]Entry[K, V]] {
	return entriesCodec[K, V]{key: key, value: value}
}

func (c entriesCodec[K, V]) Encode(w *Writer, v []Entry[K, V]) error {
	WriteMapHeader(w, len(v))
	for _, e := range v {
		if err := c.key.Encode(w, e.Key); err != nil {
			return err
		}
		if err := c.value.Encode(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (c entriesCodec[K, V]) Decode(r *Reader) ([]Entry[K, V], error) {
	return c.read(r, c.key.Decode, c.value.Decode)
}

func (c entriesCodec[K, V]) Pack(w *Writer, v []Entry[K, V]) error {
	WriteMapHeader(w, len(v))
	for _, e := range v {
		if err := c.key.Pack(w, e.Key); err != nil {
			return err
		}
		if err := c.value.Pack(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (c entriesCodec[K, V]) Unpack(r *Reader) ([]Entry[K, V], error) {
	return c.read(r, c.key.Unpack, c.value.Unpack)
}

func (c entriesCodec[K, V]) read(r *Reader, key func(*Reader) (K, error), value func(*Reader) (V, error)) ([]Entry[K, V], error) {
	n, err := ReadMapHeader(r, c.TypeName())
	if err != nil {
		return nil, err
	}
	out := make([]Entry[K, V], n)
	for i := range out {
		if out[i].Key, err = key(r); err != nil {
			return nil, err
		}
		if out[i].Value, err = value(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c entriesCodec[K, V]) IsDefault(v []Entry[K, V]) bool { return len(v) == 0 }

func (c entriesCodec[K, V]) TypeName() string {
	return "map[" + c.key.TypeName() + "]" + c.value.TypeName()
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
	// order, when set, fixes the encoding order of keys.
	order func(map[K]V) []K
}

// Map returns the codec for map[K]V. Entries are written in map iteration
// order, so the output is not deterministic; use SortedMap or Pairs when
// byte-stable output matters.
func Map[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value}
}

// SortedMap is Map with entries written in ascending key order.
func SortedMap[K cmp.Ordered, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value, order: func(m map[K]V) []K {
		return slices.Sorted(maps.Keys(m))
	}}
}

func (c mapCodec[K, V]) each(m map[K]V, fn func(K, V) error) error {
	if c.order == nil {
		for k, v := range m {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	}
	for _, k := range c.order(m) {
		if err := fn(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

func (c mapCodec[K, V]) Encode(w *Writer, m map[K]V) error {
	WriteMapHeader(w, len(m))
	return c.each(m, func(k K, v V) error {
		if err := c.key.Encode(w, k); err != nil {
			return err
		}
		return c.value.Encode(w, v)
	})
}

func (c mapCodec[K, V]) Decode(r *Reader) (map[K]V, error) {
	return c.read(r, c.key.Decode, c.value.Decode)
}

func (c mapCodec[K, V]) Pack(w *Writer, m map[K]V) error {
	WriteMapHeader(w, len(m))
	return c.each(m, func(k K, v V) error {
		if err := c.key.Pack(w, k); err != nil {
			return err
		}
		return c.value.Pack(w, v)
	})
}

func (c mapCodec[K, V]) Unpack(r *Reader) (map[K]V, error) {
	return c.read(r, c.key.Unpack, c.value.Unpack)
}

func (c mapCodec[K, V]) read(r *Reader, key func(*Reader) (K, error), value func(*Reader) (V, error)) (map[K]V, error) {
	n, err := ReadMapHeader(r, c.TypeName())
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		k, err := key(r)
		if err != nil {
			return nil, err
		}
		v, err := value(r)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (c mapCodec[K, V]) IsDefault(m map[K]V) bool { return len(m) == 0 }

func (c mapCodec[K, V]) TypeName() string {
	return "map[" + c.key.TypeName() + "]" + c.value.TypeName()
}
