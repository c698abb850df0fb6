package adapters

import (
	"github.com/google/uuid"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

type uuidCodec struct{}

// UUID returns the codec for uuid.UUID: TagUUID and the 128-bit value in
// little-endian order, which is the canonical byte order reversed. The
// packed form of uuid.Nil is TagNone.
func UUID() codec.Codec[uuid.UUID] { return uuidCodec{} }

func (uuidCodec) Encode(w *codec.Writer, id uuid.UUID) error {
	_ = w.WriteByte(codec.TagUUID)
	writeUUID(w, id)
	return nil
}

func writeUUID(w *codec.Writer, id uuid.UUID) {
	var le [16]byte
	for i, b := range id {
		le[15-i] = b
	}
	_, _ = w.Write(le[:])
}

func readUUID(r *codec.Reader) (uuid.UUID, error) {
	le, err := r.Next(16)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	for i, b := range le {
		id[15-i] = b
	}
	return id, nil
}

func (uuidCodec) Decode(r *codec.Reader) (uuid.UUID, error) {
	if err := expectTag(r, codec.TagUUID, "uuid"); err != nil {
		return uuid.Nil, err
	}
	return readUUID(r)
}

func (c uuidCodec) Pack(w *codec.Writer, id uuid.UUID) error {
	if id == uuid.Nil {
		return w.WriteByte(codec.TagNone)
	}
	return c.Encode(w, id)
}

func (uuidCodec) Unpack(r *codec.Reader) (uuid.UUID, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return uuid.Nil, err
	}
	switch tag {
	case codec.TagNone:
		return uuid.Nil, nil
	case codec.TagUUID:
		return readUUID(r)
	}
	return uuid.Nil, codec.UnexpectedTag("uuid", tag)
}

func (uuidCodec) IsDefault(id uuid.UUID) bool { return id == uuid.Nil }
func (uuidCodec) TypeName() string            { return "uuid" }
