// Package adapters plugs third-party value types into the tag space: dates
// and times, decimals, UUIDs and JSON documents. Each adapter is an ordinary
// codec.Codec and can be used anywhere a primitive codec can.
package adapters

import (
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
)

const secondsPerDay = 24 * 60 * 60

var epoch = civil.Date{Year: 1970, Month: time.January, Day: 1}

// expectTag consumes one byte and fails unless it is want.
func expectTag(r *codec.Reader, want byte, typ string) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	if tag != want {
		return codec.UnexpectedTag(typ, tag)
	}
	return nil
}

type dateTimeCodec struct{}

// DateTime returns the codec for time.Time: TagDateTime, the Unix seconds as
// a signed integer and the nanoseconds as an unsigned one. Decoded values
// are in UTC. The packed form of the zero time is TagNone.
func DateTime() codec.Codec[time.Time] { return dateTimeCodec{} }

func (dateTimeCodec) Encode(w *codec.Writer, t time.Time) error {
	_ = w.WriteByte(codec.TagDateTime)
	codec.WriteInt(w, t.Unix())
	codec.WriteUint(w, uint64(t.Nanosecond()))
	return nil
}

func (dateTimeCodec) Decode(r *codec.Reader) (time.Time, error) {
	if err := expectTag(r, codec.TagDateTime, "datetime"); err != nil {
		return time.Time{}, err
	}
	return readDateTime(r)
}

func readDateTime(r *codec.Reader) (time.Time, error) {
	sec, err := codec.ReadInt(r, 64, "datetime seconds")
	if err != nil {
		return time.Time{}, err
	}
	nsec, err := codec.ReadUint(r, math.MaxUint32, "datetime nanoseconds")
	if err != nil {
		return time.Time{}, err
	}
	if nsec >= uint64(time.Second) {
		return time.Time{}, codec.Decodef("datetime", "invalid timestamp: %d seconds, %d nanos", sec, nsec)
	}
	return time.Unix(sec, int64(nsec)).UTC(), nil
}

func (c dateTimeCodec) Pack(w *codec.Writer, t time.Time) error {
	if t.IsZero() {
		return w.WriteByte(codec.TagNone)
	}
	return c.Encode(w, t)
}

func (dateTimeCodec) Unpack(r *codec.Reader) (time.Time, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return time.Time{}, err
	}
	switch tag {
	case codec.TagNone:
		return time.Time{}, nil
	case codec.TagDateTime:
		return readDateTime(r)
	}
	return time.Time{}, codec.UnexpectedTag("datetime", tag)
}

func (dateTimeCodec) IsDefault(t time.Time) bool { return t.IsZero() }
func (dateTimeCodec) TypeName() string           { return "datetime" }

type dateCodec struct{}

// Date returns the codec for civil.Date: TagDate and the signed number of
// days since 1970-01-01. The zero civil.Date, which names no calendar day, is
// written as TagNone.
func Date() codec.Codec[civil.Date] { return dateCodec{} }

func (dateCodec) Encode(w *codec.Writer, d civil.Date) error {
	if d == (civil.Date{}) {
		return w.WriteByte(codec.TagNone)
	}
	if !d.IsValid() {
		return codec.Encodef("date", "invalid date %s", d)
	}
	_ = w.WriteByte(codec.TagDate)
	codec.WriteInt(w, int64(d.DaysSince(epoch)))
	return nil
}

func (dateCodec) Decode(r *codec.Reader) (civil.Date, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return civil.Date{}, err
	}
	switch tag {
	case codec.TagNone:
		return civil.Date{}, nil
	case codec.TagDate:
		days, err := codec.ReadInt(r, 64, "date")
		if err != nil {
			return civil.Date{}, err
		}
		return epoch.AddDays(int(days)), nil
	}
	return civil.Date{}, codec.UnexpectedTag("date", tag)
}

func (c dateCodec) Pack(w *codec.Writer, d civil.Date) error   { return c.Encode(w, d) }
func (c dateCodec) Unpack(r *codec.Reader) (civil.Date, error) { return c.Decode(r) }
func (dateCodec) IsDefault(d civil.Date) bool                  { return d == civil.Date{} }
func (dateCodec) TypeName() string                             { return "date" }

type timeOfDayCodec struct{}

// TimeOfDay returns the codec for civil.Time: TagTime, the seconds since
// midnight and the nanoseconds, both unsigned.
func TimeOfDay() codec.Codec[civil.Time] { return timeOfDayCodec{} }

func (timeOfDayCodec) Encode(w *codec.Writer, t civil.Time) error {
	if !t.IsValid() {
		return codec.Encodef("time", "invalid time of day %s", t)
	}
	_ = w.WriteByte(codec.TagTime)
	codec.WriteUint(w, uint64(t.Hour*3600+t.Minute*60+t.Second))
	codec.WriteUint(w, uint64(t.Nanosecond))
	return nil
}

func (timeOfDayCodec) Decode(r *codec.Reader) (civil.Time, error) {
	if err := expectTag(r, codec.TagTime, "time"); err != nil {
		return civil.Time{}, err
	}
	secs, err := codec.ReadUint(r, math.MaxUint32, "time seconds")
	if err != nil {
		return civil.Time{}, err
	}
	nsec, err := codec.ReadUint(r, math.MaxUint32, "time nanoseconds")
	if err != nil {
		return civil.Time{}, err
	}
	if secs >= secondsPerDay || nsec >= uint64(time.Second) {
		return civil.Time{}, codec.Decodef("time", "invalid seconds from midnight: %d, nanoseconds: %d", secs, nsec)
	}
	return civil.Time{
		Hour:       int(secs / 3600),
		Minute:     int(secs % 3600 / 60),
		Second:     int(secs % 60),
		Nanosecond: int(nsec),
	}, nil
}

func (c timeOfDayCodec) Pack(w *codec.Writer, t civil.Time) error   { return c.Encode(w, t) }
func (c timeOfDayCodec) Unpack(r *codec.Reader) (civil.Time, error) { return c.Decode(r) }
func (timeOfDayCodec) IsDefault(t civil.Time) bool                  { return t == civil.Time{} }
func (timeOfDayCodec) TypeName() string                             { return "time" }
