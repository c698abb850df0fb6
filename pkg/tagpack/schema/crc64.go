package schema

import (
	"hash/crc64"
	"math"
	"math/bits"
)

var ecmaTable = crc64.MakeTable(crc64.ECMA)

// Checksum returns the CRC-64/ECMA-182 of data: polynomial 0x42F0E1EBA9EA3693,
// MSB-first, zero initial value and no final xor.
//
// hash/crc64 only implements the reflected form of the same polynomial, so
// the input bytes and the result are bit-reversed around it.
func Checksum(data []byte) uint64 {
	rev := make([]byte, len(data))
	for i, b := range data {
		rev[i] = bits.Reverse8(b)
	}
	return bits.Reverse64(^crc64.Update(^uint64(0), ecmaTable, rev))
}

// DeriveID maps a field or variant name to its wire ID. A checksum of zero is
// remapped to MaxUint64 because zero terminates named field lists.
func DeriveID(name string) uint64 {
	id := Checksum([]byte(name))
	if id == 0 {
		return math.MaxUint64
	}
	return id
}
