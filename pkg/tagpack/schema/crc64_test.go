package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint64(0x6C40DF5F0B497347), Checksum([]byte("123456789")))
	assert.Equal(t, uint64(0), Checksum(nil))
	assert.NotEqual(t, Checksum([]byte("ab")), Checksum([]byte("ba")))
}

func TestDeriveID(t *testing.T) {
	assert.Equal(t, Checksum([]byte("name")), DeriveID("name"))
	assert.Equal(t, DeriveID("name"), DeriveID("name"))
	assert.NotEqual(t, DeriveID("name"), DeriveID("Name"))

	// The empty name hashes to zero, which is reserved for the terminator.
	assert.Equal(t, uint64(math.MaxUint64), DeriveID(""))
}
