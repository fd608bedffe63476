package randsim

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Swappable in tests.
var cryptoReader func(p []byte) (int, error) = rand.Read

// GetSeed returns a seed for a pseudo-random generator.
//
// It tries to use crypto/rand to read an int64,
// and mixes in the current time so that a partial or failed read still
// produces distinct seeds across calls.
func GetSeed() int64 {
	buf := make([]byte, 8)
	n, _ := cryptoReader(buf)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	seed := int64(binary.BigEndian.Uint64(buf))
	if n < len(buf) {
		seed ^= time.Now().UnixNano()
	}
	return seed
}
