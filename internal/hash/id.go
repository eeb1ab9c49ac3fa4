package hash

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint accumulates an xxHash64 digest over typed values.
//
// Every value is written in a fixed-width little-endian form and strings are
// length-prefixed, so ("ab", "c") and ("a", "bc") hash differently.
type Fingerprint struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Uint64 adds v to the digest.
func (f *Fingerprint) Uint64(v uint64) *Fingerprint {
	binary.LittleEndian.PutUint64(f.buf[:], v)
	_, _ = f.d.Write(f.buf[:])

	return f
}

// Int adds v to the digest.
func (f *Fingerprint) Int(v int) *Fingerprint {
	return f.Uint64(uint64(int64(v)))
}

// Float64 adds the IEEE-754 bits of v to the digest.
func (f *Fingerprint) Float64(v float64) *Fingerprint {
	return f.Uint64(math.Float64bits(v))
}

// Time adds the UTC Unix nanoseconds of t to the digest.
func (f *Fingerprint) Time(t time.Time) *Fingerprint {
	return f.Uint64(uint64(t.UnixNano()))
}

// Text adds the length and bytes of s to the digest.
func (f *Fingerprint) Text(s string) *Fingerprint {
	f.Int(len(s))
	_, _ = f.d.WriteString(s)

	return f
}

// Sum64 returns the current digest value.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}
