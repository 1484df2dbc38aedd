package impl

import (
	"time"

	"github.com/google/uuid"
)

// crockfordAlphabet is Crockford's base32 alphabet (no I, L, O, U).
const crockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// maxOrderNumberAttempts bounds regeneration after a unique index conflict.
const maxOrderNumberAttempts = 3

// OrderNumberGenerator returns a candidate order number for the given instant.
type OrderNumberGenerator func(now time.Time) string

// NewOrderNumber formats ORD-YYYYMMDD-XXXXXXXX from the UTC date and 40 random bits.
func NewOrderNumber(now time.Time) string {
	// The first five bytes of a v4 uuid are fully random.
	random := uuid.New()

	var bits uint64
	for _, b := range random[:5] {
		bits = bits<<8 | uint64(b)
	}

	var suffix [8]byte
	for i := len(suffix) - 1; i >= 0; i-- {
		suffix[i] = crockfordAlphabet[bits&0x1f]
		bits >>= 5
	}

	return "ORD-" + now.UTC().Format("20060102") + "-" + string(suffix[:])
}
