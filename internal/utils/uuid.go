package utils

import "github.com/google/uuid"

// NewID returns a fresh UUIDv7 string, falling back to a random UUIDv4 when
// v7 generation fails. V7 ids sort by creation time, which keeps audit rows
// and seeded fixtures in insertion order.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
