// SPDX-License-Identifier: Apache-2.0

// Package crypto implements credential hashing for the auth server.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is a one-way hash + verify pair for stored credentials.
type PasswordHasher interface {
	// Hash returns a one-way transform of plaintext with a per-call random
	// salt embedded in the output. The result is never reversible.
	Hash(plaintext string) (string, error)

	// Verify recomputes and compares. It returns false on mismatch and never
	// propagates an error for a wrong password.
	Verify(plaintext, hash string) bool
}

// bcryptHasher is the bcrypt-backed implementation of [PasswordHasher].
// The cost factor is tunable per deployment; bcrypt embeds both the cost and
// the salt in the produced hash, so Verify needs no extra parameters.
type bcryptHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt cost.
// A cost outside the valid bcrypt range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (b *bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
