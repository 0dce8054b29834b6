// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest plaintext bcrypt accepts without truncation.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by [PasswordHasher.Hash] for inputs bcrypt would truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// PasswordHasher hashes and verifies secrets using bcrypt.
//
// Every hash embeds its own random salt and cost factor, so two hashes of the
// same plaintext differ and both verify. The zero value is not usable; build
// one with [NewPasswordHasher].
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost.
// Out-of-range costs fall back to [bcrypt.DefaultCost].
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost reports the work factor new hashes are produced with.
func (hasher *PasswordHasher) Cost() int {
	return hasher.cost
}

// Hash produces a salted bcrypt hash of plaintext.
func (hasher *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare reports whether plaintext matches hashed.
//
// Malformed or empty hashes yield false, never an error.
func (hasher *PasswordHasher) Compare(plaintext, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
