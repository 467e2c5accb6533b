package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used by HashPassword. Tests lower it to bcrypt.MinCost.
var BcryptCost = bcrypt.DefaultCost

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// WarmDummyHash computes the hash CompareDummyPassword checks against. Call it at start-up,
// after BcryptCost is final, so no login request pays for generating it.
func WarmDummyHash() {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("planify:no-such-user"), BcryptCost)
	})
}

// HashPassword hashes the plain text password using bcrypt (salt included in the hash)
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CompareDummyPassword burns the same bcrypt work as a real comparison and always reports false.
// Used when the account does not exist so both failure paths cost the same.
func CompareDummyPassword(plain string) bool {
	WarmDummyHash()
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return false
}
