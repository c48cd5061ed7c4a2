// Package password defines the hashing capability used by the auth service.
// Keeping it behind an interface makes the hashing contract explicit and
// testable independently of storage.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher hashes plaintext passwords and verifies candidates against
// stored hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash string, candidate string) bool
}

// BcryptHasher implements Hasher with bcrypt at the default cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(hash string, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
