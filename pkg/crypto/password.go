package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost matches the salt rounds the stored hashes were generated with.
const hashCost = 10

// HashPassword hashes plaintext using bcrypt.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), hashCost)
}

// ComparePassword compares plaintext to hashed secret. The comparison is
// constant time via bcrypt itself.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
