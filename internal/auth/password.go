package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor used for all stored hashes.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with the given cost. Costs
// outside bcrypt's supported range fall back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
