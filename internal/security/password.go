package security

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a fixed cost factor. bcrypt generates a fresh
// random salt per hash and embeds it in the output.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. If cost is outside bcrypt's valid range,
// bcrypt.DefaultCost is used.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted one-way hash of the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check reports whether the plaintext matches the stored hash.
func (h *Hasher) Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
