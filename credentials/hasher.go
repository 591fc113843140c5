package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// secretCharset covers the characters used for generated secrets and
	// one-time codes.
	secretCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	defaultIterations = 210_000
	digestLength      = 32
)

var InvalidLengthErr = errors.New("secret length must be greater than zero")

// Hasher produces deterministic one-way digests of secrets. Digests are
// deterministic per deployment (same pepper, same iteration count) so that
// the user store can look records up by (identifier, digest), while the
// PBKDF2 work factor keeps brute forcing expensive.
type Hasher struct {
	pepper     []byte
	iterations int
}

// HasherOption defines a function type to modify the Hasher instance.
type HasherOption func(*Hasher)

// WithIterations overrides the PBKDF2 iteration count (primarily for testing,
// where the default work factor makes table-driven tests sluggish).
func WithIterations(iterations int) HasherOption {
	return func(h *Hasher) {
		if iterations > 0 {
			h.iterations = iterations
		}
	}
}

// NewHasher creates a Hasher keyed with the given pepper. The pepper is
// injected configuration, not a package constant, so deployments can rotate
// it and tests can run with distinct values.
func NewHasher(pepper string, options ...HasherOption) *Hasher {
	h := &Hasher{
		pepper:     []byte(pepper),
		iterations: defaultIterations,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Hash returns the hex-encoded digest of plaintext. Equal inputs always
// produce equal digests.
func (h *Hasher) Hash(plaintext string) string {
	digest := pbkdf2.Key([]byte(plaintext), h.pepper, h.iterations, digestLength, sha256.New)
	return hex.EncodeToString(digest)
}

// GenerateSecret produces a random alphanumeric string of the requested
// length, suitable for initial account secrets and one-time codes. Each
// character is drawn independently from crypto/rand.
func GenerateSecret(length int) (string, error) {
	if length <= 0 {
		return "", InvalidLengthErr
	}

	max := big.NewInt(int64(len(secretCharset)))
	secret := make([]byte, length)
	for i := range secret {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "[GenerateSecret] rand.Int")
		}
		secret[i] = secretCharset[n.Int64()]
	}
	return string(secret), nil
}
