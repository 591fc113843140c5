package config

import "time"

type SecurityConfig interface {
	GetJWTSecret() string
	GetJWTPrivateKeyFile() string
	GetHashPepper() string
	GetTokenExpiry() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetJWTSecret returns the process-wide token signing key. The empty default
// is rejected at startup; there is deliberately no baked-in fallback secret.
func (Security) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// GetJWTPrivateKeyFile returns the path of a PEM-encoded signing key.
// When set, tokens are signed asymmetrically instead of with JWT_SECRET.
func (Security) GetJWTPrivateKeyFile() string {
	return GetEnv("JWT_PRIVATE_KEY_FILE", "")
}

// GetHashPepper returns the pepper mixed into secret digests.
func (Security) GetHashPepper() string {
	return GetEnv("HASH_PEPPER", "")
}

// GetTokenExpiry returns the lifetime attached to minted tokens.
// Zero disables the expiry claim.
func (Security) GetTokenExpiry() time.Duration {
	raw := GetEnv("TOKEN_EXPIRY", "24h")
	expiry, err := time.ParseDuration(raw)
	if err != nil {
		return 24 * time.Hour
	}
	return expiry
}
