package config

import "time"

type StoreConfig interface {
	GetDatabaseDSN() string
	GetLoginCodeTTL() time.Duration
}

type Store struct{}

var _ StoreConfig = Store{}

// GetDatabaseDSN returns the PostgreSQL connection string. Empty selects the
// volatile in-memory stores (development only).
func (Store) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "")
}

// GetLoginCodeTTL bounds how long an unconsumed one-time code stays
// redeemable in the in-memory store.
func (Store) GetLoginCodeTTL() time.Duration {
	raw := GetEnv("LOGIN_CODE_TTL", "10m")
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 10 * time.Minute
	}
	return ttl
}
