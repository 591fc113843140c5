package credentials

// Credentials carries a presented identifier/secret pair during
// identification. It is transient: the secret is hashed immediately and the
// struct is never persisted.
type Credentials struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}
