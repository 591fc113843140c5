package logins

import "time"

// Attempt is the record of one identification cycle. It is created unconsumed
// when credentials check out, and flipped to consumed with the issued token
// attached when the one-time code is verified. Attempts are never deleted by
// the security core; retention is the store's concern.
type Attempt struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Code         string    `json:"code"`
	CodeConsumed bool      `json:"code_consumed"`
	Token        string    `json:"token"`
	TokenActive  bool      `json:"token_active"`
	CreatedAt    time.Time `json:"created_at"`
}
