package users

import "strings"

// User is the account record this service authenticates. The persistence
// layer owns the full record; the security core reads RoleID and SecretHash
// and writes SecretHash when creating or resetting an account.
type User struct {
	ID             string `json:"id,omitempty"`               // Unique identifier for the user
	RoleID         string `json:"role_id,omitempty"`          // Role driving the permission lookup
	Email          string `json:"email,omitempty"`            // User's email address, the login identifier
	SecretHash     string `json:"-"`                          // Digest of the user's secret - never serialize
	FirstName      string `json:"first_name,omitempty"`       // First given name
	MiddleName     string `json:"middle_name,omitempty"`      // Second given name, optional
	LastName       string `json:"last_name,omitempty"`        // First surname
	SecondLastName string `json:"second_last_name,omitempty"` // Second surname, optional
	Phone          string `json:"phone,omitempty"`            // Contact number for SMS delivery
}

// DisplayName joins the non-empty name fields for token claims and
// notification templates.
func (u *User) DisplayName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName, u.SecondLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Sanitized returns a copy of the user with the secret digest cleared,
// suitable for returning to callers.
func (u *User) Sanitized() *User {
	sanitized := *u
	sanitized.SecretHash = ""
	return &sanitized
}
