package users_test

import (
	"testing"

	"github.com/jrsteele09/go-access-server/users"
	"github.com/stretchr/testify/require"
)

func TestDisplayNameSkipsEmptyFields(t *testing.T) {
	tests := []struct {
		name     string
		user     users.User
		expected string
	}{
		{
			name:     "all four names",
			user:     users.User{FirstName: "Ana", MiddleName: "Maria", LastName: "Lopez", SecondLastName: "Diaz"},
			expected: "Ana Maria Lopez Diaz",
		},
		{
			name:     "no middle names",
			user:     users.User{FirstName: "John", LastName: "Steele"},
			expected: "John Steele",
		},
		{
			name:     "empty user",
			user:     users.User{},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.user.DisplayName())
		})
	}
}

func TestSanitizedClearsSecretHashOnly(t *testing.T) {
	u := &users.User{ID: "user-1", Email: "john@example.com", RoleID: "role-1", SecretHash: "digest"}

	s := u.Sanitized()
	require.Empty(t, s.SecretHash)
	require.Equal(t, "user-1", s.ID)
	require.Equal(t, "role-1", s.RoleID)

	// Original is untouched
	require.Equal(t, "digest", u.SecretHash)
}
