package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestInitials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		displayName *string
		email       string
		want        string
	}{
		{"full name", ptr("Asha Rao"), "asha@example.com", "AR"},
		{"three words", ptr("mary jane watson"), "mj@example.com", "MJW"},
		{"extra spaces", ptr("  Ravi   Kumar "), "r@example.com", "RK"},
		{"blank name falls back to email", ptr("   "), "zed@example.com", "Z"},
		{"no name", nil, "bob@example.com", "B"},
		{"nothing", nil, "", "U"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Initials(tc.displayName, tc.email))
		})
	}
}

func TestIdentity_Password(t *testing.T) {
	t.Parallel()

	i := New("  Owner@Example.COM ")
	require.Equal(t, "owner@example.com", i.Email())
	require.False(t, i.CheckPassword("anything"))

	withPassword, err := i.SetPassword("secret1")
	require.NoError(t, err)
	require.True(t, withPassword.CheckPassword("secret1"))
	require.False(t, withPassword.CheckPassword("secret2"))
	require.Equal(t, i.ID(), withPassword.ID())
	require.Empty(t, i.PasswordHash())
}
