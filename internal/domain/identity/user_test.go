package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvisionedUser(t *testing.T) {
	t.Run("keeps supplied names", func(t *testing.T) {
		user, err := NewProvisionedUser("jane.doe@acme.example.com", "Jane", "Doe")
		require.NoError(t, err)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Doe", user.LastName)
	})

	t.Run("derives name from email local part", func(t *testing.T) {
		user, err := NewProvisionedUser("Jane.Doe@Acme.Example.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@acme.example.com", user.Email)
		assert.Equal(t, "jane.doe", user.FirstName)
		assert.Equal(t, "", user.LastName)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewProvisionedUser("not-an-email", "", "")
		assert.Error(t, err)
	})
}

func TestUser_Password(t *testing.T) {
	user, err := NewUser("jane@acme.example.com", "correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("correct-horse-battery"))
	assert.False(t, user.VerifyPassword("wrong"))

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("jane@acme.example.com", "short")
		assert.Error(t, err)
	})
}

func TestUser_DisplayName(t *testing.T) {
	user, err := NewProvisionedUser("jane@acme.example.com", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.DisplayName())

	user.FirstName = ""
	user.LastName = ""
	assert.Equal(t, "jane@acme.example.com", user.DisplayName())
}
