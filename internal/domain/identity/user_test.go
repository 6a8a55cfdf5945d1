package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Maria Silva", "Maria@Example.com", "secret123", RoleUser)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Maria Silva", user.Name)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("defaults to user role", func(t *testing.T) {
		user, err := NewUser("Joao Souza", "joao@example.com", "secret123", "")
		require.NoError(t, err)
		assert.Equal(t, RoleUser, user.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("Joao Souza", "joao@example.com", "secret123", "superuser")
		assert.Error(t, err)
	})

	t.Run("rejects single-word name", func(t *testing.T) {
		_, err := NewUser("Maria", "maria@example.com", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects short name part", func(t *testing.T) {
		_, err := NewUser("Ma Silva", "maria@example.com", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects digits in name", func(t *testing.T) {
		_, err := NewUser("Maria S1lva", "maria@example.com", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("Maria Silva", "not-an-email", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("Maria Silva", "maria@example.com", "short", RoleUser)
		assert.Error(t, err)
	})
}

func TestActorCanAccess(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	t.Run("admin accesses any resource", func(t *testing.T) {
		admin := Actor{ID: otherID, Role: RoleAdmin}
		assert.True(t, admin.CanAccess(ownerID))
	})

	t.Run("user accesses own resource", func(t *testing.T) {
		user := Actor{ID: ownerID, Role: RoleUser}
		assert.True(t, user.CanAccess(ownerID))
	})

	t.Run("user denied on foreign resource", func(t *testing.T) {
		user := Actor{ID: otherID, Role: RoleUser}
		assert.False(t, user.CanAccess(ownerID))
	})
}
