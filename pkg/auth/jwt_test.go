package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacantina/backend/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000aaaa", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.UserID)
	assert.Equal(t, "admin", claims.Rol)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("test1234")
	require.NoError(t, err)
	assert.NotEqual(t, "test1234", hash)

	assert.True(t, auth.CheckPassword(hash, "test1234"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
