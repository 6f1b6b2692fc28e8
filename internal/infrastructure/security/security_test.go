package security

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := m.Generate("user-1", "ADMIN")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)

	claims, err = m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenManager_RejectsSwappedTokens(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")
	access, refresh, err := m.Generate("user-1", "STUDENT")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongKind(t *testing.T) {
	// Both secrets equal, so only the type claim tells the tokens apart.
	m := NewTokenManager("same", "same")
	_, refresh, err := m.Generate("user-1", "STUDENT")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSigningMethod(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1", "type": "access"})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(s)
	assert.Error(t, err)
}
