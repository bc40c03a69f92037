package auth

import (
	"testing"

	"github.com/minhanle/classhub/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenManager(secret string, expireHours int) *TokenManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpireHours = expireHours
	return NewTokenManager(cfg)
}

func TestTokenRoundTrip(t *testing.T) {
	m := testTokenManager("test-secret", 24)

	token, err := m.Generate("user-1", "student")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := testTokenManager("secret-a", 24)
	verifier := testTokenManager("secret-b", 24)

	token, err := issuer.Generate("user-1", "student")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := testTokenManager("test-secret", -1)

	token, err := m.Generate("user-1", "student")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := testTokenManager("test-secret", 24)
	_, err := m.Validate("not.a.token")
	assert.Error(t, err)
}
