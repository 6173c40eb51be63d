package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	accountID := uuid.New()

	token, err := CreateToken(accountID, "merchant")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), claims.UserID)
	assert.Equal(t, "merchant", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswords(hash, "correct horse battery staple"))
	assert.Error(t, ComparePasswords(hash, "wrong password"))
}
