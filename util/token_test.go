package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	SetJWTSecret("token-test-secret")

	tok, exp, err := CreateToken(42, 3, "trainer", "t@gym.test", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint32(3), claims.RoleID)
	assert.Equal(t, "trainer", claims.Role)
	assert.NotEmpty(t, claims.ID)

	again, _, err := CreateToken(42, 3, "trainer", "t@gym.test", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, tok, again)
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	SetJWTSecret("token-test-secret")

	expired, _, err := CreateToken(1, 2, "member", "m@gym.test", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	SetJWTSecret("other-secret")
	forged, _, _ := CreateToken(1, 1, "admin", "a@gym.test", time.Hour)
	SetJWTSecret("token-test-secret")
	_, err = ParseToken(forged)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{UserID: 1})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = ParseToken(unsigned)
	assert.Error(t, err)

	_, err = ParseToken("garbage")
	assert.Error(t, err)
}
