package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, 32)

	hash, err := HashPasswordArgon2("correct horse", salt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$"))

	ok, err := VerifyPassword("correct horse", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong horse", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)

	otherSalt, _ := GenerateSalt()
	ok, err = VerifyPassword("correct horse", hash, otherSalt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsUnknownFormat(t *testing.T) {
	_, err := VerifyPassword("x", "5f4dcc3b5aa765d61d8327deb882cf99", "salt")
	assert.Error(t, err)

	_, err = HashPasswordArgon2("x", "")
	assert.Error(t, err)
}

func TestJWTSecretCopy(t *testing.T) {
	SetJWTSecret("abc")
	b := GetJWTSecretByte()
	b[0] = 'z'
	assert.Equal(t, []byte("abc"), GetJWTSecretByte())
}
