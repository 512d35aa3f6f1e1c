package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltBytes           = 16

	argonPrefix = "argon2id$"
)

var (
	jwtSecretByte = []byte(os.Getenv("JWTSECRET"))
	jwtMutex      sync.RWMutex
)

// SetJWTSecret replaces the HMAC key used to sign tokens. Safe for
// concurrent use.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current signing key.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// GenerateSalt returns a random hex-encoded salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPasswordArgon2 derives an argon2id hash of password with salt.
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("salt is required")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix + base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword compares plain against a stored argon2id hash in constant time.
func VerifyPassword(plain, hash, salt string) (bool, error) {
	if !strings.HasPrefix(hash, argonPrefix) {
		return false, fmt.Errorf("unsupported password hash format")
	}
	want, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(hash, argonPrefix))
	if err != nil {
		return false, fmt.Errorf("decode password hash: %w", err)
	}
	got := argon2.IDKey([]byte(plain), []byte(salt), argonTime, argonMemory, argonThreads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
