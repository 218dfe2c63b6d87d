package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBcrypt(t *testing.T) {
	hash, err := GetBcrypt("Secret123!")
	assert.Nil(t, err)
	assert.NotEqual(t, "Secret123!", hash)

	assert.Nil(t, CompareBcrypt([]byte(hash), []byte("Secret123!")))
	assert.Error(t, CompareBcrypt([]byte(hash), []byte("secret123!")))

	// Hashing is salted, the same password never hashes identically.
	otherHash, err := GetBcrypt("Secret123!")
	assert.Nil(t, err)
	assert.NotEqual(t, hash, otherHash)
}

func TestGetSHA256(t *testing.T) {
	assert.Equal(t, GetSHA256("token"), GetSHA256("token"))
	assert.NotEqual(t, GetSHA256("token"), GetSHA256("token2"))
	assert.Len(t, GetSHA256("token"), 64)
}
