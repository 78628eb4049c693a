package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", digest)

	assert.True(t, h.Verify(digest, "Secret123"))
	assert.False(t, h.Verify(digest, "secret123"))
	assert.False(t, h.Verify(digest, "Secret1234"))
	assert.False(t, h.Verify(digest, ""))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h := NewBcryptHasher()
	_, err := h.Hash("")
	require.Error(t, err)
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher()

	d1, err := h.Hash("Secret123")
	require.NoError(t, err)
	d2, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify(d1, "Secret123"))
	assert.True(t, h.Verify(d2, "Secret123"))
}

func TestVerifyCorruptDigest(t *testing.T) {
	h := NewBcryptHasher()
	assert.False(t, h.Verify("not-a-bcrypt-digest", "Secret123"))
}
