package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", digest)

	assert.True(t, h.Verify("secret", digest))
	assert.False(t, h.Verify("wrong", digest))
	assert.False(t, h.Verify("secret", "not-a-digest"))
}

func TestBcryptHasherSaltsEachDigest(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}
	d1, err := h.Hash("secret")
	require.NoError(t, err)
	d2, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}
