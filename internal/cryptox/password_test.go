package cryptox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword([]byte("secret-password"))
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, []byte("secret-password")))
	assert.False(t, CheckPassword(hash, []byte("other-password")))

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	h2, err := HashPassword([]byte("pw"))
	require.NoError(t, err)

	// same input, different salt
	if bytes.Equal(h1, h2) {
		t.Errorf("expected different hashes for the same password")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword(nil)
	assert.True(t, errors.Is(err, ErrEmptyPassword))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(bytes.Repeat([]byte("a"), 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestNewToken(t *testing.T) {
	a, err := NewToken(16)
	require.NoError(t, err)
	b, err := NewToken(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	Wipe(b)
	assert.Equal(t, make([]byte, 6), b)

	Wipe(nil)
}
