package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	_, err = hex.DecodeString(a)
	require.NoError(t, err)

	b, err := RandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRandomToken_Sizes(t *testing.T) {
	s, err := RandomToken(0)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = RandomToken(-1)
	assert.ErrorContains(t, err, "negative size")
}

func TestWipe(t *testing.T) {
	pw := []byte("Admin123!")
	Wipe(pw)
	assert.Equal(t, make([]byte, 9), pw)

	assert.NotPanics(t, func() { Wipe(nil) })
}

func TestSessionKeys(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"auth_token", "auth_user", "user_preferences"},
		SessionKeys)
}
