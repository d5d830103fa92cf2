package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	assert.True(t, CheckPassword(hashed, "123456"))
	assert.False(t, CheckPassword(hashed, "1234567"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	a, err := HashPassword("rahasia")
	require.NoError(t, err)
	b, err := HashPassword("rahasia")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
