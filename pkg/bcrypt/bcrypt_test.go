package bcrypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPasswordCost("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.NotEqual(t, "Passw0rd", hash)

	assert.NoError(t, ComparePassword(hash, "Passw0rd"))
	err = ComparePassword(hash, "passw0rd")
	require.Error(t, err)
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

func TestHashPasswordCost_InvalidCost(t *testing.T) {
	_, err := HashPasswordCost("Passw0rd", bcrypt.MaxCost+1)
	assert.Error(t, err)
}
