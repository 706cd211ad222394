package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestHashCode(t *testing.T) {
	assert.Equal(t, HashCode("123456"), HashCode("123456"))
	assert.NotEqual(t, HashCode("123456"), HashCode("123457"))
	assert.Len(t, HashCode("123456"), 64)
}
