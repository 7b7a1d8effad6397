package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("fixed width lowercase hex", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		require.Len(t, token, TokenLength)
		require.True(t, ValidTokenFormat(token))
	})

	t.Run("no collisions across many draws", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			token, err := GenerateToken()
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "duplicate token %s", token)
			seen[token] = struct{}{}
		}
	})
}

func TestValidTokenFormat(t *testing.T) {
	t.Parallel()

	require.True(t, ValidTokenFormat("00112233445566778899aabbccddeeff00112233"))
	require.False(t, ValidTokenFormat(""))
	require.False(t, ValidTokenFormat("short"))
	require.False(t, ValidTokenFormat("00112233445566778899AABBCCDDEEFF00112233")) // uppercase
	require.False(t, ValidTokenFormat("00112233445566778899aabbccddeeff0011223"))  // 39 chars
}
