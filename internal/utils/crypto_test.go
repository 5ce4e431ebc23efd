// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	first, err := GenerateRandomString(32)
	require.NoError(t, err)
	second, err := GenerateRandomString(32)
	require.NoError(t, err)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}

func TestGenerateDownloadLink(t *testing.T) {
	link, err := GenerateDownloadLink()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://downloads.mercado.local/"))
}
