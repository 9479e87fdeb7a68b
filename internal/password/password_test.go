package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("Sup3rSecret")
	require.NoError(t, err)
	require.Contains(t, encoded, ":")

	require.True(t, Verify("Sup3rSecret", encoded))
	require.False(t, Verify("wrong-password", encoded))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("Sup3rSecret")
	require.NoError(t, err)
	b, err := Hash("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyMalformedEncoding(t *testing.T) {
	require.False(t, Verify("x", "no-separator"))
	require.False(t, Verify("x", "!!!:###"))
	require.False(t, Verify("x", strings.Repeat("a", 10)+":"))
}
