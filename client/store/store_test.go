package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.SaveToken(ctx, "tok-1"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	// Saving again overwrites the single stored value.
	require.NoError(t, s.SaveToken(ctx, "tok-2"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)

	require.NoError(t, s.DestroyToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveToken(ctx, "tok-1"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
}
