// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache", "recase.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_GetMiss(t *testing.T) {
	s, _ := openTestStore(t)
	_, ok, err := s.Get(context.Background(), Key("m", "text"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutGet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	key := Key("model-a", "HELLO WORLD")

	require.NoError(t, s.Put(ctx, key, "model-a", "Hello world"))
	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello world", got)

	require.NoError(t, s.Put(ctx, key, "model-a", "Hello World"))
	got, _, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", "m", "v"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("m", "text"), Key("m", "text"))
	assert.NotEqual(t, Key("m1", "text"), Key("m2", "text"))
	assert.NotEqual(t, Key("m", "text a"), Key("m", "text b"))
	// The separator keeps model/text boundaries distinct.
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key("m", "t"), 64)
}
