package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileIsEmpty(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "@toDos")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetWritesReadableDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@working", "false"))
	require.NoError(t, s.Set(ctx, "@toDos", `{"1":{"text":"a","working":true,"complete":false}}`))

	b, err := os.ReadFile(filepath.Join(dir, DataFileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"@working": "false"`)

	reopened, err := New(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "@working")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DataFileName), []byte("{nope"), 0o644))
	s, err := New(dir)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "@toDos")
	assert.ErrorContains(t, err, "json unmarshal")
	assert.Error(t, s.Set(context.Background(), "@toDos", "{}"))
}

func TestCanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
}
