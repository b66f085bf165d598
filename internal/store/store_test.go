package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every backend must honor the same get/set contract.
func TestBackendContract(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			s, err := Open(name, t.TempDir())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			ctx := context.Background()

			_, ok, err := s.Get(ctx, TasksKey)
			require.NoError(t, err)
			assert.False(t, ok, "unwritten key must be absent")

			require.NoError(t, s.Set(ctx, TasksKey, `{}`))
			require.NoError(t, s.Set(ctx, ModeKey, "true"))
			require.NoError(t, s.Set(ctx, ModeKey, "false"))

			v, ok, err := s.Get(ctx, ModeKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "false", v, "last write wins")

			v, ok, err = s.Get(ctx, TasksKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{}`, v)
		})
	}
}

func TestPersistentBackendsSurviveReopen(t *testing.T) {
	for _, name := range []string{BackendFile, BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()

			s, err := Open(name, dir)
			require.NoError(t, err)
			require.NoError(t, s.Set(ctx, TasksKey, `{"1":{"text":"x","working":true,"complete":false}}`))
			require.NoError(t, s.Close())

			s, err = Open(name, dir)
			require.NoError(t, err)
			defer s.Close()
			v, ok, err := s.Get(ctx, TasksKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"1":{"text":"x","working":true,"complete":false}}`, v)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
