package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.Empty(t, r.Types())
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	r.Register("memory", memory.New)

	s, err := r.Create("memory", nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, s)
}

func TestRegistry_Create_UnknownType(t *testing.T) {
	r := NewDefaultRegistry()
	before := r.Types()

	s, err := r.Create("bogus-type", map[string]any{})

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrUnknownStorageType)
	assert.Contains(t, err.Error(), "bogus-type")
	assert.Equal(t, before, r.Types())
	assert.False(t, r.Supports("bogus-type"))
}

func TestRegistry_Register_LastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := memory.NewStorage()
	second := memory.NewStorage()

	r.Register("custom", func(_ map[string]any) (driven.Storage, error) { return first, nil })
	r.Register("custom", func(_ map[string]any) (driven.Storage, error) { return second, nil })

	s, err := r.Create("custom", nil)
	require.NoError(t, err)
	assert.Same(t, second, s)
	assert.Equal(t, []string{"custom"}, r.Types())
}

func TestRegistry_Create_BuilderError(t *testing.T) {
	r := NewRegistry()
	buildErr := errors.New("boom")
	r.Register("broken", func(_ map[string]any) (driven.Storage, error) { return nil, buildErr })

	_, err := r.Create("broken", nil)

	assert.ErrorIs(t, err, buildErr)
}

func TestRegisterDefaults(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{"file", "memory", "sqlite"}, r.Types())
	assert.True(t, r.Supports("file"))
	assert.True(t, r.Supports("memory"))
	assert.True(t, r.Supports("sqlite"))
}

func TestDefaults_FileStorage(t *testing.T) {
	r := NewDefaultRegistry()
	root := t.TempDir()

	s, err := r.Create("file", map[string]any{"base_dir": root})
	require.NoError(t, err)
	require.IsType(t, &file.Storage{}, s)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestDefaults_SQLiteStorage(t *testing.T) {
	r := NewDefaultRegistry()

	s, err := r.Create("sqlite", map[string]any{"base_dir": t.TempDir()})
	require.NoError(t, err)
	if c, ok := s.(interface{ Close() error }); ok {
		defer c.Close()
	}

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	has, err := s.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, has)
}
