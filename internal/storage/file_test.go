package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotter_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	snaps, err := NewFile(dir)
	require.NoError(t, err)

	_, err = snaps.Load(ctx, "library/state")
	assert.ErrorIs(t, err, ErrNotExist)

	blob := []byte(`{"saved_at":"2024-03-01T12:00:00Z"}`)
	require.NoError(t, snaps.Save(ctx, "library/state", blob))

	got, err := snaps.Load(ctx, "library/state")
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	// Keys with separators are flattened into a single file name.
	_, err = os.Stat(filepath.Join(dir, "library_state.json"))
	require.NoError(t, err)
}

func TestFileSnapshotter_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	snaps, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, snaps.Save(ctx, "state", []byte("first")))
	require.NoError(t, snaps.Save(ctx, "state", []byte("second")))

	got, err := snaps.Load(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFileSnapshotter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "checkpoints")

	snaps, err := NewFile(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, snaps.Ping(context.Background()))
}

func TestFileSnapshotter_EmptyDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestFileSnapshotter_PingMissingDir(t *testing.T) {
	dir := t.TempDir()
	snaps, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, snaps.Ping(context.Background()))
}
