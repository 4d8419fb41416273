package tracker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/legisync/internal/store/memory"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hr1.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIsChangedNewFile(t *testing.T) {
	tracker := New(memory.New())
	path := writeTemp(t, "<bill/>")

	changed, err := tracker.IsChanged(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestSaveThenUnchanged(t *testing.T) {
	tracker := New(memory.New())
	ctx := context.Background()
	path := writeTemp(t, "<bill/>")

	require.NoError(t, tracker.Save(ctx, path))

	changed, err := tracker.IsChanged(ctx, path)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestContentChangeDetected(t *testing.T) {
	tracker := New(memory.New())
	ctx := context.Background()
	path := writeTemp(t, "<bill/>")

	require.NoError(t, tracker.Save(ctx, path))
	require.NoError(t, os.WriteFile(path, []byte(`<bill type="hr"/>`), 0o644))

	changed, err := tracker.IsChanged(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestSignatureShape(t *testing.T) {
	tracker := New(memory.New())
	path := writeTemp(t, "<bill/>")

	signature, err := tracker.Signature(path)
	require.NoError(t, err)

	parts := strings.Split(signature, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 64)
	assert.Equal(t, "7", parts[1])
}

func TestIsChangedMissingFile(t *testing.T) {
	tracker := New(memory.New())

	_, err := tracker.IsChanged(context.Background(), filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}
