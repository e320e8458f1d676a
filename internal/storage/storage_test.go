package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
)

func newTestManager(t *testing.T, maxBytes int64) (Manager, string) {
	t.Helper()
	root := t.TempDir()
	m, err := NewManager(config.StorageConfig{Root: root, MaxBytes: maxBytes}, adapter.NewClock())
	require.NoError(t, err)
	return m, root
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
}

func TestNewManagerCreatesLayout(t *testing.T) {
	m, root := newTestManager(t, 1024)

	for _, dir := range []string{"deliverables", "covers", "tmp"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, int64(1024), m.MaxBytes())
}

func TestNewManagerRequiresRoot(t *testing.T) {
	_, err := NewManager(config.StorageConfig{}, adapter.NewClock())
	assert.Error(t, err)
}

func TestCheckSpace(t *testing.T) {
	ctx := context.Background()

	t.Run("passes under the cap", func(t *testing.T) {
		m, root := newTestManager(t, 1024)
		writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 100)

		assert.NoError(t, m.CheckSpace(ctx))
	})

	t.Run("fails at the cap", func(t *testing.T) {
		m, root := newTestManager(t, 200)
		writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 150)
		writeFile(t, filepath.Join(root, "covers", "a.jpg"), 50)

		err := m.CheckSpace(ctx)
		require.Error(t, err)
		assert.Equal(t, domain.KindQuotaExceeded, domain.KindOf(err))
	})

	t.Run("fails over the cap", func(t *testing.T) {
		m, root := newTestManager(t, 100)
		writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 500)

		err := m.CheckSpace(ctx)
		require.Error(t, err)
		assert.Equal(t, domain.KindQuotaExceeded, domain.KindOf(err))
	})
}

func TestUsedBytes(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, 1<<20)

	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)

	writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 300)
	writeFile(t, filepath.Join(root, "covers", "a.jpg"), 200)
	writeFile(t, filepath.Join(root, "tmp", "b.part"), 100)

	used, err = m.UsedBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(600), used)
}

func TestCleanupOld(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, 1<<20)

	oldPath := filepath.Join(root, "deliverables", "old.cbz")
	freshPath := filepath.Join(root, "deliverables", "fresh.cbz")
	writeFile(t, oldPath, 400)
	writeFile(t, freshPath, 100)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	removed, reclaimed, err := m.CleanupOld(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, int64(400), reclaimed)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshPath)
	assert.NoError(t, err)
}

// addUnreadableDir plants a directory the walk cannot descend into,
// named so it sorts before the standard layout directories.
func addUnreadableDir(t *testing.T, root string) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not apply to root")
	}

	bad := filepath.Join(root, "00-unreadable")
	require.NoError(t, os.Mkdir(bad, 0o750))
	writeFile(t, filepath.Join(bad, "hidden.bin"), 50)
	require.NoError(t, os.Chmod(bad, 0o000))
	t.Cleanup(func() {
		_ = os.Chmod(bad, 0o750)
	})
}

func TestCleanupOldSurvivesUnreadableDir(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, 1<<20)
	addUnreadableDir(t, root)

	oldPath := filepath.Join(root, "deliverables", "old.cbz")
	writeFile(t, oldPath, 400)
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	removed, reclaimed, err := m.CleanupOld(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, int64(400), reclaimed)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
}

func TestUsedBytesSurvivesUnreadableDir(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, 1<<20)
	addUnreadableDir(t, root)

	writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 300)

	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), used)
}

func TestClearCovers(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, 1<<20)

	writeFile(t, filepath.Join(root, "covers", "a.jpg"), 10)
	writeFile(t, filepath.Join(root, "covers", "b.jpg"), 10)
	writeFile(t, filepath.Join(root, "deliverables", "a.cbz"), 10)

	removed, err := m.ClearCovers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// Deliverables are untouched
	_, err = os.Stat(filepath.Join(root, "deliverables", "a.cbz"))
	assert.NoError(t, err)
}

func TestPaths(t *testing.T) {
	m, root := newTestManager(t, 1<<20)

	assert.Equal(t, filepath.Join(root, "deliverables", "42.cbz"), m.DeliverablePath("42"))
	assert.Equal(t, filepath.Join(root, "covers", "42.jpg"), m.CoverPath("42"))
	assert.Equal(t, filepath.Join(root, "tmp", "42.part"), m.TempPath("42"))
}

func TestDeliverableExists(t *testing.T) {
	m, root := newTestManager(t, 1<<20)

	assert.False(t, m.DeliverableExists("42"))
	writeFile(t, filepath.Join(root, "deliverables", "42.cbz"), 10)
	assert.True(t, m.DeliverableExists("42"))
}
