package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/logger"
)

const (
	deliverableDir = "deliverables"
	coverDir       = "covers"
	tmpDir         = "tmp"
)

// Manager owns the storage root: deliverable placement, the quota
// check, and eviction of stale files
//
//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks -mock_names=Manager=MockStorageManager
type Manager interface {
	// CheckSpace walks the storage root and fails when the used bytes
	// meet or exceed the configured cap
	CheckSpace(ctx context.Context) error

	// UsedBytes walks the storage root and sums regular file sizes
	UsedBytes(ctx context.Context) (int64, error)

	// CleanupOld removes files older than maxAge and returns the number
	// of files removed and the bytes reclaimed
	CleanupOld(ctx context.Context, maxAge time.Duration) (int, int64, error)

	// ClearCovers removes every file under the cover directory
	ClearCovers(ctx context.Context) (int, error)

	// DeliverablePath returns the canonical deliverable path for an item
	DeliverablePath(itemID string) string

	// CoverPath returns the canonical cover path for an item
	CoverPath(itemID string) string

	// TempPath returns a scratch path for an in-progress download
	TempPath(itemID string) string

	// DeliverableExists reports whether the item's deliverable is already
	// on disk
	DeliverableExists(itemID string) bool

	// MaxBytes returns the configured storage cap
	MaxBytes() int64
}

type manager struct {
	root     string
	maxBytes int64
	clock    adapter.Clock
}

// NewManager creates a storage manager and the directory layout under
// the configured root
func NewManager(cfg config.StorageConfig, clock adapter.Clock) (Manager, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("storage root is required")
	}

	for _, dir := range []string{deliverableDir, coverDir, tmpDir} {
		if err := os.MkdirAll(filepath.Join(cfg.Root, dir), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	return &manager{
		root:     cfg.Root,
		maxBytes: cfg.MaxBytes,
		clock:    clock,
	}, nil
}

func (m *manager) CheckSpace(ctx context.Context) error {
	used, err := m.UsedBytes(ctx)
	if err != nil {
		return domain.WrapFetchError(domain.KindFilesystem, "", err, "failed to measure storage usage")
	}
	if used >= m.maxBytes {
		return domain.NewFetchError(domain.KindQuotaExceeded, "",
			"storage quota exceeded: %d of %d bytes used", used, m.maxBytes)
	}
	return nil
}

func (m *manager) UsedBytes(ctx context.Context) (int64, error) {
	var used int64
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return m.skipWalkError(ctx, path, d, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return m.skipWalkError(ctx, path, d, err)
		}
		used += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return used, nil
}

// skipWalkError keeps a storage walk going past a single broken entry.
// A file removed mid-walk is expected; anything else is logged and
// skipped so one unreadable path never halts quota checks or eviction.
func (m *manager) skipWalkError(ctx context.Context, path string, d fs.DirEntry, err error) error {
	if !os.IsNotExist(err) {
		logger.WarnCtx(ctx, "Skipping unreadable path in storage walk",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

func (m *manager) CleanupOld(ctx context.Context, maxAge time.Duration) (int, int64, error) {
	var removed int
	var reclaimed int64

	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return m.skipWalkError(ctx, path, d, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return m.skipWalkError(ctx, path, d, err)
		}
		if m.clock.Since(info.ModTime()) < maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logger.WarnCtx(ctx, "Failed to remove stale file",
				zap.String("path", path),
				zap.Error(err),
			)
			return nil
		}
		removed++
		reclaimed += info.Size()
		return nil
	})
	if err != nil {
		return removed, reclaimed, err
	}

	logger.InfoCtx(ctx, "Storage cleanup finished",
		zap.Int("removed", removed),
		zap.Int64("reclaimed_bytes", reclaimed),
	)
	return removed, reclaimed, nil
}

func (m *manager) ClearCovers(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(filepath.Join(m.root, coverDir))
	if err != nil {
		return 0, err
	}

	var removed int
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(m.root, coverDir, entry.Name())); err != nil {
			logger.WarnCtx(ctx, "Failed to remove cover",
				zap.String("name", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		removed++
	}
	return removed, nil
}

func (m *manager) DeliverablePath(itemID string) string {
	return filepath.Join(m.root, deliverableDir, itemID+".cbz")
}

func (m *manager) CoverPath(itemID string) string {
	return filepath.Join(m.root, coverDir, itemID+".jpg")
}

func (m *manager) TempPath(itemID string) string {
	return filepath.Join(m.root, tmpDir, itemID+".part")
}

func (m *manager) DeliverableExists(itemID string) bool {
	info, err := os.Stat(m.DeliverablePath(itemID))
	return err == nil && !info.IsDir()
}

func (m *manager) MaxBytes() int64 {
	return m.maxBytes
}
