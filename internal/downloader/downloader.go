package downloader

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/logger"
	"github.com/albumvault/fetchd/internal/provider"
	"github.com/albumvault/fetchd/internal/storage"
)

// Result is a completed download: the deliverable on disk plus
// whatever metadata the winning mirror reported. Metadata may be nil
// when the mirror served the archive but not the metadata document.
type Result struct {
	ItemID   string
	FilePath string
	Endpoint string
	Bytes    int64
	Metadata *provider.AlbumMetadata
}

// Downloader fetches one item through a ranked list of mirror endpoints
//
//go:generate mockgen -source=downloader.go -destination=../mocks/downloader.go -package=mocks -mock_names=Downloader=MockDownloader
type Downloader interface {
	// Fetch attempts the endpoints in order and returns the first
	// successful download. NotFound and Filesystem failures abort the
	// whole fetch; Network and Structural failures move on to the next
	// endpoint. When every endpoint fails that way the error is a
	// *domain.MirrorsExhaustedError naming each endpoint's outcome.
	Fetch(ctx context.Context, itemID string, endpoints []string) (*Result, error)
}

type downloader struct {
	provider provider.ContentProvider
	storage  storage.Manager
	fs       adapter.FileSystem
	cfg      config.MirrorsConfig
}

// New creates a mirror-failover downloader
func New(p provider.ContentProvider, sm storage.Manager, fs adapter.FileSystem, cfg config.MirrorsConfig) Downloader {
	return &downloader{
		provider: p,
		storage:  sm,
		fs:       fs,
		cfg:      cfg,
	}
}

func (d *downloader) Fetch(ctx context.Context, itemID string, endpoints []string) (*Result, error) {
	if len(endpoints) == 0 {
		return nil, domain.NewFetchError(domain.KindStructural, "", "no mirror endpoints configured")
	}

	var failures []domain.MirrorFailure
	for _, endpoint := range endpoints {
		result, err := d.attemptEndpoint(ctx, endpoint, itemID)
		if err == nil {
			return result, nil
		}

		kind := domain.KindOf(err)
		if !domain.RetryableAcrossMirrors(kind) {
			// NotFound is endpoint-independent, Filesystem is local;
			// trying another mirror cannot change either outcome
			return nil, err
		}

		logger.WarnCtx(ctx, "Mirror attempt failed, failing over",
			zap.String("item_id", itemID),
			zap.String("endpoint", endpoint),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		failures = append(failures, domain.MirrorFailure{
			Endpoint: endpoint,
			Kind:     kind,
			Reason:   err.Error(),
		})
	}

	return nil, &domain.MirrorsExhaustedError{ItemID: itemID, Failures: failures}
}

// attemptEndpoint downloads the archive from one endpoint, retrying
// transient failures against the same endpoint with a short bounded
// backoff before giving up on it.
func (d *downloader) attemptEndpoint(ctx context.Context, endpoint, itemID string) (*Result, error) {
	tmpPath := d.storage.TempPath(itemID)

	var bytes int64
	operation := func() error {
		attemptCtx := ctx
		if d.cfg.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, d.cfg.AttemptTimeout)
			defer cancel()
		}

		written, err := d.provider.FetchArchive(attemptCtx, endpoint, itemID, tmpPath)
		if err != nil {
			// An exceeded attempt timeout reads as a transient failure
			if attemptCtx.Err() != nil && ctx.Err() == nil {
				return domain.WrapFetchError(domain.KindNetwork, endpoint, err, "attempt timed out")
			}
			if domain.KindOf(err) == domain.KindNetwork {
				return err
			}
			return backoff.Permanent(err)
		}
		bytes = written
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0

	retries := uint64(0)
	if d.cfg.RetriesPerMirror > 0 {
		retries = uint64(d.cfg.RetriesPerMirror)
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(b, ctx), retries))
	if err != nil {
		return nil, err
	}

	return d.finalize(ctx, endpoint, itemID, tmpPath, bytes)
}

// finalize validates the downloaded archive and moves it into place
func (d *downloader) finalize(ctx context.Context, endpoint, itemID, tmpPath string, bytes int64) (*Result, error) {
	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		d.discard(tmpPath)
		return nil, domain.WrapFetchError(domain.KindFilesystem, endpoint, err, "failed to inspect downloaded archive")
	}
	if !mtype.Is("application/zip") {
		d.discard(tmpPath)
		return nil, domain.NewFetchError(domain.KindStructural, endpoint,
			"mirror served %s instead of an archive", mtype.String())
	}

	finalPath := d.storage.DeliverablePath(itemID)
	if err := d.fs.Rename(tmpPath, finalPath); err != nil {
		d.discard(tmpPath)
		return nil, domain.WrapFetchError(domain.KindFilesystem, endpoint, err, "failed to move deliverable into place")
	}

	result := &Result{
		ItemID:   itemID,
		FilePath: finalPath,
		Endpoint: endpoint,
		Bytes:    bytes,
	}

	// Metadata and cover ride along best-effort: the deliverable is
	// already safe on disk, so their failure never fails the fetch
	meta, err := d.provider.GetMetadata(ctx, endpoint, itemID)
	if err != nil {
		logger.WarnCtx(ctx, "Metadata resolution failed after successful download",
			zap.String("item_id", itemID),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return result, nil
	}
	result.Metadata = meta

	if err := d.provider.FetchCover(ctx, endpoint, itemID, d.storage.CoverPath(itemID)); err != nil {
		logger.DebugCtx(ctx, "Cover download failed",
			zap.String("item_id", itemID),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
	}

	return result, nil
}

func (d *downloader) discard(path string) {
	if err := d.fs.Remove(path); err != nil {
		logger.Warn("failed to remove temp file", zap.Error(err), zap.String("path", path))
	}
}
