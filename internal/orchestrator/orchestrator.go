package orchestrator

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/downloader"
	"github.com/albumvault/fetchd/internal/events"
	"github.com/albumvault/fetchd/internal/gate"
	"github.com/albumvault/fetchd/internal/logger"
	"github.com/albumvault/fetchd/internal/storage"
	"github.com/albumvault/fetchd/internal/store"
)

// Orchestrator drives a fetch request through blacklist, quota, gate,
// download and ledger recording
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// RequestFetch runs one fetch request end to end and blocks until
	// it completes, fails, or is rejected up front
	RequestFetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error)

	// GetStats reports storage usage and in-flight downloads
	GetStats(ctx context.Context) (*domain.Stats, error)

	// SetBlacklist flips the moderation flag for an item
	SetBlacklist(ctx context.Context, itemID string, flag bool) error

	// Shutdown drains the worker pool
	Shutdown()
}

type orchestrator struct {
	store      store.Store
	gate       gate.Gate
	storage    storage.Manager
	downloader downloader.Downloader
	publisher  events.Publisher
	clock      adapter.Clock
	mirrors    config.MirrorsConfig
	storageCfg config.StorageConfig
}

// New creates an orchestrator. publisher may be nil, which disables
// event publishing.
func New(
	st store.Store,
	g gate.Gate,
	sm storage.Manager,
	dl downloader.Downloader,
	pub events.Publisher,
	clock adapter.Clock,
	mirrors config.MirrorsConfig,
	storageCfg config.StorageConfig,
) Orchestrator {
	return &orchestrator{
		store:      st,
		gate:       g,
		storage:    sm,
		downloader: dl,
		publisher:  pub,
		clock:      clock,
		mirrors:    mirrors,
		storageCfg: storageCfg,
	}
}

func (o *orchestrator) RequestFetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	requestID := ulid.MustNewDefault(o.clock.Now()).String()
	log := logger.FromContext(ctx).With(
		zap.String("request_id", requestID),
		zap.String("item_id", req.ItemID),
		zap.String("requester_id", req.RequesterID),
	)

	if req.ItemID == "" || req.RequesterID == "" {
		return nil, domain.NewFetchError(domain.KindInvalidInput, "", "item ID and requester ID are required")
	}

	// Blacklist check applies to every path, cached or not
	item, err := o.store.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item != nil && item.Blacklisted {
		log.Info("Rejecting fetch for blacklisted item")
		return nil, domain.NewFetchError(domain.KindBlacklisted, "", "item %s is blacklisted", req.ItemID)
	}

	// A deliverable still on disk short-circuits quota, gate and
	// download. Serving it to a new requester is still a fetch, so the
	// ledger is updated the same way.
	if o.storage.DeliverableExists(req.ItemID) {
		log.Info("Serving cached deliverable")
		if err := o.record(ctx, req, nil); err != nil {
			return nil, err
		}
		result := &domain.FetchResult{
			ItemID:   req.ItemID,
			FilePath: o.storage.DeliverablePath(req.ItemID),
			Cached:   true,
			Message:  "served from cache",
		}
		o.publish(ctx, requestID, req, result)
		return result, nil
	}

	if err := o.checkSpaceWithCleanup(ctx, log); err != nil {
		return nil, err
	}

	if !o.gate.TryAcquire(req.ItemID) {
		log.Info("Rejecting fetch already in progress")
		return nil, domain.NewFetchError(domain.KindAlreadyInProgress, "",
			"a download for item %s is already in progress", req.ItemID)
	}
	defer o.gate.Release(req.ItemID)

	result, err := o.gate.Run(ctx, func(ctx context.Context) (*domain.FetchResult, error) {
		dlResult, err := o.downloader.Fetch(ctx, req.ItemID, o.mirrors.Endpoints)
		if err != nil {
			return nil, err
		}

		var meta *metadataInput
		if dlResult.Metadata != nil {
			meta = &metadataInput{
				title: dlResult.Metadata.Title,
				tags:  dlResult.Metadata.Tags,
			}
		}
		if err := o.record(ctx, req, meta); err != nil {
			return nil, err
		}

		return &domain.FetchResult{
			ItemID:   req.ItemID,
			FilePath: dlResult.FilePath,
			Message:  fmt.Sprintf("downloaded from %s", dlResult.Endpoint),
		}, nil
	})
	if err != nil {
		log.Warn("Fetch failed", zap.String("kind", string(domain.KindOf(err))), zap.Error(err))
		return nil, err
	}

	log.Info("Fetch completed", zap.String("file_path", result.FilePath))
	o.publish(ctx, requestID, req, result)
	return result, nil
}

// metadataInput is what the record step writes to the item row when
// the winning mirror supplied metadata
type metadataInput struct {
	title string
	tags  []string
}

// record writes the provenance of one completed fetch. When no
// metadata is available the item row is created minimally so the fetch
// event always has a parent.
func (o *orchestrator) record(ctx context.Context, req domain.FetchRequest, meta *metadataInput) error {
	if _, err := o.store.UpsertRequester(ctx, req.RequesterID, req.RequesterName); err != nil {
		return err
	}

	if meta != nil {
		if _, err := o.store.UpsertItem(ctx, store.UpsertItemInput{
			ItemID: req.ItemID,
			Title:  meta.title,
			Tags:   meta.tags,
		}); err != nil {
			return err
		}
	} else {
		item, err := o.store.GetItem(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			if _, err := o.store.UpsertItem(ctx, store.UpsertItemInput{ItemID: req.ItemID}); err != nil {
				return err
			}
		}
	}

	_, err := o.store.RecordFetch(ctx, req.ItemID, req.RequesterID)
	return err
}

// checkSpaceWithCleanup rejects with quota-exceeded only after one
// eviction attempt has failed to free enough space
func (o *orchestrator) checkSpaceWithCleanup(ctx context.Context, log *zap.Logger) error {
	err := o.storage.CheckSpace(ctx)
	if err == nil {
		return nil
	}
	if domain.KindOf(err) != domain.KindQuotaExceeded {
		return err
	}

	log.Info("Storage quota reached, attempting cleanup")
	removed, reclaimed, cleanupErr := o.storage.CleanupOld(ctx, o.storageCfg.CleanupMaxAge)
	if cleanupErr != nil {
		log.Warn("Storage cleanup failed", zap.Error(cleanupErr))
	} else {
		log.Info("Storage cleanup done",
			zap.Int("removed", removed),
			zap.Int64("reclaimed_bytes", reclaimed),
		)
	}

	return o.storage.CheckSpace(ctx)
}

// publish emits the completed-fetch event best-effort; a broker outage
// never fails a fetch that is already recorded
func (o *orchestrator) publish(ctx context.Context, requestID string, req domain.FetchRequest, result *domain.FetchResult) {
	if o.publisher == nil {
		return
	}

	event := &events.FetchCompleted{
		RequestID:   requestID,
		ItemID:      req.ItemID,
		RequesterID: req.RequesterID,
		FilePath:    result.FilePath,
		Cached:      result.Cached,
		CompletedAt: o.clock.Now(),
	}
	if err := o.publisher.PublishFetchCompleted(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish fetch event",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (o *orchestrator) GetStats(ctx context.Context) (*domain.Stats, error) {
	used, err := o.storage.UsedBytes(ctx)
	if err != nil {
		return nil, domain.WrapFetchError(domain.KindFilesystem, "", err, "failed to measure storage usage")
	}

	return &domain.Stats{
		UsedBytes:       used,
		MaxBytes:        o.storage.MaxBytes(),
		ActiveDownloads: o.gate.Active(),
	}, nil
}

func (o *orchestrator) SetBlacklist(ctx context.Context, itemID string, flag bool) error {
	return o.store.SetBlacklist(ctx, itemID, flag)
}

func (o *orchestrator) Shutdown() {
	o.gate.Stop()
}
