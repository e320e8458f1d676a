package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the ledger tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.ContentItem{},
		&schema.Requester{},
		&schema.FetchEvent{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to defaults:
// MaxOpenConns 20, MaxIdleConns 5, ConnMaxLifetime 5m, ConnMaxIdleTime 10m.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// ledgerErr classifies a store failure as ledger-unavailable. This is
// the single classification point for persistence errors.
func ledgerErr(err error, reason string) error {
	return domain.WrapFetchError(domain.KindLedgerUnavailable, "", err, reason)
}

// GetItem retrieves an item by its external ID
func (s *pgStore) GetItem(ctx context.Context, itemID string) (*schema.ContentItem, error) {
	var item schema.ContentItem
	err := s.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ledgerErr(err, "failed to get item")
	}
	return &item, nil
}

// UpsertItem creates the item on first sight and refreshes title/tags
// on subsequent sight. The fetch count and blacklist flag are never
// touched by the upsert.
func (s *pgStore) UpsertItem(ctx context.Context, input UpsertItemInput) (*schema.ContentItem, error) {
	item := schema.ContentItem{
		ItemID: input.ItemID,
		Title:  input.Title,
		Tags:   schema.TagsJSON(input.Tags),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "tags", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return nil, ledgerErr(err, "failed to upsert item")
	}

	// Re-read so the caller sees the merged row, not just the insert values
	return s.GetItem(ctx, input.ItemID)
}

// GetRequester retrieves a requester by its external ID
func (s *pgStore) GetRequester(ctx context.Context, requesterID string) (*schema.Requester, error) {
	var requester schema.Requester
	err := s.db.WithContext(ctx).Where("requester_id = ?", requesterID).First(&requester).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ledgerErr(err, "failed to get requester")
	}
	return &requester, nil
}

// UpsertRequester creates the requester on first sight and refreshes
// the display name on subsequent sight
func (s *pgStore) UpsertRequester(ctx context.Context, requesterID, displayName string) (*schema.Requester, error) {
	requester := schema.Requester{
		RequesterID: requesterID,
		DisplayName: displayName,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "requester_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(&requester).Error
	if err != nil {
		return nil, ledgerErr(err, "failed to upsert requester")
	}

	return s.GetRequester(ctx, requesterID)
}

// RecordFetch creates one fetch event and increments the item's fetch
// count in a single transaction. The item row is locked for update so
// concurrent increments for the same item serialize instead of losing
// updates.
func (s *pgStore) RecordFetch(ctx context.Context, itemID, requesterID string) (*schema.FetchEvent, error) {
	var event schema.FetchEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item schema.ContentItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("item_id = ?", itemID).First(&item).Error; err != nil {
			// A missing row is a caller bug (items are upserted before
			// recording), not a store outage
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewFetchError(domain.KindInvalidInput, "",
					"cannot record fetch for item %s: item does not exist in the ledger", itemID)
			}
			return fmt.Errorf("failed to lock item %s: %w", itemID, err)
		}

		if item.Blacklisted {
			return domain.NewFetchError(domain.KindBlacklisted, "", "item %s is blacklisted", itemID)
		}

		var requester schema.Requester
		if err := tx.Where("requester_id = ?", requesterID).First(&requester).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewFetchError(domain.KindInvalidInput, "",
					"cannot record fetch for requester %s: requester does not exist in the ledger", requesterID)
			}
			return fmt.Errorf("failed to find requester %s: %w", requesterID, err)
		}

		event = schema.FetchEvent{
			ItemID:      item.ID,
			RequesterID: requester.ID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create fetch event: %w", err)
		}

		return tx.Model(&schema.ContentItem{}).
			Where("id = ?", item.ID).
			UpdateColumn("fetch_count", gorm.Expr("fetch_count + 1")).Error
	})
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindBlacklisted, domain.KindInvalidInput:
			return nil, err
		}
		return nil, ledgerErr(err, "failed to record fetch")
	}
	return &event, nil
}

// SetBlacklist flips the moderation flag, creating a minimal item
// record when the ID has never been seen so an item can be banned
// before its first fetch.
func (s *pgStore) SetBlacklist(ctx context.Context, itemID string, flag bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item := schema.ContentItem{ItemID: itemID, Tags: schema.TagsJSON(nil)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoNothing: true,
		}).Create(&item).Error; err != nil {
			return err
		}

		return tx.Model(&schema.ContentItem{}).
			Where("item_id = ?", itemID).
			UpdateColumn("blacklisted", flag).Error
	})
	if err != nil {
		return ledgerErr(err, "failed to set blacklist flag")
	}
	return nil
}

// MostFetchedItem returns the item with the highest fetch count; ties
// break on the lowest external item ID. Items that were never fetched
// do not participate.
func (s *pgStore) MostFetchedItem(ctx context.Context) (*schema.ContentItem, error) {
	var item schema.ContentItem
	err := s.db.WithContext(ctx).
		Where("fetch_count > 0").
		Order("fetch_count DESC, item_id ASC").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ledgerErr(err, "failed to query most fetched item")
	}
	return &item, nil
}

// MostFetchedRequester returns the requester with the most fetch
// events; ties break on the lowest external requester ID
func (s *pgStore) MostFetchedRequester(ctx context.Context) (*schema.Requester, error) {
	var requester schema.Requester
	err := s.db.WithContext(ctx).
		Table("requesters").
		Select("requesters.*").
		Joins("JOIN fetch_events ON fetch_events.requester_id = requesters.id").
		Group("requesters.id").
		Order("COUNT(fetch_events.id) DESC, requesters.requester_id ASC").
		First(&requester).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ledgerErr(err, "failed to query most fetched requester")
	}
	return &requester, nil
}

// FirstRequester returns the requester of the item's earliest fetch event
func (s *pgStore) FirstRequester(ctx context.Context, itemID string) (*schema.Requester, error) {
	return s.requesterByEventOrder(ctx, itemID, "fetch_events.id ASC")
}

// LastRequester returns the requester of the item's latest fetch event
func (s *pgStore) LastRequester(ctx context.Context, itemID string) (*schema.Requester, error) {
	return s.requesterByEventOrder(ctx, itemID, "fetch_events.id DESC")
}

// requesterByEventOrder resolves the requester of the first fetch event
// for an item under the given ordering. Ordering is by event ID, never
// by timestamp.
func (s *pgStore) requesterByEventOrder(ctx context.Context, itemID string, order string) (*schema.Requester, error) {
	var requester schema.Requester
	err := s.db.WithContext(ctx).
		Table("requesters").
		Select("requesters.*").
		Joins("JOIN fetch_events ON fetch_events.requester_id = requesters.id").
		Joins("JOIN items ON items.id = fetch_events.item_id").
		Where("items.item_id = ?", itemID).
		Order(order).
		Limit(1).
		Find(&requester).Error
	if err != nil {
		return nil, ledgerErr(err, "failed to query requester by event order")
	}
	if requester.ID == 0 {
		return nil, nil
	}
	return &requester, nil
}

// escapeLike escapes LIKE metacharacters so a user-supplied tag
// matches literally instead of acting as a pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// TopRequesterByTag returns the requester with the most fetch events
// among items whose tags contain tag, matched case-insensitively as a
// substring over the stored tag list.
func (s *pgStore) TopRequesterByTag(ctx context.Context, tag string) (*schema.Requester, error) {
	var requester schema.Requester
	err := s.db.WithContext(ctx).
		Table("requesters").
		Select("requesters.*").
		Joins("JOIN fetch_events ON fetch_events.requester_id = requesters.id").
		Joins("JOIN items ON items.id = fetch_events.item_id").
		Where("items.tags::text ILIKE ?", "%"+escapeLike(tag)+"%").
		Group("requesters.id").
		Order("COUNT(fetch_events.id) DESC, requesters.requester_id ASC").
		First(&requester).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ledgerErr(err, "failed to query top requester by tag")
	}
	return &requester, nil
}

// TopItems returns up to limit items ordered by fetch count descending
func (s *pgStore) TopItems(ctx context.Context, limit int) ([]schema.ContentItem, error) {
	if limit <= 0 {
		limit = 10
	}
	var items []schema.ContentItem
	err := s.db.WithContext(ctx).
		Where("fetch_count > 0").
		Order("fetch_count DESC, item_id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, ledgerErr(err, "failed to query top items")
	}
	return items, nil
}

// CountFetchEvents counts fetch events for an item
func (s *pgStore) CountFetchEvents(ctx context.Context, itemID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table("fetch_events").
		Joins("JOIN items ON items.id = fetch_events.item_id").
		Where("items.item_id = ?", itemID).
		Count(&count).Error
	if err != nil {
		return 0, ledgerErr(err, "failed to count fetch events")
	}
	return count, nil
}
