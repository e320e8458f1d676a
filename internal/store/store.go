package store

import (
	"context"

	"github.com/albumvault/fetchd/internal/store/schema"
)

// UpsertItemInput carries the metadata written on item upsert.
type UpsertItemInput struct {
	ItemID string
	Title  string
	Tags   []string
}

// Store defines the provenance ledger interface. It is the only
// component permitted to mutate items, requesters and fetch events.
// Lookups return (nil, nil) when no matching row exists; real store
// failures are classified as ledger-unavailable at this boundary.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetItem retrieves an item by its external ID
	GetItem(ctx context.Context, itemID string) (*schema.ContentItem, error)
	// UpsertItem creates the item on first sight and refreshes
	// title/tags on subsequent sight; never duplicates
	UpsertItem(ctx context.Context, input UpsertItemInput) (*schema.ContentItem, error)
	// GetRequester retrieves a requester by its external ID
	GetRequester(ctx context.Context, requesterID string) (*schema.Requester, error)
	// UpsertRequester creates the requester on first sight and
	// refreshes the display name on subsequent sight
	UpsertRequester(ctx context.Context, requesterID, displayName string) (*schema.Requester, error)
	// RecordFetch creates one fetch event and increments the item's
	// fetch count, both in a single transaction
	RecordFetch(ctx context.Context, itemID, requesterID string) (*schema.FetchEvent, error)
	// SetBlacklist flips the moderation flag, creating a minimal item
	// record when the ID has never been seen
	SetBlacklist(ctx context.Context, itemID string, flag bool) error

	// MostFetchedItem returns the item with the highest fetch count;
	// ties break on the lowest external item ID
	MostFetchedItem(ctx context.Context) (*schema.ContentItem, error)
	// MostFetchedRequester returns the requester with the most fetch
	// events; ties break on the lowest external requester ID
	MostFetchedRequester(ctx context.Context) (*schema.Requester, error)
	// FirstRequester returns the requester of the item's earliest fetch
	// event (minimum event ID)
	FirstRequester(ctx context.Context, itemID string) (*schema.Requester, error)
	// LastRequester returns the requester of the item's latest fetch
	// event (maximum event ID)
	LastRequester(ctx context.Context, itemID string) (*schema.Requester, error)
	// TopRequesterByTag returns the requester with the most fetch
	// events among items whose tags contain tag (case-insensitive
	// substring match); ties break on the lowest external requester ID
	TopRequesterByTag(ctx context.Context, tag string) (*schema.Requester, error)
	// TopItems returns up to limit items ordered by fetch count
	// descending, external item ID ascending
	TopItems(ctx context.Context, limit int) ([]schema.ContentItem, error)
	// CountFetchEvents counts fetch events for an item
	CountFetchEvents(ctx context.Context, itemID string) (int64, error)
}
