package provider

import (
	"context"
)

// AlbumMetadata represents the album metadata returned by a mirror
type AlbumMetadata struct {
	ItemID    string   `json:"id"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	PageCount int      `json:"page_count"`
	CoverURL  string   `json:"cover_url"`
}

// ContentProvider defines the operations a single mirror endpoint
// supports. Implementations classify their failures so callers can
// decide between failing over and aborting.
//
//go:generate mockgen -source=provider.go -destination=../mocks/provider.go -package=mocks -mock_names=ContentProvider=MockContentProvider
type ContentProvider interface {
	// GetMetadata fetches album metadata from the given mirror endpoint
	GetMetadata(ctx context.Context, endpoint, itemID string) (*AlbumMetadata, error)

	// FetchArchive downloads the album archive from the given mirror
	// endpoint into destPath and returns the number of bytes written
	FetchArchive(ctx context.Context, endpoint, itemID, destPath string) (int64, error)

	// FetchCover downloads the album cover from the given mirror
	// endpoint into destPath
	FetchCover(ctx context.Context, endpoint, itemID, destPath string) error
}
