package api

import (
	"time"

	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/store/schema"
)

// FetchRequest is the payload for requesting a fetch
type FetchRequest struct {
	ItemID        string `json:"item_id" binding:"required"`
	RequesterID   string `json:"requester_id" binding:"required"`
	RequesterName string `json:"requester_name"`
}

// FetchResponse reports a completed fetch
type FetchResponse struct {
	ItemID   string `json:"item_id"`
	FilePath string `json:"file_path"`
	Cached   bool   `json:"cached"`
	Message  string `json:"message,omitempty"`
}

// StatsResponse reports storage usage and in-flight downloads
type StatsResponse struct {
	UsedBytes       int64 `json:"used_bytes"`
	MaxBytes        int64 `json:"max_bytes"`
	ActiveDownloads int   `json:"active_downloads"`
}

// ItemResponse represents one content item
type ItemResponse struct {
	ItemID      string    `json:"item_id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	FetchCount  int64     `json:"fetch_count"`
	Blacklisted bool      `json:"blacklisted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RequesterResponse represents one requester
type RequesterResponse struct {
	RequesterID string `json:"requester_id"`
	DisplayName string `json:"display_name"`
}

// BlacklistRequest is the payload for flipping the moderation flag
type BlacklistRequest struct {
	Blacklisted *bool `json:"blacklisted" binding:"required"`
}

func toFetchResponse(result *domain.FetchResult) FetchResponse {
	return FetchResponse{
		ItemID:   result.ItemID,
		FilePath: result.FilePath,
		Cached:   result.Cached,
		Message:  result.Message,
	}
}

func toItemResponse(item *schema.ContentItem) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		Title:       item.Title,
		Tags:        item.TagList(),
		FetchCount:  item.FetchCount,
		Blacklisted: item.Blacklisted,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toRequesterResponse(requester *schema.Requester) RequesterResponse {
	return RequesterResponse{
		RequesterID: requester.RequesterID,
		DisplayName: requester.DisplayName,
	}
}
