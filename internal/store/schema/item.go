package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ContentItem represents the items table - one fetchable album known to
// the ledger. Created on first successful metadata resolution (or when
// moderation blacklists an unseen ID) and never deleted.
type ContentItem struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID is the opaque external identifier (numeric in practice)
	ItemID string `gorm:"column:item_id;not null;uniqueIndex;type:text"`
	// Title is the display name, updated when the item is re-resolved
	Title string `gorm:"column:title;not null;default:'';type:text"`
	// Tags is the ordered list of free-text labels, stored as JSONB
	Tags datatypes.JSON `gorm:"column:tags;type:jsonb"`
	// FetchCount is incremented exactly once per completed fetch
	FetchCount int64 `gorm:"column:fetch_count;not null;default:0"`
	// Blacklisted is set by moderation, never by the engine itself
	Blacklisted bool `gorm:"column:blacklisted;not null;default:false"`
	// CreatedAt is when the ledger first saw this item
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is bumped on metadata refresh
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	FetchEvents []FetchEvent `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ContentItem model
func (ContentItem) TableName() string {
	return "items"
}

// TagList decodes the stored tags into a string slice.
func (i *ContentItem) TagList() []string {
	if len(i.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(i.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

// TagsJSON encodes a tag list for storage.
func TagsJSON(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return datatypes.JSON(b)
}
