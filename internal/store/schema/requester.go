package schema

import "time"

// Requester represents the requesters table - a user of the system,
// created on the first fetch request observed from their identifier.
type Requester struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RequesterID is the opaque external identifier
	RequesterID string `gorm:"column:requester_id;not null;uniqueIndex;type:text"`
	// DisplayName is mutable and refreshed on every upsert
	DisplayName string `gorm:"column:display_name;not null;default:'';type:text"`
	// CreatedAt is when the ledger first saw this requester
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`

	// Associations
	FetchEvents []FetchEvent `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Requester model
func (Requester) TableName() string {
	return "requesters"
}
