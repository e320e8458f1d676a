package schema

import "time"

// FetchEvent represents the fetch_events table - the immutable record
// of one completed delivery. First/last ordering is defined by the
// autoincrement ID, not the timestamp, so clock skew cannot reorder
// history.
type FetchEvent struct {
	// ID is the internal database primary key; monotonically increasing
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID references items.id
	ItemID int64 `gorm:"column:item_id;not null;index"`
	// RequesterID references requesters.id
	RequesterID int64 `gorm:"column:requester_id;not null;index"`
	// CreatedAt is the fetch completion time
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the FetchEvent model
func (FetchEvent) TableName() string {
	return "fetch_events"
}
