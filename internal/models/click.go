package models

import "time"

// Click represents a single resolved-redirect event. Click records are
// append-only and used exclusively for read-side aggregation.
type Click struct {
	// ID is the unique identifier for the click record.
	ID int64
	// LinkID references the link that was resolved.
	LinkID int64
	// ClickedAt is the timestamp of the redirect.
	ClickedAt time.Time
	// IPAddress is the originating address, if known.
	IPAddress *string
	// UserAgent is the requester's user agent, if known.
	UserAgent *string
}
