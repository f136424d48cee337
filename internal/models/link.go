package models

import "time"

// Link represents a shortened URL and its lifecycle state.
type Link struct {
	// ID is the unique identifier for the link record.
	ID int64
	// ShortCode is the random token that serves as the link's public identifier.
	ShortCode string
	// OriginalURL is the destination that the short code resolves to.
	OriginalURL string
	// IsActive indicates whether the link can still be resolved.
	IsActive bool
	// CreatedAt is the timestamp indicating when the link was created.
	CreatedAt time.Time
	// ExpiresAt is the timestamp after which the link is no longer resolvable.
	ExpiresAt time.Time
	// ClickCount tracks the total number of successful redirects.
	ClickCount int64
	// CreatedBy is the username of the owning account, if any.
	CreatedBy *string
}
