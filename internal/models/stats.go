package models

import "time"

// ClickWindows holds point-in-time click counts over trailing time windows.
// Each count is a fresh range query anchored at the moment of the request,
// not an incrementally maintained histogram.
type ClickWindows struct {
	// LastHour is the number of clicks in the trailing hour.
	LastHour int64
	// LastDay is the number of clicks in the trailing 24 hours.
	LastDay int64
	// LastWeek is the number of clicks in the trailing 7 days.
	LastWeek int64
	// LastMonth is the number of clicks in the trailing 30 days.
	LastMonth int64
	// LastClicked is the timestamp of the most recent click, nil if none.
	LastClicked *time.Time
}

// LinkStats is the per-link statistics summary.
type LinkStats struct {
	ShortCode    string
	OriginalURL  string
	ClickCount   int64
	CreatedAt    time.Time
	IsActive     bool
	ClickWindows // windowed counts from the click log
}
