package models

import "time"

// FilterHistoryEntry is one applied filter recorded in the history store.
type FilterHistoryEntry struct {
	ID           int64
	SessionID    string
	AppliedAt    time.Time
	Criteria     FilterCriteria
	RecordCount  int
	TotalRentals int64
}
