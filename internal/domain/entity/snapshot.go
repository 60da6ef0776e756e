package entity

import "time"

// Snapshot is the merged result of one poll cycle across all selected
// categories. Categories holds an entry for every category the cycle
// attempted, zero-valued when the API response carried nothing for it.
// A Snapshot is immutable once published; the coordinator replaces it
// wholesale on the next cycle.
type Snapshot struct {
	Categories map[Category]CategorySnapshot `json:"categories"`
	FetchedAt  time.Time                     `json:"fetched_at"`
	NextDueAt  time.Time                     `json:"next_due_at"`
}
