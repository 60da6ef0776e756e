package port

import (
	"context"
	"time"

	"bitpanda_watcher/internal/domain/entity"
)

// TickerService serves the price table for one poll cycle.
type TickerService interface {
	Current(ctx context.Context) (entity.TickerTable, error)
}

// SnapshotProvider exposes the latest published snapshot to presentation
// layers.
type SnapshotProvider interface {
	// Snapshot returns the latest snapshot, or nil when no cycle has
	// succeeded yet.
	Snapshot() *entity.Snapshot

	// NextDueAt returns when the next poll attempt is scheduled. It advances
	// after every cycle, failed ones included.
	NextDueAt() time.Time

	// LastError returns the failure of the most recent cycle, nil after a
	// success.
	LastError() error
}
