package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bitpanda_watcher/internal/client"
	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/entity"
	"bitpanda_watcher/internal/pkg/metrics"
	"bitpanda_watcher/internal/port"
)

// CycleOutcome reports how a poll cycle ended.
type CycleOutcome string

const (
	CycleSuccess CycleOutcome = "success"
	CycleFailure CycleOutcome = "failure"
	CycleSkipped CycleOutcome = "skipped"
)

// Coordinator drives one fetch-and-normalize cycle per interval tick and
// holds the latest snapshot for observers. Exactly one cycle may be in flight
// at a time; ticks and refresh requests arriving mid-cycle are dropped.
type Coordinator struct {
	client    client.BitpandaClient
	tickerSvc port.TickerService
	cfg       *config.Config
	logger    *zap.Logger
	interval  time.Duration
	currency  string

	mu        sync.RWMutex
	selected  []domain.Category
	snapshot  *domain.Snapshot
	nextDue   time.Time
	lastErr   error
	observers []func(*domain.Snapshot)

	inFlight  atomic.Bool
	refreshCh chan struct{}
}

// NewCoordinator creates a new Coordinator for the configured selection.
func NewCoordinator(
	bitpandaClient client.BitpandaClient,
	tickerSvc port.TickerService,
	cfg *config.Config,
	logger *zap.Logger,
) (*Coordinator, error) {
	selected, err := cfg.SelectedCategories()
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		client:    bitpandaClient,
		tickerSvc: tickerSvc,
		cfg:       cfg,
		logger:    logger.Named("Coordinator"),
		interval:  cfg.Interval(),
		currency:  cfg.Poller.Currency,
		selected:  selected,
		refreshCh: make(chan struct{}, 1),
	}, nil
}

// AddObserver registers a callback invoked after every successful snapshot
// swap.
func (c *Coordinator) AddObserver(fn func(*domain.Snapshot)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// SetCategories swaps the category selection and triggers an on-demand
// refresh so newly added categories acquire data before being exposed.
func (c *Coordinator) SetCategories(cats []domain.Category) error {
	if len(cats) == 0 {
		return domain.ErrNoCategories
	}

	c.mu.Lock()
	c.selected = append([]domain.Category(nil), cats...)
	c.mu.Unlock()

	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
	return nil
}

// Refresh runs one cycle synchronously. It serves the initial fetch at
// startup: with no prior snapshot to fall back on, a failed or empty first
// cycle is reported as not-ready instead of being published.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if outcome := c.runCycle(ctx); outcome != CycleSuccess {
		if err := c.LastError(); err != nil {
			return err
		}
		return domain.ErrNotReady
	}
	if snap := c.Snapshot(); snap == nil || len(snap.Categories) == 0 {
		return domain.ErrNotReady
	}
	return nil
}

// Run polls on the configured interval until ctx is cancelled. In-flight
// requests are abandoned on cancellation without publishing a partial
// snapshot.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Coordinator stopped")
			return
		case <-ticker.C:
			c.runCycle(ctx)
		case <-c.refreshCh:
			c.runCycle(ctx)
		}
	}
}

// runCycle executes one poll cycle. The next-due estimate always advances,
// success or failure; the snapshot is only swapped on success, so observers
// keep the previous one (stale but available) when a cycle fails.
func (c *Coordinator) runCycle(ctx context.Context) CycleOutcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Warn("Skipping poll cycle, previous cycle still in flight")
		return CycleSkipped
	}
	defer c.inFlight.Store(false)

	started := time.Now()
	snap, err := c.fetchSnapshot(ctx)
	took := time.Since(started)

	outcome := CycleSuccess
	next := time.Now().Add(c.interval)

	c.mu.Lock()
	c.nextDue = next
	if err == nil {
		snap.NextDueAt = next
		c.snapshot = snap
		c.lastErr = nil
	} else {
		outcome = CycleFailure
		c.lastErr = errors.Wrap(err, "update failed")
		if c.snapshot != nil {
			stale := *c.snapshot
			stale.NextDueAt = next
			c.snapshot = &stale
		}
	}
	published := c.snapshot
	observers := append(([]func(*domain.Snapshot))(nil), c.observers...)
	c.mu.Unlock()

	if err == nil {
		c.logger.Info("Poll cycle complete",
			zap.Duration("took", took),
			zap.Int("categoryCount", len(published.Categories)),
			zap.Time("nextDueAt", next))
		for _, fn := range observers {
			fn(published)
		}
	} else {
		c.logger.Error("Poll cycle failed, keeping previous snapshot",
			zap.Duration("took", took),
			zap.Time("nextDueAt", next),
			zap.Error(err))
	}

	metrics.ObservePollCycle(string(outcome), took)
	return outcome
}

// fetchSnapshot runs the network half of one cycle: the ticker first (its
// prices feed normalization), then the fiat and combined-asset endpoints
// concurrently since neither depends on the other.
func (c *Coordinator) fetchSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	selected := c.Selected()

	table, err := c.tickerSvc.Current(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ticker fetch")
	}

	needFiat, needAssets := false, false
	for _, cat := range selected {
		if cat.IsAsset() {
			needAssets = true
		} else {
			needFiat = true
		}
	}

	var fiatResp *entity.FiatWalletsResponse
	var assetResp *entity.AssetWalletsResponse

	g, gctx := errgroup.WithContext(ctx)
	if needAssets {
		g.Go(func() error {
			resp, err := c.client.GetAssetWallets(gctx)
			if err != nil {
				return errors.Wrap(err, "asset wallets fetch")
			}
			assetResp = resp
			return nil
		})
	}
	if needFiat {
		g.Go(func() error {
			resp, err := c.client.GetFiatWallets(gctx)
			if err != nil {
				return errors.Wrap(err, "fiat wallets fetch")
			}
			fiatResp = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := make(map[domain.Category]domain.CategorySnapshot, len(selected))
	for _, cat := range selected {
		if cat == domain.CategoryFiat {
			categories[cat] = NormalizeFiat(fiatResp, c.currency)
			continue
		}
		categories[cat] = NormalizeAssetCategory(assetResp, cat, c.cfg.PathsFor(cat), table, c.currency)
	}

	fetchedAt := time.Now()
	return &domain.Snapshot{
		Categories: categories,
		FetchedAt:  fetchedAt,
		NextDueAt:  fetchedAt.Add(c.interval),
	}, nil
}

// Selected returns a copy of the current category selection.
func (c *Coordinator) Selected() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Category(nil), c.selected...)
}

// Snapshot implements port.SnapshotProvider.
func (c *Coordinator) Snapshot() *domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// NextDueAt implements port.SnapshotProvider.
func (c *Coordinator) NextDueAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextDue
}

// LastError implements port.SnapshotProvider.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
