package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/entity"
)

type fakeBitpandaClient struct {
	assets   *entity.AssetWalletsResponse
	fiat     *entity.FiatWalletsResponse
	assetErr error
	fiatErr  error
}

func (f *fakeBitpandaClient) GetTicker(ctx context.Context) (domain.TickerTable, error) {
	return cryptoTicker(), nil
}

func (f *fakeBitpandaClient) GetAssetWallets(ctx context.Context) (*entity.AssetWalletsResponse, error) {
	return f.assets, f.assetErr
}

func (f *fakeBitpandaClient) GetFiatWallets(ctx context.Context) (*entity.FiatWalletsResponse, error) {
	return f.fiat, f.fiatErr
}

func (f *fakeBitpandaClient) ValidateAPIKey(ctx context.Context) error {
	return nil
}

type fakeTickerService struct {
	table domain.TickerTable
	err   error
}

func (f *fakeTickerService) Current(ctx context.Context) (domain.TickerTable, error) {
	return f.table, f.err
}

func coordinatorConfig() *config.Config {
	return &config.Config{
		Poller: config.PollerConfig{
			IntervalMinutes: 5,
			Currency:        "EUR",
			Categories:      []string{"FIAT", "CRYPTOCOIN", "LEVERAGE"},
			CategoryPaths: map[string][]string{
				"CRYPTOCOIN": {"cryptocoin"},
				"LEVERAGE":   {"cryptocoin"},
			},
		},
	}
}

func newTestCoordinator(t *testing.T, fake *fakeBitpandaClient) *Coordinator {
	t.Helper()
	coordinator, err := NewCoordinator(
		fake,
		&fakeTickerService{table: cryptoTicker()},
		coordinatorConfig(),
		zap.NewNop(),
	)
	require.NoError(t, err)
	return coordinator
}

func TestCoordinatorRefreshBuildsSnapshot(t *testing.T) {
	fake := &fakeBitpandaClient{assets: cryptoResponse(t), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	require.NoError(t, coordinator.Refresh(context.Background()))

	snap := coordinator.Snapshot()
	require.NotNil(t, snap)
	require.Len(t, snap.Categories, 3)
	require.Contains(t, snap.Categories, domain.CategoryFiat)
	require.Contains(t, snap.Categories, domain.CategoryCryptocoin)
	require.Contains(t, snap.Categories, domain.CategoryLeverage)

	require.Equal(t, "123.45", snap.Categories[domain.CategoryFiat].TotalValue.String())
	require.True(t, snap.NextDueAt.After(snap.FetchedAt))
	require.NoError(t, coordinator.LastError())
}

func TestCoordinatorFailureKeepsPreviousSnapshot(t *testing.T) {
	fake := &fakeBitpandaClient{assets: cryptoResponse(t), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	require.NoError(t, coordinator.Refresh(context.Background()))
	first := coordinator.Snapshot()
	firstDue := coordinator.NextDueAt()

	fake.fiatErr = errors.New("connection reset")
	require.Error(t, coordinator.Refresh(context.Background()))

	second := coordinator.Snapshot()
	require.NotNil(t, second)
	require.Equal(t, first.FetchedAt, second.FetchedAt)
	require.Equal(t, first.Categories, second.Categories)
	require.False(t, second.NextDueAt.Before(firstDue))
	require.Error(t, coordinator.LastError())

	// Recovery clears the error and swaps in fresh data.
	fake.fiatErr = nil
	require.NoError(t, coordinator.Refresh(context.Background()))
	require.NoError(t, coordinator.LastError())
	require.True(t, coordinator.Snapshot().FetchedAt.After(first.FetchedAt) ||
		coordinator.Snapshot().FetchedAt.Equal(first.FetchedAt))
}

func TestCoordinatorFirstCycleFailure(t *testing.T) {
	fake := &fakeBitpandaClient{assetErr: errors.New("boom"), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	require.Error(t, coordinator.Refresh(context.Background()))
	require.Nil(t, coordinator.Snapshot())
	require.False(t, coordinator.NextDueAt().IsZero())
}

func TestCoordinatorSetCategories(t *testing.T) {
	fake := &fakeBitpandaClient{assets: cryptoResponse(t), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	require.ErrorIs(t, coordinator.SetCategories(nil), domain.ErrNoCategories)

	require.NoError(t, coordinator.SetCategories([]domain.Category{domain.CategoryCryptocoin}))
	require.NoError(t, coordinator.Refresh(context.Background()))

	snap := coordinator.Snapshot()
	require.Len(t, snap.Categories, 1)
	require.Contains(t, snap.Categories, domain.CategoryCryptocoin)
}

func TestCoordinatorObserver(t *testing.T) {
	fake := &fakeBitpandaClient{assets: cryptoResponse(t), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	var seen *domain.Snapshot
	coordinator.AddObserver(func(snap *domain.Snapshot) {
		seen = snap
	})

	require.NoError(t, coordinator.Refresh(context.Background()))
	require.NotNil(t, seen)
	require.Equal(t, coordinator.Snapshot(), seen)

	// Observers are not called for failed cycles.
	seen = nil
	fake.assetErr = errors.New("boom")
	require.Error(t, coordinator.Refresh(context.Background()))
	require.Nil(t, seen)
}

func TestCoordinatorNextDueAdvancesOnFailure(t *testing.T) {
	fake := &fakeBitpandaClient{assets: cryptoResponse(t), fiat: fiatResponse()}
	coordinator := newTestCoordinator(t, fake)

	require.NoError(t, coordinator.Refresh(context.Background()))
	before := coordinator.NextDueAt()

	time.Sleep(5 * time.Millisecond)
	fake.fiatErr = errors.New("boom")
	require.Error(t, coordinator.Refresh(context.Background()))

	require.True(t, coordinator.NextDueAt().After(before))
	require.Equal(t, coordinator.NextDueAt(), coordinator.Snapshot().NextDueAt)
}
