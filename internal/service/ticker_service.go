package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"bitpanda_watcher/internal/client"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/port"
)

const tickerCacheKey = "ticker"

// tickerServiceImpl implements the port.TickerService interface. It caches
// the last successful ticker fetch for a TTL below the poll interval, so
// every scheduled cycle gets fresh prices while selection-change refresh
// bursts within the TTL reuse the last table.
type tickerServiceImpl struct {
	client client.BitpandaClient
	cache  *cache.Cache
	logger *zap.Logger
}

// NewTickerService creates a new instance of tickerServiceImpl.
func NewTickerService(bitpandaClient client.BitpandaClient, cacheTTL time.Duration, logger *zap.Logger) port.TickerService {
	return &tickerServiceImpl{
		client: bitpandaClient,
		cache:  cache.New(cacheTTL, 10*time.Minute),
		logger: logger.Named("TickerService"),
	}
}

// Current returns the price table for the current cycle, fetching it when the
// cached one has expired.
func (s *tickerServiceImpl) Current(ctx context.Context) (domain.TickerTable, error) {
	if cached, found := s.cache.Get(tickerCacheKey); found {
		if table, ok := cached.(domain.TickerTable); ok {
			s.logger.Debug("Serving ticker table from cache", zap.Int("symbolCount", len(table)))
			return table, nil
		}
	}

	table, err := s.client.GetTicker(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(tickerCacheKey, table, cache.DefaultExpiration)
	s.logger.Debug("Fetched fresh ticker table", zap.Int("symbolCount", len(table)))
	return table, nil
}
