package restapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/port"
)

// CategorySummary is the wire form of one aggregated wallet category.
// Holdings are omitted for fiat, where the total already is the balance.
type CategorySummary struct {
	TotalValue decimal.Decimal  `json:"total_value"`
	Holdings   []domain.Holding `json:"holdings,omitempty"`
}

// SnapshotResponse is the wire form of the latest snapshot.
type SnapshotResponse struct {
	Currency    string                     `json:"currency"`
	Categories  map[string]CategorySummary `json:"categories"`
	LastUpdate  string                     `json:"last_update"`
	NextUpdate  string                     `json:"next_update"`
	UpdateError string                     `json:"update_error,omitempty"`
}

// WalletHandler serves the aggregated wallet snapshot over HTTP.
type WalletHandler struct {
	provider port.SnapshotProvider
	cfg      *config.Config
	logger   *zap.Logger
}

// NewWalletHandler creates a new instance of WalletHandler.
func NewWalletHandler(provider port.SnapshotProvider, cfg *config.Config, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		provider: provider,
		cfg:      cfg,
		logger:   logger.Named("WalletHandler"),
	}
}

// GetSnapshotHandler returns the full snapshot across all selected
// categories. Until the first successful poll cycle there is nothing to
// serve, which is a 503 rather than an empty document.
func (h *WalletHandler) GetSnapshotHandler(c *gin.Context) {
	snap := h.provider.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrNotReady.Error()})
		return
	}

	resp := SnapshotResponse{
		Currency:   h.cfg.Poller.Currency,
		Categories: make(map[string]CategorySummary, len(snap.Categories)),
		LastUpdate: snap.FetchedAt.UTC().Format(timeFormat),
		NextUpdate: snap.NextDueAt.UTC().Format(timeFormat),
	}
	if err := h.provider.LastError(); err != nil {
		resp.UpdateError = err.Error()
	}

	for cat, cs := range snap.Categories {
		resp.Categories[string(cat)] = summarize(cat, cs)
	}

	c.JSON(http.StatusOK, resp)
}

// GetCategoryHandler returns one category from the latest snapshot. Unknown
// category names are a 400; known but unselected ones a 404.
func (h *WalletHandler) GetCategoryHandler(c *gin.Context) {
	raw := c.Param("category")
	cat, ok := domain.ParseCategory(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown wallet category: " + raw})
		return
	}

	snap := h.provider.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrNotReady.Error()})
		return
	}

	cs, ok := snap.Categories[cat]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not selected: " + string(cat)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":    string(cat),
		"currency":    h.cfg.Poller.Currency,
		"snapshot":    summarize(cat, cs),
		"last_update": snap.FetchedAt.UTC().Format(timeFormat),
	})
}

// HealthHandler reports liveness plus whether a snapshot is available yet.
func (h *WalletHandler) HealthHandler(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"ready":  h.provider.Snapshot() != nil,
	}
	if next := h.provider.NextDueAt(); !next.IsZero() {
		status["next_update"] = next.UTC().Format(timeFormat)
	}
	c.JSON(http.StatusOK, status)
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// summarize converts a category snapshot to its wire form: totals rounded to
// cents and holdings ordered by converted value, largest first.
func summarize(cat domain.Category, cs domain.CategorySnapshot) CategorySummary {
	summary := CategorySummary{TotalValue: cs.TotalValue.Round(2)}
	if !cat.IsAsset() {
		return summary
	}

	holdings := append([]domain.Holding(nil), cs.Holdings...)
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].ConvertedValue.GreaterThan(holdings[j].ConvertedValue)
	})
	summary.Holdings = holdings
	return summary
}
