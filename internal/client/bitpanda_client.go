package client

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BitpandaClient defines the interface for interacting with the Bitpanda API.
type BitpandaClient interface {
	// GetTicker fetches the public price table. No credential is required.
	GetTicker(ctx context.Context) (domain.TickerTable, error)

	// GetAssetWallets fetches the combined response bundling every non-fiat
	// asset category.
	GetAssetWallets(ctx context.Context) (*entity.AssetWalletsResponse, error)

	// GetFiatWallets fetches the fiat wallet list.
	GetFiatWallets(ctx context.Context) (*entity.FiatWalletsResponse, error)

	// ValidateAPIKey issues a lightweight authenticated request. It returns
	// nil for a usable credential, entity.ErrInvalidAPIKey when Bitpanda
	// answers 401, and a wrapped entity.ErrValidationFailed for anything else
	// so callers can show an accurate message.
	ValidateAPIKey(ctx context.Context) error
}

// bitpandaClientImpl is the fasthttp implementation of BitpandaClient.
type bitpandaClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewBitpandaClient creates a new instance of bitpandaClientImpl.
func NewBitpandaClient(cfg config.BitpandaConfig, logger *zap.Logger) BitpandaClient {
	return &bitpandaClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstLimit),
		logger:  logger.Named("BitpandaClient"),
	}
}

// doGet issues one GET request and returns the body and status code. The
// returned body is a copy, valid after the fasthttp response is released.
func (c *bitpandaClientImpl) doGet(ctx context.Context, path string, authenticated bool) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if authenticated {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to Bitpanda", zap.String("url", requestURL), zap.Error(err))
			return nil, 0, errors.Wrapf(err, "failed to execute request to %s", requestURL)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to Bitpanda (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, 0, errors.Wrapf(err, "failed to execute request to %s with default timeout", requestURL)
		}
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

// GetTicker implements the BitpandaClient interface.
func (c *bitpandaClientImpl) GetTicker(ctx context.Context) (domain.TickerTable, error) {
	body, status, err := c.doGet(ctx, "/ticker", false)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		c.logger.Error("Bitpanda ticker request failed", zap.Int("statusCode", status))
		return nil, errors.Errorf("Bitpanda ticker request failed with status %d", status)
	}

	var table domain.TickerTable
	if err := json.Unmarshal(body, &table); err != nil {
		c.logger.Error("Failed to unmarshal Bitpanda ticker response", zap.Error(err))
		return nil, errors.Wrap(err, "failed to unmarshal ticker response")
	}

	c.logger.Debug("Fetched ticker table", zap.Int("symbolCount", len(table)))
	return table, nil
}

// GetAssetWallets implements the BitpandaClient interface.
func (c *bitpandaClientImpl) GetAssetWallets(ctx context.Context) (*entity.AssetWalletsResponse, error) {
	body, status, err := c.doGet(ctx, "/asset-wallets", true)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		c.logger.Error("Bitpanda asset-wallets request failed", zap.Int("statusCode", status))
		return nil, errors.Errorf("Bitpanda asset-wallets request failed with status %d", status)
	}

	var resp entity.AssetWalletsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to unmarshal Bitpanda asset-wallets response", zap.Error(err))
		return nil, errors.Wrap(err, "failed to unmarshal asset-wallets response")
	}

	c.logger.Debug("Fetched asset wallets", zap.Int("attributeCount", len(resp.Data.Attributes)))
	return &resp, nil
}

// GetFiatWallets implements the BitpandaClient interface.
func (c *bitpandaClientImpl) GetFiatWallets(ctx context.Context) (*entity.FiatWalletsResponse, error) {
	body, status, err := c.doGet(ctx, "/fiatwallets", true)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		c.logger.Error("Bitpanda fiatwallets request failed", zap.Int("statusCode", status))
		return nil, errors.Errorf("Bitpanda fiatwallets request failed with status %d", status)
	}

	var resp entity.FiatWalletsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to unmarshal Bitpanda fiatwallets response", zap.Error(err))
		return nil, errors.Wrap(err, "failed to unmarshal fiatwallets response")
	}

	c.logger.Debug("Fetched fiat wallets", zap.Int("walletCount", len(resp.Data)))
	return &resp, nil
}

// ValidateAPIKey implements the BitpandaClient interface.
func (c *bitpandaClientImpl) ValidateAPIKey(ctx context.Context) error {
	body, status, err := c.doGet(ctx, "/asset-wallets", true)
	if err != nil {
		return errors.Wrap(domain.ErrValidationFailed, err.Error())
	}

	switch {
	case status == fasthttp.StatusUnauthorized:
		c.logger.Warn("Bitpanda rejected the API key", zap.Int("statusCode", status))
		return domain.ErrInvalidAPIKey
	case status != fasthttp.StatusOK:
		c.logger.Error("Unexpected status during API key validation", zap.Int("statusCode", status))
		return errors.Wrapf(domain.ErrValidationFailed, "unexpected status %d", status)
	}

	var probe map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return errors.Wrap(domain.ErrValidationFailed, "unrecognized response payload")
	}
	if _, ok := probe["data"]; !ok {
		c.logger.Error("API key validation response is missing the data key")
		return errors.Wrap(domain.ErrValidationFailed, "response payload missing data")
	}
	return nil
}
