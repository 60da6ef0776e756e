package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bitpanda_watcher/internal/config"
	"bitpanda_watcher/internal/pkg/utils"
	"bitpanda_watcher/internal/port"
)

// SetupRouter configures the Gin engine with the wallet routes, health and
// metrics endpoints.
func SetupRouter(provider port.SnapshotProvider, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(utils.ZapLoggerMiddleware(logger), gin.Recovery())
	router.Use(cors.Default())

	handler := NewWalletHandler(provider, cfg, logger)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/snapshot", handler.GetSnapshotHandler)
		v1.GET("/wallets/:category", handler.GetCategoryHandler)
	}

	router.GET("/healthz", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
