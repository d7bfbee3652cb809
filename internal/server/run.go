package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/setavenger/raito-oracle/internal/config"
	"github.com/setavenger/raito-oracle/internal/logging"
)

// NewRouter wires the routes. Split from RunServer so tests can drive the
// router through httptest.
func NewRouter(api *ApiHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/healthz", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1", MetricsMiddleware, SecurityHeadersMiddleware)
	v1.GET("/blocks", api.GetBlocks)
	v1.GET("/blocks/:identifier", api.GetBlockByIdentifier)
	v1.GET("/blocks/:identifier/proof", api.GetBlockProof)
	v1.GET("/tx/:txid", api.GetTransactionStatus)
	v1.GET("/header/:hash", api.GetHeaderStatus)

	return router
}

func RunServer(api *ApiHandler) error {
	router := NewRouter(api)

	logging.L.Info().Msgf("HTTP server listening on %s", config.HTTPHost)
	return router.Run(config.HTTPHost)
}
