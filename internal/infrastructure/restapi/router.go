package restapi

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const swaggerSpecRoute = "/docs/swagger.yaml"

// RouterOptions configures the cross-cutting parts of the router.
type RouterOptions struct {
	// AllowedOrigins lists the CORS origins; empty or "*" allows any origin.
	AllowedOrigins  []string
	SwaggerEnabled  bool
	SwaggerSpecPath string
}

// SetupRouter wires the middleware and routes into a new Gin engine.
func SetupRouter(portfolioHandler *PortfolioHandler, zapLogger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(corsMiddleware(opts.AllowedOrigins))
	router.Use(RequestID())
	router.Use(ZapLogger(zapLogger))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/addresses/:address/validate", portfolioHandler.ValidateAddressHandler)
		v1.GET("/portfolios", portfolioHandler.GetWatchlistPortfoliosHandler)
		v1.GET("/portfolios/:walletAddress", portfolioHandler.GetWalletPortfolioHandler)
		v1.POST("/sessions/:sessionID/search", portfolioHandler.SearchHandler)
		v1.GET("/sessions/:sessionID", portfolioHandler.GetSessionHandler)
	}

	if opts.SwaggerEnabled && opts.SwaggerSpecPath != "" {
		router.StaticFile(swaggerSpecRoute, opts.SwaggerSpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecRoute)))
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cors.New(cfg)
}
