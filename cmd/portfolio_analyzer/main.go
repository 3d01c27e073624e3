package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_analyzer/internal/app/service"
	"portfolio_analyzer/internal/infrastructure/configloader"
	clientprovider "portfolio_analyzer/internal/infrastructure/network/client"
	networkdefinition "portfolio_analyzer/internal/infrastructure/network/definition"
	"portfolio_analyzer/internal/infrastructure/restapi"
	"portfolio_analyzer/internal/infrastructure/tokenloader"
	"portfolio_analyzer/internal/infrastructure/walletloader"
	"portfolio_analyzer/internal/pkg/logger"
	"portfolio_analyzer/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	logger.InitFromZap(zapLogger)
	appLogger := logger.NewSlogAdapter()
	logger.Info("Configuration loaded", "path", configPath, "log_level", cfg.Logging.Level)

	metrics.MustRegisterMetrics()

	netProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, networkdefinition.Overrides{
		RPCURL:          cfg.Network.RPCURL,
		FallbackRPCURLs: cfg.Network.FallbackRPCURLs,
		ChainID:         cfg.Network.ChainID,
	})
	netDef := netProvider.GetNetworkDefinition()

	rpcHTTPClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: cfg.Performance.MaxConcurrentRoutines,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	evmClient, err := clientprovider.NewEVMClient(netDef, rpcHTTPClient, clientprovider.Options{
		ConnectionTimeout: cfg.ConnectionTimeout(),
		RPCCallTimeout:    cfg.RPCCallTimeout(),
		RequestsPerSecond: cfg.RPCClient.RateLimit,
		Burst:             cfg.RPCClient.BurstLimit,
		VerifyChainID:     cfg.Network.VerifyChainID,
	})
	if err != nil {
		logger.Fatal("Failed to connect to chain RPC", "network", netDef.Name, "error", err)
	}
	defer evmClient.Close()
	logger.Info("Chain RPC client ready", "network", netDef.Name, "rpc_url", evmClient.RPCURL())

	tokenProvider, err := tokenloader.NewTokenLoader(cfg.Network.TokensFile, netDef.TokenAddresses, appLogger)
	if err != nil {
		logger.Fatal("Failed to load token allowlist", "file", cfg.Network.TokensFile, "error", err)
	}
	walletProvider := walletloader.NewWalletFileLoader(cfg.Wallets.File, logger.Info)

	priceService := service.NewTokenPriceService(
		service.NewRandomSource(cfg.Pricing.RandomSeed),
		cfg.Pricing.Overrides,
		appLogger,
	)
	portfolioService := service.NewPortfolioService(
		evmClient,
		tokenProvider,
		walletProvider,
		priceService,
		appLogger,
		cfg.Performance.MaxConcurrentRoutines,
	)
	tracker := service.NewSearchTracker(cfg.SessionTTL(), cfg.SessionCleanupInterval(), appLogger)

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	handler := restapi.NewPortfolioHandler(portfolioService, tracker, appLogger)
	router := restapi.SetupRouter(handler, zapLogger, restapi.RouterOptions{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerSpecPath: cfg.Swagger.SpecPath,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Portfolio analyzer stopped")
}
