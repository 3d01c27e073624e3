package service

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"portfolio_analyzer/internal/app/analyzer"
	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/domain/entity"
	"portfolio_analyzer/internal/pkg/metrics"
	"portfolio_analyzer/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const (
	defaultNativeDecimals = 18

	// The native coin has no contract to ask, so its market figures are fixed.
	nativeMarketCap   = 50_000_000.0
	nativeTotalSupply = 1_000_000_000.0
)

var _ port.PortfolioService = (*PortfolioServiceImpl)(nil)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	client                port.BlockchainClient
	tokenProvider         port.TokenProvider
	walletProvider        port.WalletProvider
	tokenPriceSvc         port.TokenPriceService
	logger                port.Logger
	maxConcurrentRoutines int
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
// walletProvider may be nil when no watchlist is configured.
func NewPortfolioService(
	client port.BlockchainClient,
	tp port.TokenProvider,
	wp port.WalletProvider,
	tps port.TokenPriceService,
	l port.Logger,
	maxRoutines int,
) *PortfolioServiceImpl {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &PortfolioServiceImpl{
		client:                client,
		tokenProvider:         tp,
		walletProvider:        wp,
		tokenPriceSvc:         tps,
		logger:                l,
		maxConcurrentRoutines: maxRoutines,
	}
}

// tokenRead is the outcome of the contract reads for one allowlisted token.
type tokenRead struct {
	balance entity.TokenBalance
	err     error
}

// FetchPortfolio returns the wallet's non-zero holdings, native coin first.
func (s *PortfolioServiceImpl) FetchPortfolio(ctx context.Context, walletAddress string) ([]entity.TokenRecord, error) {
	result := s.FetchPortfolioResult(ctx, walletAddress)
	if result.Status == entity.FetchFailure {
		return nil, result.Err
	}
	return result.Tokens, nil
}

// FetchPortfolioResult aggregates the native balance and every allowlisted token.
// Token reads run concurrently; records are assembled in allowlist order afterwards.
func (s *PortfolioServiceImpl) FetchPortfolioResult(ctx context.Context, walletAddress string) entity.FetchResult {
	def := s.client.Definition()
	result := entity.FetchResult{
		WalletAddress: walletAddress,
		Tokens:        []entity.TokenRecord{},
	}

	s.logger.Debug("Fetching portfolio", "wallet", walletAddress, "network", def.Name)

	nativeRaw, err := s.client.GetNativeBalance(ctx, walletAddress)
	if err != nil {
		s.logger.Error("Failed to fetch native balance", "wallet", walletAddress, "network", def.Name, "error", err)
		return s.failed(result, def, err)
	}

	tokenAddresses, err := s.tokenProvider.GetTokenAddresses()
	if err != nil {
		s.logger.Error("Failed to load token allowlist", "wallet", walletAddress, "error", err)
		return s.failed(result, def, fmt.Errorf("failed to load token allowlist: %w", err))
	}

	reads := make([]tokenRead, len(tokenAddresses))
	var g errgroup.Group
	g.SetLimit(s.maxConcurrentRoutines)
	for i, tokenAddress := range tokenAddresses {
		g.Go(func() error {
			balance, err := s.readToken(ctx, tokenAddress, walletAddress)
			reads[i] = tokenRead{balance: balance, err: err}
			return nil
		})
	}
	_ = g.Wait()

	nativeDecimals := uint8(defaultNativeDecimals)
	if def.Decimals > 0 {
		nativeDecimals = uint8(def.Decimals)
	}
	if record, ok := s.nativeRecord(nativeRaw, nativeDecimals, def); ok {
		result.Tokens = append(result.Tokens, record)
	}

	for i, read := range reads {
		if read.err != nil {
			s.logger.Warn("Skipping token after failed read",
				"wallet", walletAddress, "token_address", tokenAddresses[i], "error", read.err)
			metrics.TokenFetchFailures.WithLabelValues(tokenAddresses[i]).Inc()
			result.Errors = append(result.Errors, entity.PortfolioError{
				WalletAddress: walletAddress,
				NetworkName:   def.Name,
				ChainID:       strconv.FormatUint(def.ChainID, 10),
				TokenAddress:  tokenAddresses[i],
				Message:       read.err.Error(),
			})
			continue
		}
		if record, ok := s.tokenRecord(read.balance); ok {
			result.Tokens = append(result.Tokens, record)
		}
	}

	result.Status = entity.FetchSuccess
	if len(result.Errors) > 0 {
		result.Status = entity.FetchPartial
	}
	metrics.PortfolioFetches.WithLabelValues(string(result.Status)).Inc()

	s.logger.Info("Portfolio fetched",
		"wallet", walletAddress, "status", result.Status,
		"tokens", len(result.Tokens), "failed_tokens", len(result.Errors))
	return result
}

func (s *PortfolioServiceImpl) failed(result entity.FetchResult, def entity.NetworkDefinition, cause error) entity.FetchResult {
	result.Status = entity.FetchFailure
	result.Err = &entity.AggregationError{
		WalletAddress: result.WalletAddress,
		NetworkName:   def.Name,
		Cause:         cause,
	}
	metrics.PortfolioFetches.WithLabelValues(string(entity.FetchFailure)).Inc()
	return result
}

// readToken issues the five contract reads of one token concurrently.
// totalSupply is optional and falls back to zero.
func (s *PortfolioServiceImpl) readToken(ctx context.Context, tokenAddress, walletAddress string) (entity.TokenBalance, error) {
	tb := entity.TokenBalance{
		WalletAddress: walletAddress,
		TokenAddress:  tokenAddress,
		TotalSupply:   new(big.Int),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		amount, err := s.client.GetTokenBalance(gctx, tokenAddress, walletAddress)
		if err != nil {
			return fmt.Errorf("balanceOf: %w", err)
		}
		tb.Amount = amount
		return nil
	})
	g.Go(func() error {
		decimals, err := s.client.GetTokenDecimals(gctx, tokenAddress)
		if err != nil {
			return fmt.Errorf("decimals: %w", err)
		}
		tb.Decimals = decimals
		return nil
	})
	g.Go(func() error {
		symbol, err := s.client.GetTokenSymbol(gctx, tokenAddress)
		if err != nil {
			return fmt.Errorf("symbol: %w", err)
		}
		tb.Symbol = symbol
		return nil
	})
	g.Go(func() error {
		name, err := s.client.GetTokenName(gctx, tokenAddress)
		if err != nil {
			return fmt.Errorf("name: %w", err)
		}
		tb.Name = name
		return nil
	})

	// Not part of the group: a failure here must not cancel the required reads.
	supplyDone := make(chan struct{})
	go func() {
		defer close(supplyDone)
		supply, err := s.client.GetTokenTotalSupply(ctx, tokenAddress)
		if err != nil {
			s.logger.Debug("totalSupply unavailable, using zero", "token_address", tokenAddress, "error", err)
			return
		}
		tb.TotalSupply = supply
	}()

	err := g.Wait()
	<-supplyDone
	if err != nil {
		return entity.TokenBalance{}, err
	}
	return tb, nil
}

func (s *PortfolioServiceImpl) nativeRecord(raw *big.Int, decimals uint8, def entity.NetworkDefinition) (entity.TokenRecord, bool) {
	balance := utils.ScaleAmount(raw, decimals)
	if balance <= 0 {
		return entity.TokenRecord{}, false
	}

	name := def.NativeName
	if name == "" {
		name = entity.NativeSymbol
	}
	totalSupply := nativeTotalSupply

	return entity.TokenRecord{
		Symbol:           entity.NativeSymbol,
		Name:             name,
		Balance:          balance,
		USDValue:         balance * s.tokenPriceSvc.GetPriceUSD(entity.NativeSymbol),
		PriceChange24h:   s.tokenPriceSvc.PriceChange24h(entity.NativeSymbol),
		RiskScore:        entity.RiskLow,
		Recommendation:   analyzer.TokenRecommendation(balance, entity.NativeSymbol),
		MarketCap:        nativeMarketCap,
		Address:          entity.ZeroAddress,
		TotalSupply:      &totalSupply,
		Decimals:         decimals,
		FormattedBalance: utils.FormatBigInt(raw, decimals),
	}, true
}

// tokenRecord normalizes a token read. Price draws happen in field order:
// USD value, 24h change, market cap.
func (s *PortfolioServiceImpl) tokenRecord(tb entity.TokenBalance) (entity.TokenRecord, bool) {
	balance := utils.ScaleAmount(tb.Amount, tb.Decimals)
	if balance <= 0 {
		s.logger.Debug("Skipping zero balance", "wallet", tb.WalletAddress, "token", tb.Symbol)
		return entity.TokenRecord{}, false
	}
	totalSupply := utils.ScaleAmount(tb.TotalSupply, tb.Decimals)

	usdValue := balance * s.tokenPriceSvc.GetPriceUSD(tb.Symbol)
	priceChange := s.tokenPriceSvc.PriceChange24h(tb.Symbol)
	marketCap := totalSupply * s.tokenPriceSvc.GetPriceUSD(tb.Symbol)

	return entity.TokenRecord{
		Symbol:           tb.Symbol,
		Name:             tb.Name,
		Balance:          balance,
		USDValue:         usdValue,
		PriceChange24h:   priceChange,
		RiskScore:        analyzer.TokenRisk(balance, totalSupply, tb.Symbol),
		Recommendation:   analyzer.TokenRecommendation(balance, tb.Symbol),
		MarketCap:        marketCap,
		Address:          tb.TokenAddress,
		TotalSupply:      &totalSupply,
		Decimals:         tb.Decimals,
		FormattedBalance: utils.FormatBigInt(tb.Amount, tb.Decimals),
	}, true
}

// AnalyzeWallet validates the address, fetches the holdings and runs the analyzer over them.
func (s *PortfolioServiceImpl) AnalyzeWallet(ctx context.Context, walletAddress string) (*entity.PortfolioReport, error) {
	walletAddress = utils.NormalizeAddress(walletAddress)
	if !utils.ValidateAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidAddress, walletAddress)
	}

	start := time.Now()
	defer func() { metrics.AnalysisDuration.Observe(time.Since(start).Seconds()) }()

	result := s.FetchPortfolioResult(ctx, walletAddress)
	if result.Status == entity.FetchFailure {
		return nil, result.Err
	}

	return &entity.PortfolioReport{
		WalletAddress:   walletAddress,
		NetworkName:     s.client.Definition().Name,
		Status:          result.Status,
		Tokens:          result.Tokens,
		Snapshot:        analyzer.Summarize(result.Tokens),
		Risk:            analyzer.AnalyzeRisk(result.Tokens),
		Recommendations: analyzer.GenerateRecommendations(result.Tokens),
		Errors:          result.Errors,
	}, nil
}

// AnalyzeWatchlist analyzes every wallet of the watchlist. Reports keep the file order;
// wallets that could not be analyzed are reported as errors instead.
func (s *PortfolioServiceImpl) AnalyzeWatchlist(ctx context.Context) ([]entity.PortfolioReport, []entity.PortfolioError) {
	if s.walletProvider == nil {
		return nil, []entity.PortfolioError{{Message: "no watchlist configured"}}
	}

	wallets, err := s.walletProvider.GetWallets()
	if err != nil {
		s.logger.Error("Failed to get wallets", "error", err)
		return nil, []entity.PortfolioError{{Message: fmt.Sprintf("failed to load wallets: %v", err)}}
	}

	reports := make([]*entity.PortfolioReport, len(wallets))
	errs := make([]error, len(wallets))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrentRoutines)
	for i, w := range wallets {
		g.Go(func() error {
			reports[i], errs[i] = s.AnalyzeWallet(ctx, w.Address)
			return nil
		})
	}
	_ = g.Wait()

	def := s.client.Definition()
	out := make([]entity.PortfolioReport, 0, len(wallets))
	var portfolioErrors []entity.PortfolioError
	for i, w := range wallets {
		if errs[i] != nil {
			s.logger.Warn("Failed to analyze watchlist wallet", "wallet", w.Address, "error", errs[i])
			portfolioErrors = append(portfolioErrors, entity.PortfolioError{
				WalletAddress: w.Address,
				NetworkName:   def.Name,
				ChainID:       strconv.FormatUint(def.ChainID, 10),
				Message:       errs[i].Error(),
			})
			continue
		}
		out = append(out, *reports[i])
	}

	s.logger.Info("Watchlist analyzed", "wallets", len(wallets), "reports", len(out), "failed", len(portfolioErrors))
	return out, portfolioErrors
}
