package port

import (
	"context"

	"portfolio_analyzer/internal/domain/entity"
)

// PortfolioService defines the interface for fetching and analyzing wallet portfolios.
type PortfolioService interface {
	// FetchPortfolio returns the wallet's non-zero holdings, native coin first.
	// It fails with *entity.AggregationError when the native balance cannot be read.
	FetchPortfolio(ctx context.Context, walletAddress string) ([]entity.TokenRecord, error)

	// FetchPortfolioResult is FetchPortfolio with the outcome reported as a discriminated result.
	FetchPortfolioResult(ctx context.Context, walletAddress string) entity.FetchResult

	// AnalyzeWallet validates the address, fetches the holdings and computes the full report.
	AnalyzeWallet(ctx context.Context, walletAddress string) (*entity.PortfolioReport, error)

	// AnalyzeWatchlist analyzes every wallet of the configured watchlist.
	AnalyzeWatchlist(ctx context.Context) ([]entity.PortfolioReport, []entity.PortfolioError)
}
