package port

import (
	"context"
	"math/big"

	"portfolio_analyzer/internal/domain/entity"
)

// BlockchainClient defines the reads the portfolio aggregation needs from a chain RPC endpoint.
// Amounts are returned in the smallest unit; callers apply decimals.
type BlockchainClient interface {
	// GetNativeBalance fetches the native coin balance of a wallet.
	GetNativeBalance(ctx context.Context, walletAddress string) (*big.Int, error)

	// GetTokenBalance calls balanceOf(walletAddress) on the token contract.
	GetTokenBalance(ctx context.Context, tokenAddress string, walletAddress string) (*big.Int, error)

	// GetTokenDecimals calls decimals() on the token contract.
	GetTokenDecimals(ctx context.Context, tokenAddress string) (uint8, error)

	// GetTokenSymbol calls symbol() on the token contract.
	GetTokenSymbol(ctx context.Context, tokenAddress string) (string, error)

	// GetTokenName calls name() on the token contract.
	GetTokenName(ctx context.Context, tokenAddress string) (string, error)

	// GetTokenTotalSupply calls totalSupply() on the token contract.
	GetTokenTotalSupply(ctx context.Context, tokenAddress string) (*big.Int, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}
