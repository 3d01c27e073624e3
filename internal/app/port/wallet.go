package port

import "portfolio_analyzer/internal/domain/entity"

// WalletProvider defines the interface for fetching the watchlist wallet addresses.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}
