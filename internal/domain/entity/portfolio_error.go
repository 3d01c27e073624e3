package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidAddress is returned when a wallet or token address is not a 0x-prefixed 40 hex digit string.
var ErrInvalidAddress = errors.New("invalid wallet address format")

// PortfolioError represents a recoverable failure for a single token of a wallet.
// The token is omitted from the result; the rest of the portfolio is unaffected.
type PortfolioError struct {
	WalletAddress string `json:"walletAddress"`
	NetworkName   string `json:"networkName,omitempty"`
	ChainID       string `json:"chainId,omitempty"`
	TokenSymbol   string `json:"tokenSymbol,omitempty"`
	TokenAddress  string `json:"tokenAddress,omitempty"`
	IsNative      bool   `json:"isNative,omitempty"`
	Message       string `json:"message"`
}

// AggregationError is the fatal-to-call failure: the native balance could not be read,
// so no portfolio can be produced for the wallet.
type AggregationError struct {
	WalletAddress string
	NetworkName   string
	Cause         error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to fetch portfolio for %s on %s: %v", e.WalletAddress, e.NetworkName, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}
