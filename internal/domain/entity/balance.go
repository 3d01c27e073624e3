package entity

import "math/big"

// TokenBalance holds the raw on-chain reads for one token contract and wallet.
// TotalSupply is zero when the contract did not answer totalSupply().
type TokenBalance struct {
	WalletAddress string
	TokenAddress  string
	Symbol        string
	Name          string
	Decimals      uint8
	Amount        *big.Int
	TotalSupply   *big.Int
}
