package port

// TokenProvider defines the interface for the ERC-20 allowlist checked for each wallet.
type TokenProvider interface {
	// GetTokenAddresses returns the contract addresses in the order they must be reported.
	GetTokenAddresses() ([]string, error)
}

// TokenPriceService provides USD prices per token symbol.
type TokenPriceService interface {
	// GetPriceUSD returns the price of one unit of the token. Unknown symbols may
	// yield a different value on every call.
	GetPriceUSD(symbol string) float64
	// PriceChange24h returns the 24h price change in percent for the token.
	PriceChange24h(symbol string) float64
}

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 satisfy it.
type RandomSource interface {
	Float64() float64
}
