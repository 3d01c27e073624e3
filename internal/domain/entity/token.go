package entity

// ZeroAddress represents the Ethereum zero address.
// It is used as the contract address of the native coin.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NativeSymbol is the ticker reserved for the chain's native coin.
const NativeSymbol = "MON"

// RiskLevel is the per-token risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// TokenAction is the per-token buy/hold/sell suggestion.
type TokenAction string

const (
	ActionBuy  TokenAction = "buy"
	ActionHold TokenAction = "hold"
	ActionSell TokenAction = "sell"
)

// TokenRecord is a normalized holding of a wallet: the native coin or one ERC-20 token.
type TokenRecord struct {
	Symbol           string      `json:"symbol"`
	Name             string      `json:"name"`
	Balance          float64     `json:"balance"`
	USDValue         float64     `json:"usdValue"`
	PriceChange24h   float64     `json:"priceChange24h"`
	RiskScore        RiskLevel   `json:"riskScore"`
	Recommendation   TokenAction `json:"recommendation"`
	MarketCap        float64     `json:"marketCap"`
	Address          string      `json:"address"`
	TotalSupply      *float64    `json:"totalSupply,omitempty"`
	Decimals         uint8       `json:"decimals"`
	FormattedBalance string      `json:"formattedBalance,omitempty"`
}

// IsNative reports whether the record describes the native coin.
func (t TokenRecord) IsNative() bool {
	return t.Address == ZeroAddress
}
