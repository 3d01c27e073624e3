package entity

// FetchStatus discriminates the outcome of a balance aggregation.
type FetchStatus string

const (
	// FetchSuccess means every allowlisted token was read.
	FetchSuccess FetchStatus = "success"
	// FetchPartial means the native balance was read but some tokens failed and were omitted.
	FetchPartial FetchStatus = "partial"
	// FetchFailure means the native balance query failed and nothing was produced.
	FetchFailure FetchStatus = "failure"
)

// FetchResult is the outcome of aggregating a wallet's balances.
// An empty Tokens slice with FetchSuccess means the wallet holds nothing;
// with FetchFailure it means the chain could not be queried.
type FetchResult struct {
	WalletAddress string           `json:"walletAddress"`
	Status        FetchStatus      `json:"status"`
	Tokens        []TokenRecord    `json:"tokens"`
	Errors        []PortfolioError `json:"errors,omitempty"`
	Err           error            `json:"-"`
}

// PortfolioSnapshot holds the aggregate value figures of a token list.
type PortfolioSnapshot struct {
	TotalValue       float64 `json:"totalValue"`
	DayChange        float64 `json:"dayChange"`
	DayChangePercent float64 `json:"dayChangePercent"`
	TokenCount       int     `json:"tokenCount"`
}

// PortfolioReport is the full analysis of one wallet.
type PortfolioReport struct {
	WalletAddress   string            `json:"walletAddress"`
	NetworkName     string            `json:"networkName"`
	Status          FetchStatus       `json:"status"`
	Tokens          []TokenRecord     `json:"tokens"`
	Snapshot        PortfolioSnapshot `json:"snapshot"`
	Risk            RiskReport        `json:"risk"`
	Recommendations []Recommendation  `json:"recommendations"`
	Errors          []PortfolioError  `json:"errors,omitempty"`
}
