package entity

// RecommendationType is the kind of portfolio-level suggestion.
type RecommendationType string

const (
	RecommendBuy       RecommendationType = "buy"
	RecommendSell      RecommendationType = "sell"
	RecommendHold      RecommendationType = "hold"
	RecommendDiversify RecommendationType = "diversify"
)

// Recommendation is a natural-language suggestion derived from a token list.
// Confidence is a 0-100 heuristic, not a probability.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Token       string             `json:"token,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Confidence  float64            `json:"confidence"`
	Reasoning   []string           `json:"reasoning"`
}

// RiskMetric is one 0-100 sub-score of a RiskReport.
type RiskMetric struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Band        string  `json:"band"`
	Description string  `json:"description"`
}

// RiskReport aggregates the risk sub-scores of a portfolio.
type RiskReport struct {
	Metrics      []RiskMetric `json:"metrics"`
	OverallScore int          `json:"overallScore"`
}
