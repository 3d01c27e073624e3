package analyzer

import (
	"fmt"
	"math"

	"portfolio_analyzer/internal/domain/entity"
)

const (
	MetricDiversification   = "Diversification"
	MetricVolatilityRisk    = "Volatility Risk"
	MetricLiquidityRisk     = "Liquidity Risk"
	MetricSmartContractRisk = "Smart Contract Risk"
)

const (
	BandGood = "good"
	BandFair = "fair"
	BandPoor = "poor"
)

var (
	stablecoins = map[string]struct{}{"USDC": {}, "USDT": {}, "DAI": {}}
	majorTokens = map[string]struct{}{entity.NativeSymbol: {}, "ETH": {}, "BTC": {}}
)

// AnalyzeRisk computes the four risk metrics of a token list and their rounded mean.
// Higher scores mean lower risk. An empty list scores 0 everywhere.
func AnalyzeRisk(tokens []entity.TokenRecord) entity.RiskReport {
	metrics := []entity.RiskMetric{
		newMetric(MetricDiversification, diversificationScore(tokens), diversificationDescription(tokens)),
		newMetric(MetricVolatilityRisk, volatilityScore(tokens), volatilityDescription(tokens)),
		newMetric(MetricLiquidityRisk, liquidityScore(tokens), liquidityDescription(tokens)),
		newMetric(MetricSmartContractRisk, smartContractScore(tokens), smartContractDescription(tokens)),
	}

	var sum float64
	for _, m := range metrics {
		sum += m.Score
	}

	return entity.RiskReport{
		Metrics:      metrics,
		OverallScore: int(math.Round(sum / float64(len(metrics)))),
	}
}

// ScoreBand maps a 0-100 score onto the good/fair/poor display band.
func ScoreBand(score float64) string {
	switch {
	case score >= 70:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}

func newMetric(name string, score float64, description string) entity.RiskMetric {
	return entity.RiskMetric{
		Name:        name,
		Score:       score,
		Band:        ScoreBand(score),
		Description: description,
	}
}

func diversificationScore(tokens []entity.TokenRecord) float64 {
	n := len(tokens)
	switch {
	case n == 0:
		return 0
	case n == 1:
		return 30
	case n >= 5:
		return 85
	default:
		return 50 + float64(n-2)*10
	}
}

func diversificationDescription(tokens []entity.TokenRecord) string {
	switch n := len(tokens); {
	case n > 3:
		return "Your portfolio is well diversified across different tokens"
	case n > 1:
		return "Consider adding more tokens for better diversification"
	default:
		return "Portfolio needs diversification across multiple tokens"
	}
}

func meanAbsChange(tokens []entity.TokenRecord) float64 {
	var sum float64
	for _, t := range tokens {
		sum += math.Abs(t.PriceChange24h)
	}
	return sum / float64(len(tokens))
}

func volatilityScore(tokens []entity.TokenRecord) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return clamp(100-meanAbsChange(tokens)*2, 10, 90)
}

func volatilityDescription(tokens []entity.TokenRecord) string {
	if len(tokens) == 0 {
		return "No volatility data available"
	}
	return fmt.Sprintf("Average 24h volatility: %.1f%%", meanAbsChange(tokens))
}

func liquidityScore(tokens []entity.TokenRecord) float64 {
	if len(tokens) == 0 {
		return 0
	}
	hasStable := containsAny(tokens, stablecoins)
	hasMajor := containsAny(tokens, majorTokens)
	switch {
	case hasStable && hasMajor:
		return 85
	case hasMajor:
		return 70
	default:
		return 45
	}
}

// liquidityDescription only looks at USDC and USDT, unlike the score which also counts DAI.
func liquidityDescription(tokens []entity.TokenRecord) string {
	for _, t := range tokens {
		if t.Symbol == "USDC" || t.Symbol == "USDT" {
			return "Good liquidity with stablecoin exposure"
		}
	}
	return "Consider adding stablecoins for better liquidity"
}

func smartContractScore(tokens []entity.TokenRecord) float64 {
	if len(tokens) == 0 {
		return 0
	}
	high, medium := countRisk(tokens)
	return clamp(80-float64(high)*30-float64(medium)*15, 10, 90)
}

func smartContractDescription(tokens []entity.TokenRecord) string {
	if high, _ := countRisk(tokens); high > 0 {
		return "Some tokens have higher smart contract risks"
	}
	return "Smart contract risk appears manageable"
}

func countRisk(tokens []entity.TokenRecord) (high, medium int) {
	for _, t := range tokens {
		switch t.RiskScore {
		case entity.RiskHigh:
			high++
		case entity.RiskMedium:
			medium++
		}
	}
	return high, medium
}

func containsAny(tokens []entity.TokenRecord, symbols map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := symbols[t.Symbol]; ok {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
