package analyzer

import "portfolio_analyzer/internal/domain/entity"

// dayChangeRate is the synthetic daily change applied to the total value.
// It stands in for a historical price lookup and is not derived from the tokens' 24h changes.
const dayChangeRate = 0.02

// Summarize computes the value snapshot of a token list.
func Summarize(tokens []entity.TokenRecord) entity.PortfolioSnapshot {
	total := totalValue(tokens)
	dayChange := total * dayChangeRate

	snapshot := entity.PortfolioSnapshot{
		TotalValue: total,
		DayChange:  dayChange,
		TokenCount: len(tokens),
	}
	if total > 0 {
		snapshot.DayChangePercent = dayChange / total * 100
	}
	return snapshot
}

func totalValue(tokens []entity.TokenRecord) float64 {
	var total float64
	for _, t := range tokens {
		total += t.USDValue
	}
	return total
}

// share returns the token's fraction of the portfolio value, 0 for an empty portfolio.
func share(token entity.TokenRecord, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return token.USDValue / total
}
