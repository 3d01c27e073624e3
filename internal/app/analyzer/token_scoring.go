package analyzer

import "portfolio_analyzer/internal/domain/entity"

const (
	highConcentration   = 0.05
	mediumConcentration = 0.01

	nativeHoldThreshold = 1000.0
	tokenSellThreshold  = 10000.0
	tokenBuyThreshold   = 100.0
)

// lowRiskSymbols short-circuit the concentration check.
var lowRiskSymbols = map[string]struct{}{
	entity.NativeSymbol: {},
	"USDC":              {},
	"USDT":              {},
}

// TokenRisk classifies a holding by the share of the total supply the wallet owns.
// A zero total supply has no meaningful concentration and is classified low.
func TokenRisk(balance, totalSupply float64, symbol string) entity.RiskLevel {
	if _, ok := lowRiskSymbols[symbol]; ok {
		return entity.RiskLow
	}
	if totalSupply <= 0 {
		return entity.RiskLow
	}
	concentration := balance / totalSupply
	switch {
	case concentration > highConcentration:
		return entity.RiskHigh
	case concentration > mediumConcentration:
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

// TokenRecommendation derives the buy/hold/sell action from the held amount.
func TokenRecommendation(balance float64, symbol string) entity.TokenAction {
	if symbol == entity.NativeSymbol {
		if balance > nativeHoldThreshold {
			return entity.ActionHold
		}
		return entity.ActionBuy
	}
	switch {
	case balance > tokenSellThreshold:
		return entity.ActionSell
	case balance < tokenBuyThreshold:
		return entity.ActionBuy
	default:
		return entity.ActionHold
	}
}
