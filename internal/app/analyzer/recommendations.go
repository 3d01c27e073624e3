package analyzer

import (
	"fmt"
	"math"

	"portfolio_analyzer/internal/domain/entity"
)

// MaxRecommendations caps the list returned by GenerateRecommendations.
const MaxRecommendations = 4

const (
	gainerThreshold      = 5.0
	gainerMaxShare       = 0.3
	declinerThreshold    = -10.0
	nativeOverweight     = 0.8
	nativeUnderweight    = 0.2
	nativeUnderweightMin = 2
)

// GenerateRecommendations evaluates the recommendation rules in a fixed order and
// returns at most MaxRecommendations of them. Each rule fires at most once.
func GenerateRecommendations(tokens []entity.TokenRecord) []entity.Recommendation {
	recs := make([]entity.Recommendation, 0, MaxRecommendations)
	total := totalValue(tokens)

	switch n := len(tokens); {
	case n == 1:
		recs = append(recs, entity.Recommendation{
			Type:        entity.RecommendDiversify,
			Title:       "Diversify your portfolio",
			Description: "Your portfolio consists of only one token, which increases risk",
			Confidence:  85,
			Reasoning: []string{
				"Single token concentration is risky",
				"Consider adding stablecoins for stability",
				"Add tokens from different sectors",
			},
		})
	case n > 1 && n < 3:
		recs = append(recs, entity.Recommendation{
			Type:        entity.RecommendDiversify,
			Title:       "Add more diversification",
			Description: "Consider adding 2-3 more tokens to reduce concentration risk",
			Confidence:  70,
			Reasoning: []string{
				"Portfolio could benefit from more tokens",
				"Reduce single-token risk exposure",
				"Better risk-adjusted returns possible",
			},
		})
	}

	if t, ok := largestHighRisk(tokens); ok {
		s := share(t, total)
		recs = append(recs, entity.Recommendation{
			Type:        entity.RecommendSell,
			Token:       t.Symbol,
			Title:       fmt.Sprintf("Reduce %s exposure", t.Symbol),
			Description: "High risk token with significant portfolio allocation",
			Confidence:  math.Min(90, 60+s*100),
			Reasoning: []string{
				fmt.Sprintf("%s has high risk score", t.Symbol),
				fmt.Sprintf("Represents %.1f%% of portfolio", s*100),
				"Consider taking some profits",
			},
		})
	}

	if best, ok := bestPerformer(tokens); ok && best.PriceChange24h > gainerThreshold {
		if s := share(best, total); s < gainerMaxShare {
			recs = append(recs, entity.Recommendation{
				Type:        entity.RecommendBuy,
				Token:       best.Symbol,
				Title:       fmt.Sprintf("Consider increasing %s position", best.Symbol),
				Description: "Strong recent performance with room for larger allocation",
				Confidence:  65,
				Reasoning: []string{
					fmt.Sprintf("%.1f%% gain in 24h", best.PriceChange24h),
					fmt.Sprintf("Currently %.1f%% of portfolio", s*100),
					"Positive momentum indicator",
				},
			})
		}
	}

	if worst, ok := worstPerformer(tokens); ok && worst.PriceChange24h < declinerThreshold {
		recs = append(recs, entity.Recommendation{
			Type:        entity.RecommendHold,
			Token:       worst.Symbol,
			Title:       fmt.Sprintf("Monitor %s closely", worst.Symbol),
			Description: "Significant recent decline warrants careful observation",
			Confidence:  55,
			Reasoning: []string{
				fmt.Sprintf("%.1f%% decline in 24h", worst.PriceChange24h),
				"Could be a buying opportunity if fundamentals remain strong",
				"Consider dollar-cost averaging if you believe in the project",
			},
		})
	}

	if len(tokens) > 0 && !containsAny(tokens, stablecoins) {
		recs = append(recs, entity.Recommendation{
			Type:        entity.RecommendBuy,
			Title:       "Add stablecoin exposure",
			Description: "Consider allocating 10-20% to stablecoins for stability",
			Confidence:  75,
			Reasoning: []string{
				"No stablecoin exposure detected",
				"Stablecoins provide portfolio stability",
				"Good for taking profits during volatility",
			},
		})
	}

	if native, ok := findNative(tokens); ok {
		s := share(native, total)
		switch {
		case s > nativeOverweight:
			recs = append(recs, entity.Recommendation{
				Type:        entity.RecommendDiversify,
				Token:       entity.NativeSymbol,
				Title:       "Reduce MON concentration",
				Description: "High allocation to native token increases network-specific risk",
				Confidence:  80,
				Reasoning: []string{
					fmt.Sprintf("MON represents %.1f%% of portfolio", s*100),
					"Single network exposure is risky",
					"Consider diversifying to other ecosystems",
				},
			})
		case s < nativeUnderweight && len(tokens) > nativeUnderweightMin:
			recs = append(recs, entity.Recommendation{
				Type:        entity.RecommendBuy,
				Token:       entity.NativeSymbol,
				Title:       "Consider increasing MON allocation",
				Description: "Native token underweight for Monad ecosystem participation",
				Confidence:  60,
				Reasoning: []string{
					"Low exposure to native Monad token",
					"MON needed for transaction fees",
					"Potential ecosystem growth opportunities",
				},
			})
		}
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// largestHighRisk returns the first high-risk token with the highest USD value.
func largestHighRisk(tokens []entity.TokenRecord) (entity.TokenRecord, bool) {
	var (
		largest entity.TokenRecord
		found   bool
	)
	for _, t := range tokens {
		if t.RiskScore != entity.RiskHigh {
			continue
		}
		if !found || t.USDValue > largest.USDValue {
			largest, found = t, true
		}
	}
	return largest, found
}

// bestPerformer returns the first token with the highest 24h change.
func bestPerformer(tokens []entity.TokenRecord) (entity.TokenRecord, bool) {
	if len(tokens) == 0 {
		return entity.TokenRecord{}, false
	}
	best := tokens[0]
	for _, t := range tokens[1:] {
		if t.PriceChange24h > best.PriceChange24h {
			best = t
		}
	}
	return best, true
}

// worstPerformer returns the first token with the lowest 24h change.
func worstPerformer(tokens []entity.TokenRecord) (entity.TokenRecord, bool) {
	if len(tokens) == 0 {
		return entity.TokenRecord{}, false
	}
	worst := tokens[0]
	for _, t := range tokens[1:] {
		if t.PriceChange24h < worst.PriceChange24h {
			worst = t
		}
	}
	return worst, true
}

func findNative(tokens []entity.TokenRecord) (entity.TokenRecord, bool) {
	for _, t := range tokens {
		if t.Symbol == entity.NativeSymbol {
			return t, true
		}
	}
	return entity.TokenRecord{}, false
}
