package analyzer

import (
	"testing"

	"portfolio_analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recTypes(recs []entity.Recommendation) []entity.RecommendationType {
	types := make([]entity.RecommendationType, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	return types
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(nil))
}

func TestGenerateRecommendations_SingleNativeToken(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{token("MON", 100, 0, entity.RiskLow)})

	require.Len(t, recs, 3)

	assert.Equal(t, entity.RecommendDiversify, recs[0].Type)
	assert.Equal(t, "Diversify your portfolio", recs[0].Title)
	assert.Equal(t, 85.0, recs[0].Confidence)
	assert.Empty(t, recs[0].Token)

	assert.Equal(t, entity.RecommendBuy, recs[1].Type)
	assert.Equal(t, "Add stablecoin exposure", recs[1].Title)
	assert.Equal(t, 75.0, recs[1].Confidence)

	assert.Equal(t, entity.RecommendDiversify, recs[2].Type)
	assert.Equal(t, "MON", recs[2].Token)
	assert.Equal(t, "Reduce MON concentration", recs[2].Title)
	assert.Equal(t, 80.0, recs[2].Confidence)
	assert.Equal(t, []string{
		"MON represents 100.0% of portfolio",
		"Single network exposure is risky",
		"Consider diversifying to other ecosystems",
	}, recs[2].Reasoning)
}

func TestGenerateRecommendations_HighRiskConcentration(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("XYZ", 90, 0, entity.RiskHigh),
		token("USDC", 10, 0, entity.RiskLow),
	})

	require.Len(t, recs, 2)
	assert.Equal(t, "Add more diversification", recs[0].Title)
	assert.Equal(t, 70.0, recs[0].Confidence)

	sell := recs[1]
	assert.Equal(t, entity.RecommendSell, sell.Type)
	assert.Equal(t, "XYZ", sell.Token)
	assert.Equal(t, "Reduce XYZ exposure", sell.Title)
	assert.Equal(t, "High risk token with significant portfolio allocation", sell.Description)
	assert.Equal(t, 90.0, sell.Confidence)
	assert.Equal(t, []string{
		"XYZ has high risk score",
		"Represents 90.0% of portfolio",
		"Consider taking some profits",
	}, sell.Reasoning)
}

func TestGenerateRecommendations_SellPicksLargestHighRisk(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("AAA", 10, 0, entity.RiskHigh),
		token("BBB", 30, 0, entity.RiskHigh),
		token("USDC", 60, 0, entity.RiskLow),
	})

	require.Len(t, recs, 1)
	assert.Equal(t, "BBB", recs[0].Token)
	assert.InDelta(t, 90.0, recs[0].Confidence, 1e-9)
	assert.Equal(t, "Represents 30.0% of portfolio", recs[0].Reasoning[1])

	recs = GenerateRecommendations([]entity.TokenRecord{
		token("AAA", 10, 0, entity.RiskHigh),
		token("USDC", 90, 0, entity.RiskLow),
		token("DAI", 0, 0, entity.RiskLow),
	})
	require.Len(t, recs, 1)
	assert.InDelta(t, 70.0, recs[0].Confidence, 1e-9)
}

func TestGenerateRecommendations_Gainer(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 100, 1, entity.RiskLow),
		token("USDC", 100, 0, entity.RiskLow),
		token("GAIN", 10, 12.34, entity.RiskLow),
	})

	require.Len(t, recs, 1)
	assert.Equal(t, entity.RecommendBuy, recs[0].Type)
	assert.Equal(t, "GAIN", recs[0].Token)
	assert.Equal(t, "Consider increasing GAIN position", recs[0].Title)
	assert.Equal(t, 65.0, recs[0].Confidence)
	assert.Equal(t, []string{
		"12.3% gain in 24h",
		"Currently 4.8% of portfolio",
		"Positive momentum indicator",
	}, recs[0].Reasoning)
}

func TestGenerateRecommendations_GainerTooLarge(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 100, 1, entity.RiskLow),
		token("USDC", 100, 0, entity.RiskLow),
		token("GAIN", 100, 12, entity.RiskLow),
	})

	assert.Empty(t, recs)
}

func TestGenerateRecommendations_Decliner(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 100, 0, entity.RiskLow),
		token("USDC", 100, -11, entity.RiskLow),
		token("DROP", 10, -15.06, entity.RiskLow),
	})

	require.Len(t, recs, 1)
	assert.Equal(t, entity.RecommendHold, recs[0].Type)
	assert.Equal(t, "DROP", recs[0].Token)
	assert.Equal(t, "Monitor DROP closely", recs[0].Title)
	assert.Equal(t, 55.0, recs[0].Confidence)
	assert.Equal(t, "-15.1% decline in 24h", recs[0].Reasoning[0])
}

func TestGenerateRecommendations_NativeUnderweight(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 10, 0, entity.RiskLow),
		token("USDC", 100, 0, entity.RiskLow),
		token("WETH", 100, 0, entity.RiskLow),
	})

	require.Len(t, recs, 1)
	assert.Equal(t, entity.RecommendBuy, recs[0].Type)
	assert.Equal(t, "MON", recs[0].Token)
	assert.Equal(t, "Consider increasing MON allocation", recs[0].Title)
	assert.Equal(t, 60.0, recs[0].Confidence)
}

func TestGenerateRecommendations_NativeUnderweightNeedsThreeTokens(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 10, 0, entity.RiskLow),
		token("USDC", 100, 0, entity.RiskLow),
	})

	assert.Equal(t, []entity.RecommendationType{entity.RecommendDiversify}, recTypes(recs))
}

func TestGenerateRecommendations_TruncatesInRuleOrder(t *testing.T) {
	recs := GenerateRecommendations([]entity.TokenRecord{
		token("MON", 1000, -15, entity.RiskLow),
		token("RISKY", 10, 8, entity.RiskHigh),
	})

	require.Len(t, recs, MaxRecommendations)
	assert.Equal(t, []entity.RecommendationType{
		entity.RecommendDiversify,
		entity.RecommendSell,
		entity.RecommendBuy,
		entity.RecommendHold,
	}, recTypes(recs))
	assert.Equal(t, "RISKY", recs[1].Token)
	assert.Equal(t, "RISKY", recs[2].Token)
	assert.Equal(t, "MON", recs[3].Token)
}
