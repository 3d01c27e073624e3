package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"portfolio_analyzer/internal/app/port"
)

const (
	// maxMockPrice bounds the price drawn for symbols missing from the price table.
	maxMockPrice = 10.0
	// priceChangeSpan is the width of the synthetic 24h change interval, centred on zero.
	priceChangeSpan = 40.0
)

// defaultPriceTable holds the mocked USD prices of the well-known symbols.
var defaultPriceTable = map[string]float64{
	"MON":  0.1,
	"USDC": 1,
	"USDT": 1,
	"WETH": 2000,
	"WBTC": 45000,
}

// tokenPriceServiceImpl implements port.TokenPriceService with a fixed table
// and random draws for everything else.
type tokenPriceServiceImpl struct {
	prices map[string]float64
	logger port.Logger

	mu     sync.Mutex
	random port.RandomSource
}

// NewTokenPriceService creates a mock price service. Overrides replace or extend
// the built-in price table; random feeds unknown prices and the 24h change.
func NewTokenPriceService(random port.RandomSource, overrides map[string]float64, l port.Logger) port.TokenPriceService {
	prices := make(map[string]float64, len(defaultPriceTable)+len(overrides))
	for symbol, price := range defaultPriceTable {
		prices[symbol] = price
	}
	for symbol, price := range overrides {
		prices[symbol] = price
	}

	l.Info("TokenPriceService initialized", "known_symbols", len(prices))
	return &tokenPriceServiceImpl{
		prices: prices,
		logger: l,
		random: random,
	}
}

// GetPriceUSD returns the table price, or a fresh draw from [0, 10) for unknown symbols.
// Unknown prices are not cached.
func (s *tokenPriceServiceImpl) GetPriceUSD(symbol string) float64 {
	if price, ok := s.prices[symbol]; ok {
		return price
	}
	price := s.draw() * maxMockPrice
	s.logger.Debug("Using random mock price for unknown symbol", "symbol", symbol, "price", price)
	return price
}

// PriceChange24h returns a synthetic change in [-20, 20) percent.
func (s *tokenPriceServiceImpl) PriceChange24h(string) float64 {
	return (s.draw() - 0.5) * priceChangeSpan
}

func (s *tokenPriceServiceImpl) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Float64()
}

// NewRandomSource returns a PCG-backed source. A zero seed derives one from the clock.
func NewRandomSource(seed uint64) port.RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
