package service

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"

	"portfolio_analyzer/internal/domain/entity"
)

var errRPC = errors.New("rpc unavailable")

type fakeToken struct {
	balance   *big.Int
	decimals  uint8
	symbol    string
	name      string
	supply    *big.Int
	failField string // "balance", "decimals", "symbol", "name" or "supply"
}

type fakeChainClient struct {
	def       entity.NetworkDefinition
	native    map[string]*big.Int
	nativeErr map[string]error
	tokens    map[string]fakeToken
	calls     atomic.Int64
}

func newFakeChainClient() *fakeChainClient {
	return &fakeChainClient{
		def: entity.NetworkDefinition{
			ChainID:      10143,
			Name:         "Monad Testnet",
			NativeSymbol: "MON",
			NativeName:   "Monad",
			Decimals:     18,
		},
		native:    map[string]*big.Int{},
		nativeErr: map[string]error{},
		tokens:    map[string]fakeToken{},
	}
}

func (c *fakeChainClient) token(addr string) (fakeToken, error) {
	tok, ok := c.tokens[addr]
	if !ok {
		return fakeToken{}, errors.New("execution reverted")
	}
	return tok, nil
}

func (c *fakeChainClient) GetNativeBalance(_ context.Context, wallet string) (*big.Int, error) {
	c.calls.Add(1)
	if err := c.nativeErr[wallet]; err != nil {
		return nil, err
	}
	if b, ok := c.native[wallet]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (c *fakeChainClient) GetTokenBalance(_ context.Context, token, _ string) (*big.Int, error) {
	c.calls.Add(1)
	tok, err := c.token(token)
	if err != nil || tok.failField == "balance" {
		return nil, errRPC
	}
	return tok.balance, nil
}

func (c *fakeChainClient) GetTokenDecimals(_ context.Context, token string) (uint8, error) {
	c.calls.Add(1)
	tok, err := c.token(token)
	if err != nil || tok.failField == "decimals" {
		return 0, errRPC
	}
	return tok.decimals, nil
}

func (c *fakeChainClient) GetTokenSymbol(_ context.Context, token string) (string, error) {
	c.calls.Add(1)
	tok, err := c.token(token)
	if err != nil || tok.failField == "symbol" {
		return "", errRPC
	}
	return tok.symbol, nil
}

func (c *fakeChainClient) GetTokenName(_ context.Context, token string) (string, error) {
	c.calls.Add(1)
	tok, err := c.token(token)
	if err != nil || tok.failField == "name" {
		return "", errRPC
	}
	return tok.name, nil
}

func (c *fakeChainClient) GetTokenTotalSupply(_ context.Context, token string) (*big.Int, error) {
	c.calls.Add(1)
	tok, err := c.token(token)
	if err != nil || tok.failField == "supply" {
		return nil, errRPC
	}
	return tok.supply, nil
}

func (c *fakeChainClient) Definition() entity.NetworkDefinition {
	return c.def
}

type staticTokenProvider []string

func (p staticTokenProvider) GetTokenAddresses() ([]string, error) {
	return p, nil
}

type staticWalletProvider []string

func (p staticWalletProvider) GetWallets() ([]entity.Wallet, error) {
	wallets := make([]entity.Wallet, 0, len(p))
	for _, a := range p {
		wallets = append(wallets, entity.Wallet{Address: a})
	}
	return wallets, nil
}

// constRandom always yields the same value.
type constRandom float64

func (r constRandom) Float64() float64 { return float64(r) }

// seqRandom yields the given values in order, then repeats the last one.
type seqRandom struct {
	mu     sync.Mutex
	values []float64
}

func (r *seqRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v
}

// units returns n * 10^decimals.
func units(n int64, decimals uint8) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(n), scale)
}
