package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/domain/entity"
	"portfolio_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

// ErrEmptyResponse is returned when a contract call yields no data, which happens
// when the address holds no contract or the method is not implemented.
var ErrEmptyResponse = errors.New("empty contract response")

// Options tune the RPC transport of an EVMClient.
type Options struct {
	ConnectionTimeout time.Duration
	RPCCallTimeout    time.Duration
	// RequestsPerSecond caps outgoing calls; zero disables the limit.
	RequestsPerSecond float64
	Burst             int
	// VerifyChainID makes dialing fail over to the next URL when the node
	// is unreachable or reports a different chain id.
	VerifyChainID bool
}

var _ port.BlockchainClient = (*EVMClient)(nil)

// EVMClient implements port.BlockchainClient for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcURL         string
	rpcCallTimeout time.Duration
	limiter        *rate.Limiter
}

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
	})
}

// NewEVMClient dials the primary RPC URL of the network, falling back to the
// fallback URLs in order.
func NewEVMClient(netDef entity.NetworkDefinition, httpClient *http.Client, opts Options) (*EVMClient, error) {
	initParsedERC20ABI()

	if opts.ConnectionTimeout <= 0 {
		opts.ConnectionTimeout = 10 * time.Second
	}
	if opts.RPCCallTimeout <= 0 {
		opts.RPCCallTimeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	var dialOpts []rpc.ClientOption
	if httpClient != nil {
		dialOpts = append(dialOpts, rpc.WithHTTPClient(httpClient))
	}

	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error
	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		client, err := dial(rpcURL, netDef.ChainID, opts, dialOpts)
		if err != nil {
			lastErr = err
			continue
		}
		return &EVMClient{
			ethClient:      client,
			netDef:         netDef,
			rpcURL:         rpcURL,
			rpcCallTimeout: opts.RPCCallTimeout,
			limiter:        limiter,
		}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no RPC URL configured")
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

func dial(rpcURL string, chainID uint64, opts Options, dialOpts []rpc.ClientOption) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectionTimeout)
	defer cancel()

	rpcClient, err := rpc.DialOptions(ctx, rpcURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	client := ethclient.NewClient(rpcClient)

	if !opts.VerifyChainID {
		return client, nil
	}
	got, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to verify chain id for %s: %w", rpcURL, err)
	}
	if got.Uint64() != chainID {
		client.Close()
		return nil, fmt.Errorf("chain id mismatch for %s: expected %d, got %s", rpcURL, chainID, got)
	}
	return client, nil
}

// GetNativeBalance fetches the native coin balance at the latest block.
func (c *EVMClient) GetNativeBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidAddress, walletAddress)
	}

	var balance *big.Int
	err := c.do(ctx, "eth_getBalance", func(ctx context.Context) error {
		var err error
		balance, err = c.ethClient.BalanceAt(ctx, common.HexToAddress(walletAddress), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch native balance of %s: %w", walletAddress, err)
	}
	return balance, nil
}

// GetTokenBalance calls balanceOf(walletAddress) on the token contract.
func (c *EVMClient) GetTokenBalance(ctx context.Context, tokenAddress string, walletAddress string) (*big.Int, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidAddress, walletAddress)
	}
	return callERC20[*big.Int](ctx, c, tokenAddress, "balanceOf", common.HexToAddress(walletAddress))
}

// GetTokenDecimals calls decimals() on the token contract.
func (c *EVMClient) GetTokenDecimals(ctx context.Context, tokenAddress string) (uint8, error) {
	return callERC20[uint8](ctx, c, tokenAddress, "decimals")
}

// GetTokenSymbol calls symbol() on the token contract.
func (c *EVMClient) GetTokenSymbol(ctx context.Context, tokenAddress string) (string, error) {
	return callERC20[string](ctx, c, tokenAddress, "symbol")
}

// GetTokenName calls name() on the token contract.
func (c *EVMClient) GetTokenName(ctx context.Context, tokenAddress string) (string, error) {
	return callERC20[string](ctx, c, tokenAddress, "name")
}

// GetTokenTotalSupply calls totalSupply() on the token contract.
func (c *EVMClient) GetTokenTotalSupply(ctx context.Context, tokenAddress string) (*big.Int, error) {
	return callERC20[*big.Int](ctx, c, tokenAddress, "totalSupply")
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// RPCURL returns the endpoint the client ended up connected to.
func (c *EVMClient) RPCURL() string {
	return c.rpcURL
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}

func callERC20[T any](ctx context.Context, c *EVMClient, tokenAddress, method string, args ...interface{}) (T, error) {
	var zero T
	if !common.IsHexAddress(tokenAddress) {
		return zero, fmt.Errorf("invalid token address %q", tokenAddress)
	}

	data, err := parsedERC20ABI.Pack(method, args...)
	if err != nil {
		return zero, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	to := common.HexToAddress(tokenAddress)
	var out []byte
	err = c.do(ctx, method, func(ctx context.Context) error {
		var err error
		out, err = c.ethClient.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
		return err
	})
	if err != nil {
		return zero, fmt.Errorf("%s call on %s failed: %w", method, tokenAddress, err)
	}
	if len(out) == 0 {
		return zero, fmt.Errorf("%s call on %s: %w", method, tokenAddress, ErrEmptyResponse)
	}

	unpacked, err := parsedERC20ABI.Unpack(method, out)
	if err != nil {
		return zero, fmt.Errorf("failed to unpack %s result from %s: %w", method, tokenAddress, err)
	}
	if len(unpacked) == 0 {
		return zero, fmt.Errorf("%s unpack returned no data for %s", method, tokenAddress)
	}
	value, ok := unpacked[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected %s result type %T from %s", method, unpacked[0], tokenAddress)
	}
	return value, nil
}

// do runs one RPC call under the rate limiter and the per-call timeout.
func (c *EVMClient) do(ctx context.Context, method string, call func(context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	start := time.Now()
	err := call(callCtx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RPCCallDuration.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
	return err
}
