package client

import (
	"context"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"portfolio_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	testWallet = "0x000000000000000000000000000000000000dEaD"
	testToken  = "0xf817257fed379853cDe0fa4F97AB987181B1E5Ea"
	emptyToken = "0x0000000000000000000000000000000000000bad"
)

type rpcRequest struct {
	ID     jsoniter.RawMessage   `json:"id"`
	Method string                `json:"method"`
	Params []jsoniter.RawMessage `json:"params"`
}

type fakeERC20 struct {
	balance        *big.Int
	decimals       uint8
	symbol         string
	name           string
	supply         *big.Int
	revertedSupply bool
}

// fakeNode answers the JSON-RPC methods the client uses.
type fakeNode struct {
	chainID  uint64
	native   *big.Int
	tokens   map[common.Address]fakeERC20
	requests atomic.Int64
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.requests.Add(1)
	body, _ := io.ReadAll(r.Body)
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, rpcErr := n.handle(req)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != "" {
		resp["error"] = map[string]interface{}{"code": 3, "message": rpcErr}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) handle(req rpcRequest) (interface{}, string) {
	switch req.Method {
	case "eth_chainId":
		return hexutil.EncodeUint64(n.chainID), ""
	case "eth_getBalance":
		return hexutil.EncodeBig(n.native), ""
	case "eth_call":
		var call map[string]interface{}
		if err := json.Unmarshal(req.Params[0], &call); err != nil {
			return nil, err.Error()
		}
		input, _ := call["input"].(string)
		if input == "" {
			input, _ = call["data"].(string)
		}
		to, _ := call["to"].(string)
		data, err := hexutil.Decode(input)
		if err != nil || len(data) < 4 {
			return nil, "bad call data"
		}
		token, ok := n.tokens[common.HexToAddress(to)]
		if !ok {
			return "0x", ""
		}
		return n.erc20Result(token, data[:4])
	default:
		return nil, "method not found"
	}
}

func (n *fakeNode) erc20Result(token fakeERC20, selector []byte) (interface{}, string) {
	for name, method := range parsedERC20ABI.Methods {
		if string(method.ID) != string(selector) {
			continue
		}
		var value interface{}
		switch name {
		case "balanceOf":
			value = token.balance
		case "decimals":
			value = token.decimals
		case "symbol":
			value = token.symbol
		case "name":
			value = token.name
		case "totalSupply":
			if token.revertedSupply {
				return nil, "execution reverted"
			}
			value = token.supply
		}
		out, err := method.Outputs.Pack(value)
		if err != nil {
			return nil, err.Error()
		}
		return hexutil.Encode(out), ""
	}
	return nil, "execution reverted"
}

func newFakeNode() *fakeNode {
	initParsedERC20ABI()
	return &fakeNode{
		chainID: 10143,
		native:  new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)),
		tokens: map[common.Address]fakeERC20{
			common.HexToAddress(testToken): {
				balance:  big.NewInt(12_500_000),
				decimals: 6,
				symbol:   "USDC",
				name:     "USD Coin",
				supply:   big.NewInt(1_000_000_000_000),
			},
		},
	}
}

func testDefinition(urls ...string) entity.NetworkDefinition {
	return entity.NetworkDefinition{
		ChainID:         10143,
		Name:            "Monad Testnet",
		PrimaryRPCURL:   urls[0],
		FallbackRPCURLs: urls[1:],
	}
}

func newTestClient(t *testing.T, node *fakeNode, opts Options) *EVMClient {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	c, err := NewEVMClient(testDefinition(srv.URL), srv.Client(), opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestEVMClient_ReadsBalancesAndMetadata(t *testing.T) {
	c := newTestClient(t, newFakeNode(), Options{})
	ctx := context.Background()

	native, err := c.GetNativeBalance(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "3000000000000000000", native.String())

	balance, err := c.GetTokenBalance(ctx, testToken, testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(12_500_000), balance.Int64())

	decimals, err := c.GetTokenDecimals(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	symbol, err := c.GetTokenSymbol(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "USDC", symbol)

	name, err := c.GetTokenName(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "USD Coin", name)

	supply, err := c.GetTokenTotalSupply(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000_000), supply.Int64())

	assert.Equal(t, "Monad Testnet", c.Definition().Name)
}

func TestEVMClient_RevertedCall(t *testing.T) {
	node := newFakeNode()
	tok := node.tokens[common.HexToAddress(testToken)]
	tok.revertedSupply = true
	node.tokens[common.HexToAddress(testToken)] = tok
	c := newTestClient(t, node, Options{})

	_, err := c.GetTokenTotalSupply(context.Background(), testToken)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalSupply")
}

func TestEVMClient_NoContractAtAddress(t *testing.T) {
	c := newTestClient(t, newFakeNode(), Options{})

	_, err := c.GetTokenSymbol(context.Background(), emptyToken)

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestEVMClient_RejectsMalformedAddresses(t *testing.T) {
	node := newFakeNode()
	c := newTestClient(t, node, Options{})

	_, err := c.GetNativeBalance(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, entity.ErrInvalidAddress)

	_, err = c.GetTokenName(context.Background(), "0x1234")
	assert.Error(t, err)

	assert.Zero(t, node.requests.Load())
}

func TestEVMClient_FallsBackWhenPrimaryIsDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer down.Close()
	healthy := httptest.NewServer(newFakeNode())
	defer healthy.Close()

	c, err := NewEVMClient(testDefinition(down.URL, healthy.URL), nil, Options{VerifyChainID: true})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, healthy.URL, c.RPCURL())
}

func TestEVMClient_ChainIDMismatch(t *testing.T) {
	node := newFakeNode()
	node.chainID = 1
	srv := httptest.NewServer(node)
	defer srv.Close()

	_, err := NewEVMClient(testDefinition(srv.URL), nil, Options{VerifyChainID: true})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "chain id mismatch"), err.Error())
}

func TestEVMClient_RateLimiterHonoursContext(t *testing.T) {
	c := newTestClient(t, newFakeNode(), Options{RequestsPerSecond: 0.01, Burst: 1})

	_, err := c.GetNativeBalance(context.Background(), testWallet)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GetNativeBalance(ctx, testWallet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
