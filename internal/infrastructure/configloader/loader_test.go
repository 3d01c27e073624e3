package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: \"9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, 10*time.Second, cfg.RPCCallTimeout())
	assert.Equal(t, 10*time.Second, cfg.ConnectionTimeout())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 5*time.Minute, cfg.SessionCleanupInterval())
	assert.Equal(t, "data/wallets.txt", cfg.Wallets.File)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Swagger.Enabled)
}

func TestLoad_ReadsAllSections(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: "8081"
  ginMode: release
  allowedOrigins: ["http://localhost:5173"]
logging:
  level: debug
network:
  rpcURL: http://localhost:8545
  fallbackRPCURLs: [http://localhost:8546]
  chainID: 31337
  verifyChainID: true
  tokensFile: data/tokens.json
performance:
  max_concurrent_routines: 3
  rpc_call_timeout_seconds: 4
rpcClient:
  rateLimit: 25
  burstLimit: 5
pricing:
  randomSeed: 42
  overrides:
    DAI: 1
sessions:
  ttlMinutes: 2
wallets:
  file: testdata/wallets.txt
swagger:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
	assert.Equal(t, []string{"http://localhost:8546"}, cfg.Network.FallbackRPCURLs)
	assert.Equal(t, uint64(31337), cfg.Network.ChainID)
	assert.True(t, cfg.Network.VerifyChainID)
	assert.Equal(t, "data/tokens.json", cfg.Network.TokensFile)
	assert.Equal(t, 3, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, 4*time.Second, cfg.RPCCallTimeout())
	assert.Equal(t, 25.0, cfg.RPCClient.RateLimit)
	assert.Equal(t, 5, cfg.RPCClient.BurstLimit)
	assert.Equal(t, uint64(42), cfg.Pricing.RandomSeed)
	assert.Equal(t, map[string]float64{"DAI": 1}, cfg.Pricing.Overrides)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "testdata/wallets.txt", cfg.Wallets.File)
	assert.True(t, cfg.Swagger.Enabled)
	assert.Equal(t, "docs/swagger.yaml", cfg.Swagger.SpecPath)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MONAD_RPC_URL", "http://rpc.example")
	t.Setenv("MONAD_FALLBACK_RPC_URLS", "http://a.example, http://b.example,")
	t.Setenv("PRICING_RANDOM_SEED", "99")

	cfg, err := Load(writeConfig(t, "server:\n  port: \"9090\"\nlogging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "http://rpc.example", cfg.Network.RPCURL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Network.FallbackRPCURLs)
	assert.Equal(t, uint64(99), cfg.Pricing.RandomSeed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "failed to unmarshal config data")

	t.Setenv("PRICING_RANDOM_SEED", "not-a-number")
	_, err = Load(writeConfig(t, "{}"))
	assert.ErrorContains(t, err, "invalid PRICING_RANDOM_SEED")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.RPCClient.BurstLimit)
	assert.Zero(t, cfg.RPCClient.RateLimit)
}
