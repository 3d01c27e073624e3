package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                   string   `yaml:"port"`
	GinMode                string   `yaml:"ginMode"`
	ReadTimeoutSeconds     int      `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds    int      `yaml:"writeTimeoutSeconds"`
	ShutdownTimeoutSeconds int      `yaml:"shutdownTimeoutSeconds"`
	AllowedOrigins         []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// NetworkConfig overrides the built-in Monad testnet definition.
type NetworkConfig struct {
	RPCURL          string   `yaml:"rpcURL"`
	FallbackRPCURLs []string `yaml:"fallbackRPCURLs"`
	ChainID         uint64   `yaml:"chainID"`
	VerifyChainID   bool     `yaml:"verifyChainID"`
	// TokensFile optionally replaces the built-in token allowlist with a JSON array of addresses.
	TokensFile string `yaml:"tokensFile"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines    int `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds    int `yaml:"rpc_call_timeout_seconds"`
	ConnectionTimeoutSeconds int `yaml:"connection_timeout_seconds"`
}

// RPCClientConfig holds rate limiting for the chain RPC endpoint.
type RPCClientConfig struct {
	RateLimit  float64 `yaml:"rateLimit"`
	BurstLimit int     `yaml:"burstLimit"`
}

// PricingConfig controls the mocked price feed.
type PricingConfig struct {
	// RandomSeed makes the synthetic prices reproducible; 0 seeds from the clock.
	RandomSeed uint64             `yaml:"randomSeed"`
	Overrides  map[string]float64 `yaml:"overrides"`
}

// SessionsConfig holds the search session expiry settings.
type SessionsConfig struct {
	TTLMinutes             int `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// WalletsConfig points at the watchlist file.
type WalletsConfig struct {
	File string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Network     NetworkConfig     `yaml:"network"`
	Performance PerformanceConfig `yaml:"performance"`
	RPCClient   RPCClientConfig   `yaml:"rpcClient"`
	Pricing     PricingConfig     `yaml:"pricing"`
	Sessions    SessionsConfig    `yaml:"sessions"`
	Wallets     WalletsConfig     `yaml:"wallets"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// Environment variables override file values; missing values get defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 10
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}

	if cfg.RPCClient.BurstLimit <= 0 {
		cfg.RPCClient.BurstLimit = 10
	}

	if cfg.Sessions.TTLMinutes <= 0 {
		cfg.Sessions.TTLMinutes = 30
	}
	if cfg.Sessions.CleanupIntervalMinutes <= 0 {
		cfg.Sessions.CleanupIntervalMinutes = 5
	}

	if cfg.Wallets.File == "" {
		cfg.Wallets.File = "data/wallets.txt"
	}
	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "docs/swagger.yaml"
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MONAD_RPC_URL"); v != "" {
		cfg.Network.RPCURL = v
	}
	if v := os.Getenv("MONAD_FALLBACK_RPC_URLS"); v != "" {
		cfg.Network.FallbackRPCURLs = splitList(v)
	}
	if v := os.Getenv("PRICING_RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PRICING_RANDOM_SEED %q: %w", v, err)
		}
		cfg.Pricing.RandomSeed = seed
	}
	if v := os.Getenv("WALLETS_FILE"); v != "" {
		cfg.Wallets.File = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RPCCallTimeout returns the per-call RPC timeout.
func (c *Config) RPCCallTimeout() time.Duration {
	return time.Duration(c.Performance.RPCCallTimeoutSeconds) * time.Second
}

// ConnectionTimeout returns the RPC dial timeout.
func (c *Config) ConnectionTimeout() time.Duration {
	return time.Duration(c.Performance.ConnectionTimeoutSeconds) * time.Second
}

// SessionTTL returns how long an idle search session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

// SessionCleanupInterval returns how often expired sessions are purged.
func (c *Config) SessionCleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupIntervalMinutes) * time.Minute
}
