package networkdefinition

import (
	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/domain/entity"
)

// DefaultTokenAddresses is the built-in ERC-20 allowlist checked for every wallet, in report order.
var DefaultTokenAddresses = []string{ //nolint:gochecknoglobals // Global for definitions
	"0xE0590015A873bF326bd645c3E1266d4db41C4E6B",
	"0xaEef2f6B429Cb59C9B2D7bB2141ADa993E8571c3",
	"0xC8527e96c3CB9522f6E35e95C0A28feAb8144f15",
	"0x3a98250F98Dd388C211206983453837C8365BDc1",
	"0x0F0BDEbF0F83cD1EE3974779Bcb7315f9808c714",
	"0x760AfE86e5de5fa0Ee542fc7B7B713e1c5425701",
	"0xfe140e1dCe99Be9F4F15d657CD9b7BF622270C50",
	"0xb2f82D0f38dc453D596Ad40A37799446Cc89274A",
}

// MonadTestnet is the only network the analyzer queries.
var MonadTestnet = entity.NetworkDefinition{ //nolint:gochecknoglobals // Global for definitions
	ChainID:          10143,
	Name:             "Monad Testnet",
	Identifier:       "monad_testnet",
	NativeSymbol:     entity.NativeSymbol,
	NativeName:       "Monad",
	Decimals:         18,
	PrimaryRPCURL:    "https://testnet-rpc.monad.xyz",
	FallbackRPCURLs:  []string{},
	BlockExplorerURL: "https://testnet.monadexplorer.com",
	TokenAddresses:   DefaultTokenAddresses,
}

// Overrides replace parts of the built-in definition. Zero values keep the default.
type Overrides struct {
	RPCURL          string
	FallbackRPCURLs []string
	ChainID         uint64
}

// NetworkDefinitionProvider provides the network definition with configured overrides applied.
type NetworkDefinitionProvider struct {
	logger port.Logger
	def    entity.NetworkDefinition
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider.
func NewNetworkDefinitionProvider(log port.Logger, overrides Overrides) *NetworkDefinitionProvider {
	def := MonadTestnet
	def.TokenAddresses = append([]string(nil), DefaultTokenAddresses...)
	def.FallbackRPCURLs = append([]string(nil), MonadTestnet.FallbackRPCURLs...)

	if overrides.RPCURL != "" {
		def.PrimaryRPCURL = overrides.RPCURL
	}
	if len(overrides.FallbackRPCURLs) > 0 {
		def.FallbackRPCURLs = append([]string(nil), overrides.FallbackRPCURLs...)
	}
	if overrides.ChainID != 0 && overrides.ChainID != def.ChainID {
		log.Warn("Overriding network chain id", "network", def.Name, "default", def.ChainID, "configured", overrides.ChainID)
		def.ChainID = overrides.ChainID
	}

	log.Info("NetworkDefinitionProvider initialized",
		"network", def.Name, "chain_id", def.ChainID, "rpc_url", def.PrimaryRPCURL, "fallbacks", len(def.FallbackRPCURLs))
	return &NetworkDefinitionProvider{logger: log, def: def}
}

// GetNetworkDefinition returns a copy of the resolved definition.
func (p *NetworkDefinitionProvider) GetNetworkDefinition() entity.NetworkDefinition {
	def := p.def
	def.TokenAddresses = append([]string(nil), p.def.TokenAddresses...)
	def.FallbackRPCURLs = append([]string(nil), p.def.FallbackRPCURLs...)
	return def
}
