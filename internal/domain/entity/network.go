package entity

// NetworkDefinition holds the configuration for the blockchain network being queried.
type NetworkDefinition struct {
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeName       string   `json:"nativeName" yaml:"nativeName"`
	Decimals         int32    `json:"decimals" yaml:"decimals"` // native coin decimals
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	// TokenAddresses is the fixed allowlist of ERC-20 contracts checked for every wallet.
	TokenAddresses []string `json:"tokenAddresses" yaml:"tokenAddresses"`
}
