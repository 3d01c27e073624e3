package tokenloader

import (
	"fmt"
	"strings"

	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/pkg/utils"
)

// TokenFileLoader implements port.TokenProvider. The allowlist is read once at
// construction, from the JSON file when one is configured, otherwise from the defaults.
type TokenFileLoader struct {
	filePath  string
	addresses []string
}

// NewTokenLoader creates a new TokenFileLoader. An empty filePath selects defaults.
// Invalid and duplicate addresses in the file are skipped with a warning.
func NewTokenLoader(filePath string, defaults []string, logger port.Logger) (*TokenFileLoader, error) {
	l := &TokenFileLoader{filePath: filePath}

	if filePath == "" {
		l.addresses = append([]string(nil), defaults...)
		logger.Info("Using built-in token allowlist", "count", len(l.addresses))
		return l, nil
	}

	raw, err := utils.LoadAddressesFromJSON(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load token allowlist from %s: %w", filePath, err)
	}

	seen := make(map[string]struct{}, len(raw))
	for i, addr := range raw {
		addr = utils.NormalizeAddress(addr)
		if !utils.ValidateAddress(addr) {
			logger.Warn("Skipping invalid token address", "file", filePath, "index", i, "address", addr)
			continue
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			logger.Warn("Skipping duplicate token address", "file", filePath, "index", i, "address", addr)
			continue
		}
		seen[key] = struct{}{}
		l.addresses = append(l.addresses, addr)
	}

	logger.Info("Token allowlist loaded from file", "file", filePath, "count", len(l.addresses))
	return l, nil
}

// GetTokenAddresses returns a copy of the allowlist in report order.
func (l *TokenFileLoader) GetTokenAddresses() ([]string, error) {
	return append([]string(nil), l.addresses...), nil
}
