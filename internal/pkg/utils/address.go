package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateAddress reports whether candidate is a 0x-prefixed, 40 hex digit address.
// Letter case is not checked against the EIP-55 checksum.
func ValidateAddress(candidate string) bool {
	if !strings.HasPrefix(candidate, "0x") {
		return false
	}
	return common.IsHexAddress(candidate)
}

// NormalizeAddress trims surrounding whitespace from user input.
func NormalizeAddress(candidate string) string {
	return strings.TrimSpace(candidate)
}
