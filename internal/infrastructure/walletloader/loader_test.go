package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"portfolio_analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(`# watchlist
0x000000000000000000000000000000000000dEaD

  0x1234567890123456789012345678901234567890  
0x1234
deadbeef
`), 0o600))

	var skipped int
	l := NewWalletFileLoader(path, func(msg string, args ...any) {
		if msg == "Skipping invalid wallet address format" {
			skipped++
		}
	})

	wallets, err := l.GetWallets()
	require.NoError(t, err)
	assert.Equal(t, []entity.Wallet{
		{Address: "0x000000000000000000000000000000000000dEaD"},
		{Address: "0x1234567890123456789012345678901234567890"},
	}, wallets)
	assert.Equal(t, 2, skipped)
}

func TestGetWallets_MissingFile(t *testing.T) {
	l := NewWalletFileLoader(filepath.Join(t.TempDir(), "nope.txt"), nil)

	_, err := l.GetWallets()
	assert.ErrorContains(t, err, "failed to open wallet file")
}

func TestNewWalletFileLoader_DefaultPath(t *testing.T) {
	assert.Equal(t, "data/wallets.txt", NewWalletFileLoader("", nil).filePath)
}
