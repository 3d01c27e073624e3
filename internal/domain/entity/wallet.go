package entity

// Wallet is a tracked wallet address.
type Wallet struct {
	Address string `json:"address"`
}
