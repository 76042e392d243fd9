package entity

// Wallet is a single address token taken from user input.
// The address is opaque: it is never validated or normalized.
type Wallet struct {
	Address string `json:"address" yaml:"address"`
}

// Addresses returns the raw address strings of wallets, preserving order.
func Addresses(wallets []Wallet) []string {
	out := make([]string, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, w.Address)
	}
	return out
}
