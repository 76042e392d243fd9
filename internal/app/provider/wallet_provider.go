package provider

import (
	"errors"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"
)

// ErrNoWallets is returned when the source yielded no address at all.
var ErrNoWallets = errors.New("no wallet addresses provided")

type walletProviderImpl struct {
	sources []port.WalletProvider
	logger  port.Logger
}

// NewWalletProvider combines several wallet sources (CLI args, a file, stdin)
// into one, in the order given.
func NewWalletProvider(logger port.Logger, sources ...port.WalletProvider) port.WalletProvider {
	return &walletProviderImpl{sources: sources, logger: logger}
}

// GetWallets concatenates the wallets of every source. A source error stops the load.
func (p *walletProviderImpl) GetWallets() ([]entity.Wallet, error) {
	var wallets []entity.Wallet
	for i, src := range p.sources {
		got, err := src.GetWallets()
		if err != nil {
			p.logger.Error("Failed to load wallets", "source_index", i, "error", err)
			return nil, err
		}
		wallets = append(wallets, got...)
	}
	if len(wallets) == 0 {
		p.logger.Warn("No wallets found in any source", "sources", len(p.sources))
		return nil, ErrNoWallets
	}
	p.logger.Debug("Wallets collected", "count", len(wallets), "sources", len(p.sources))
	return wallets, nil
}

// StaticWallets is a port.WalletProvider over an already parsed list.
type StaticWallets []entity.Wallet

// GetWallets returns the list itself.
func (s StaticWallets) GetWallets() ([]entity.Wallet, error) {
	return s, nil
}
