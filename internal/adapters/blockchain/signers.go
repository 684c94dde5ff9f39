package blockchain

import (
	"fmt"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// DevAccountKey is the first well-known development account of hardhat and anvil
const DevAccountKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// ResolveSigners returns the accounts a profile signs with. Local profiles
// without accounts fall back to the development key.
func ResolveSigners(network *config.NetworkProfile) ([]*internalconfig.PrivateKey, error) {
	var signers []*internalconfig.PrivateKey
	for i, account := range network.Accounts {
		if account == "" {
			continue
		}
		key, err := internalconfig.ParsePrivateKey(account)
		if err != nil {
			return nil, fmt.Errorf("network %s: account #%d: %w", network.Name, i, err)
		}
		signers = append(signers, key)
	}

	if len(signers) > 0 {
		return signers, nil
	}
	if !network.IsLocal() {
		return nil, fmt.Errorf("network %s: %w: no account configured", network.Name, domain.ErrMissingSigningKey)
	}

	key, err := internalconfig.ParsePrivateKey(DevAccountKey)
	if err != nil {
		return nil, err
	}
	return []*internalconfig.PrivateKey{key}, nil
}

// UsesDevAccount reports whether ResolveSigners falls back to the
// development key for network
func UsesDevAccount(network *config.NetworkProfile) bool {
	return network.IsLocal() && len(lo.Compact(network.Accounts)) == 0
}
