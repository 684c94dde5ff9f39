package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
)

// verifyChainID checks that the endpoint serves the chain the profile expects.
// A profile without chainId accepts whatever the endpoint reports.
func verifyChainID(ctx context.Context, backend Backend, network *config.NetworkProfile) (uint64, error) {
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}

	if network.ChainID != 0 && networkChainID.Uint64() != network.ChainID {
		return 0, fmt.Errorf("%w: network %s expects %d, endpoint reports %d",
			domain.ErrChainIDMismatch, network.Name, network.ChainID, networkChainID.Uint64())
	}
	return networkChainID.Uint64(), nil
}

// checkDeploymentExists checks if a contract exists at the given address
func checkDeploymentExists(ctx context.Context, backend Backend, address common.Address) (exists bool, reason string, err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, "", fmt.Errorf("failed to check code: %w", err)
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}
