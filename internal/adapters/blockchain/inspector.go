package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/lmittmann/w3/w3types"
)

// InspectorAdapter reads account and chain state with batched JSON-RPC calls
type InspectorAdapter struct {
	dialer *Dialer
	log    *slog.Logger
}

// NewInspectorAdapter creates a new inspector
func NewInspectorAdapter(dialer *Dialer, log *slog.Logger) *InspectorAdapter {
	return &InspectorAdapter{dialer: dialer, log: log}
}

// InspectAccounts returns balance and nonce of every signer of the profile.
// Per-account failures are reported on the account, not as an error.
func (i *InspectorAdapter) InspectAccounts(ctx context.Context, network *config.NetworkProfile) ([]models.AccountInfo, error) {
	signers, err := ResolveSigners(network)
	if err != nil {
		return nil, err
	}

	conn, err := i.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	accounts := make([]models.AccountInfo, len(signers))
	for idx, signer := range signers {
		accounts[idx].Address = signer.Address
	}

	if conn.RPC == nil {
		i.readAccounts(ctx, conn.Backend, accounts)
		return accounts, nil
	}

	balances := make([]*big.Int, len(signers))
	nonces := make([]uint64, len(signers))
	calls := make([]w3types.RPCCaller, 0, 2*len(signers))
	for idx, signer := range signers {
		calls = append(calls,
			eth.Balance(signer.Address, nil).Returns(&balances[idx]),
			eth.Nonce(signer.Address, nil).Returns(&nonces[idx]),
		)
	}

	client := w3.NewClient(conn.RPC)
	if err := client.CallCtx(ctx, calls...); err != nil {
		var callErrs w3.CallErrors
		if !errors.As(err, &callErrs) {
			return nil, fmt.Errorf("failed to read accounts on %s: %w", network.Name, err)
		}
		for idx, callErr := range callErrs {
			if callErr != nil {
				accounts[idx/2].Error = callErr.Error()
			}
		}
	}

	for idx := range accounts {
		if accounts[idx].Error != "" {
			continue
		}
		if balances[idx] != nil {
			accounts[idx].Balance = balances[idx].String()
		}
		accounts[idx].Nonce = nonces[idx]
	}
	return accounts, nil
}

// readAccounts queries accounts one by one when no JSON-RPC client is exposed
func (i *InspectorAdapter) readAccounts(ctx context.Context, backend Backend, accounts []models.AccountInfo) {
	for idx := range accounts {
		balance, err := backend.BalanceAt(ctx, accounts[idx].Address, nil)
		if err != nil {
			accounts[idx].Error = err.Error()
			continue
		}
		nonce, err := backend.NonceAt(ctx, accounts[idx].Address, nil)
		if err != nil {
			accounts[idx].Error = err.Error()
			continue
		}
		accounts[idx].Balance = balance.String()
		accounts[idx].Nonce = nonce
	}
}

// ProbeChainID asks the profile's endpoint for its chain ID
func (i *InspectorAdapter) ProbeChainID(ctx context.Context, network *config.NetworkProfile) (uint64, error) {
	conn, err := i.dialer.Dial(ctx, network)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if conn.RPC == nil {
		chainID, err := conn.Backend.ChainID(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
		}
		return chainID.Uint64(), nil
	}

	var chainID uint64
	if err := w3.NewClient(conn.RPC).CallCtx(ctx, eth.ChainID().Returns(&chainID)); err != nil {
		return 0, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}
	i.log.Debug("probed chain id", "network", network.Name, "chainId", chainID)
	return chainID, nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.AccountInspector = (*InspectorAdapter)(nil)
	_ usecase.ChainProber      = (*InspectorAdapter)(nil)
)
