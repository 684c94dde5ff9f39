package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// FactoryResolverAdapter implements the FactoryResolver interface using go-ethereum bindings
type FactoryResolverAdapter struct {
	dialer *Dialer
	log    *slog.Logger
}

// NewFactoryResolverAdapter creates a new factory resolver
func NewFactoryResolverAdapter(dialer *Dialer, log *slog.Logger) *FactoryResolverAdapter {
	return &FactoryResolverAdapter{dialer: dialer, log: log}
}

// Resolve picks the profile's first signer and connects to its chain.
// Signing keys are checked before any network call.
func (r *FactoryResolverAdapter) Resolve(ctx context.Context, network *config.NetworkProfile) (usecase.ContractFactory, error) {
	signers, err := ResolveSigners(network)
	if err != nil {
		return nil, err
	}
	signer := signers[0]
	if UsesDevAccount(network) {
		r.log.Info("no accounts configured, signing with the development key", "network", network.Name, "address", signer.Address.Hex())
	}

	conn, err := r.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}

	chainID, err := verifyChainID(ctx, conn.Backend, network)
	if err != nil {
		conn.Close()
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(signer.Key, new(big.Int).SetUint64(chainID))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	if network.GasPrice > 0 {
		opts.GasPrice = new(big.Int).SetUint64(network.GasPrice)
	}

	r.log.Debug("resolved contract factory", "network", network.Name, "chainId", chainID, "deployer", signer.Address.Hex())

	return &Factory{
		conn:    conn,
		opts:    opts,
		chainID: chainID,
		network: network.Name,
		log:     r.log,
	}, nil
}

// Factory deploys contracts from one signer on one chain
type Factory struct {
	conn    *Connection
	opts    *bind.TransactOpts
	chainID uint64
	network string
	log     *slog.Logger
}

// Deployer returns the signing address
func (f *Factory) Deployer() common.Address {
	return f.opts.From
}

// ChainID returns the verified chain ID
func (f *Factory) ChainID() uint64 {
	return f.chainID
}

// Deploy signs and submits exactly one contract creation transaction
func (f *Factory) Deploy(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error) {
	opts := *f.opts
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, *contractABI, bytecode, f.conn.Backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to submit deployment: %w", err)
	}

	f.log.Info("deployment submitted", "network", f.network, "tx", tx.Hash().Hex(), "address", address.Hex())

	return &models.PendingDeployment{
		TxHash:      tx.Hash(),
		Address:     address,
		Deployer:    opts.From,
		Transaction: tx,
	}, nil
}

// WaitDeployed blocks until the creation is mined and code is present
func (f *Factory) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error) {
	receipt, err := bind.WaitMined(ctx, f.conn.Backend, pending.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", pending.TxHash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s reverted", domain.ErrDeploymentFailed, pending.TxHash.Hex())
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}
	exists, reason, err := checkDeploymentExists(ctx, f.conn.Backend, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s at %s", domain.ErrDeploymentFailed, reason, address.Hex())
	}

	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	return &models.DeploymentResult{
		ContractName: pending.ContractName,
		Address:      address,
		TxHash:       pending.TxHash,
		Deployer:     pending.Deployer,
		Network:      f.network,
		ChainID:      f.chainID,
		BlockNumber:  blockNumber,
		GasUsed:      receipt.GasUsed,
	}, nil
}

// Close releases the backend
func (f *Factory) Close() {
	f.conn.Close()
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.FactoryResolver = (*FactoryResolverAdapter)(nil)
	_ usecase.ContractFactory = (*Factory)(nil)
)
