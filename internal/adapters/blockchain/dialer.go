package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/eth/ethconfig"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"
)

// devBalance funds every signer of the in-process chain with 10000 ether
var devBalance = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(1_000_000_000_000_000_000))

// Backend is the chain access deployments and account reads need
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
}

// Connection is an open backend for one network
type Connection struct {
	Backend Backend
	RPC     *rpc.Client // nil when the backend has no JSON-RPC client
	close   func()
}

// Close releases the connection
func (c *Connection) Close() {
	if c.close != nil {
		c.close()
	}
}

// Dialer opens connections to network profiles
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a new dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log}
}

// Dial connects to the profile's endpoint, or starts the in-process chain
func (d *Dialer) Dial(ctx context.Context, network *config.NetworkProfile) (*Connection, error) {
	if network.IsInProcess() {
		return d.startInProcess(network)
	}

	d.log.Debug("dialing rpc", "network", network.Name, "url", network.URL)
	rpcClient, err := rpc.DialContext(ctx, network.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	client := ethclient.NewClient(rpcClient)

	return &Connection{Backend: client, RPC: rpcClient, close: client.Close}, nil
}

// startInProcess starts an ephemeral chain that mines a block for every
// transaction. Signers of the profile are funded at genesis.
func (d *Dialer) startInProcess(network *config.NetworkProfile) (*Connection, error) {
	signers, err := ResolveSigners(network)
	if err != nil {
		return nil, err
	}

	alloc := types.GenesisAlloc{}
	for _, signer := range signers {
		alloc[signer.Address] = types.Account{Balance: devBalance}
	}

	var options []func(*node.Config, *ethconfig.Config)
	if network.ChainID != 0 {
		options = append(options, withChainID(network.ChainID))
	}

	d.log.Debug("starting in-process chain", "network", network.Name, "accounts", len(signers))
	sim := simulated.NewBackend(alloc, options...)
	client := sim.Client()

	conn := &Connection{
		Backend: &autoMiner{Client: client, commit: sim.Commit},
		close: func() {
			if err := sim.Close(); err != nil {
				d.log.Debug("failed to stop in-process chain", "error", err)
			}
		},
	}
	if rc, ok := client.(interface{ Client() *rpc.Client }); ok {
		conn.RPC = rc.Client()
	}
	return conn, nil
}

func withChainID(chainID uint64) func(*node.Config, *ethconfig.Config) {
	return func(_ *node.Config, ethConf *ethconfig.Config) {
		chainConfig := *ethConf.Genesis.Config
		chainConfig.ChainID = new(big.Int).SetUint64(chainID)
		ethConf.Genesis.Config = &chainConfig
		ethConf.NetworkId = chainID
	}
}

// autoMiner seals a block as soon as a transaction is sent
type autoMiner struct {
	simulated.Client
	commit func() common.Hash
}

func (m *autoMiner) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := m.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	m.commit()
	return nil
}
