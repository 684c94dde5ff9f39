package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployer     = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	deployedAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

func newDeployFixture(t *testing.T) (*DeployContract, *mockFactoryResolver, *mockFactory, *recordingProgress) {
	t.Helper()

	factory := &mockFactory{
		deployer: deployer,
		deployFunc: func(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error) {
			return &models.PendingDeployment{
				TxHash:   common.HexToHash("0x01"),
				Address:  deployedAddr,
				Deployer: deployer,
			}, nil
		},
		waitFunc: func(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error) {
			return &models.DeploymentResult{
				ContractName: pending.ContractName,
				Address:      pending.Address,
				TxHash:       pending.TxHash,
				Deployer:     pending.Deployer,
				Network:      "hardhat",
				ChainID:      1337,
			}, nil
		},
	}
	resolver := &mockFactoryResolver{
		resolveFunc: func(ctx context.Context, network *config.NetworkProfile) (ContractFactory, error) {
			return factory, nil
		},
	}
	progress := &recordingProgress{}

	cfg := &config.RuntimeConfig{Network: &config.NetworkProfile{Name: config.InProcessNetwork}}
	artifacts := &mockArtifacts{contracts: []*models.Contract{
		testContract("DefiHorse", horseABI, testBytecode),
		testContract("DefiHorseIBCO", ibcoABI, testBytecode),
		testContract("IERC20", horseABI, "0x"),
	}}

	uc := NewDeployContract(cfg, artifacts, resolver, mockParser{}, &mockSelector{}, progress, discardLogger())
	return uc, resolver, factory, progress
}

func TestDeployContract_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys with constructor arguments", func(t *testing.T) {
		uc, resolver, factory, progress := newDeployFixture(t)

		var gotArgs []any
		var gotCode []byte
		deploy := factory.deployFunc
		factory.deployFunc = func(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error) {
			gotArgs = args
			gotCode = bytecode
			return deploy(ctx, contractABI, bytecode, args)
		}

		req := models.DeploymentRequest{
			ContractName:    "DefiHorseIBCO",
			ConstructorArgs: []any{models.DFHTokenAddress, models.BUSDTokenAddress},
		}
		result, err := uc.Run(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "DefiHorseIBCO", result.ContractName)
		assert.Equal(t, deployedAddr, result.Address)
		assert.Equal(t, req.ConstructorArgs, gotArgs)
		assert.NotEmpty(t, gotCode)
		assert.Equal(t, 1, resolver.calls)
		assert.True(t, factory.closed)

		assert.Equal(t, []string{"resolving", "deploying", "confirming", "completed"}, progress.stages())
		assert.Equal(t, "Deploying DefiHorseIBCO...", progress.events[1].Message)
		assert.True(t, progress.events[2].Spinner)
		assert.Equal(t, "DefiHorseIBCO deployed to: "+deployedAddr.Hex(), progress.events[3].Message)
		assert.Equal(t, []string{"Connected to hardhat (chain 1337) as " + deployer.Hex()}, progress.infos)
		assert.Empty(t, progress.errors)
	})

	t.Run("deploys without constructor", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)

		result, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorse"})
		require.NoError(t, err)
		assert.Equal(t, "DefiHorse", result.ContractName)
	})

	t.Run("arity mismatch sends nothing", func(t *testing.T) {
		uc, resolver, _, progress := newDeployFixture(t)

		_, err := uc.Run(ctx, models.DeploymentRequest{
			ContractName:    "DefiHorseIBCO",
			ConstructorArgs: []any{models.DFHTokenAddress},
		})
		assert.ErrorIs(t, err, domain.ErrConstructorArgs)
		assert.Zero(t, resolver.calls)
		assert.Equal(t, []string{"resolving"}, progress.stages())
	})

	t.Run("wrong argument type sends nothing", func(t *testing.T) {
		uc, resolver, _, _ := newDeployFixture(t)

		_, err := uc.Run(ctx, models.DeploymentRequest{
			ContractName:    "DefiHorseIBCO",
			ConstructorArgs: []any{"dfh", "busd"},
		})
		assert.ErrorIs(t, err, domain.ErrConstructorArgs)
		assert.Zero(t, resolver.calls)
	})

	t.Run("unknown contract", func(t *testing.T) {
		uc, resolver, _, _ := newDeployFixture(t)

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorseNFT"})
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		assert.Zero(t, resolver.calls)
	})

	t.Run("interface has no bytecode", func(t *testing.T) {
		uc, resolver, _, _ := newDeployFixture(t)

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "IERC20"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no bytecode")
		assert.Zero(t, resolver.calls)
	})

	t.Run("missing signing key is returned verbatim", func(t *testing.T) {
		uc, resolver, _, _ := newDeployFixture(t)
		resolver.resolveFunc = func(ctx context.Context, network *config.NetworkProfile) (ContractFactory, error) {
			return nil, domain.ErrMissingSigningKey
		}

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorse"})
		assert.ErrorIs(t, err, domain.ErrMissingSigningKey)
	})

	t.Run("confirmation failure", func(t *testing.T) {
		uc, _, factory, progress := newDeployFixture(t)
		factory.waitFunc = func(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error) {
			return nil, domain.ErrDeploymentFailed
		}

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorse"})
		assert.ErrorIs(t, err, domain.ErrDeploymentFailed)
		assert.True(t, factory.closed)
		assert.Equal(t, "completed", progress.stages()[len(progress.events)-1])
		require.Len(t, progress.errors, 1)
		assert.Contains(t, progress.errors[0], "was not confirmed")
	})

	t.Run("confirmation honours cancellation", func(t *testing.T) {
		uc, _, factory, progress := newDeployFixture(t)
		factory.waitFunc = func(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := uc.Run(timeoutCtx, models.DeploymentRequest{ContractName: "DefiHorse"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.True(t, factory.closed)
		assert.Equal(t, []string{"resolving", "deploying", "confirming", "completed"}, progress.stages())
		require.Len(t, progress.errors, 1)
		assert.Contains(t, progress.errors[0], context.DeadlineExceeded.Error())
	})

	t.Run("submission failure is not retried", func(t *testing.T) {
		uc, resolver, factory, _ := newDeployFixture(t)
		attempts := 0
		factory.deployFunc = func(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error) {
			attempts++
			return nil, errors.New("insufficient funds for gas * price + value")
		}

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorse"})
		assert.EqualError(t, err, "insufficient funds for gas * price + value")
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, resolver.calls)
	})

	t.Run("no active network", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)
		uc.config = &config.RuntimeConfig{}

		_, err := uc.Run(ctx, models.DeploymentRequest{ContractName: "DefiHorse"})
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})
}

func TestDeployContract_PrepareRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("parses arguments against the constructor", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)

		req, err := uc.PrepareRequest(ctx, "DefiHorseIBCO", []string{models.DFHTokenAddress.Hex(), models.BUSDTokenAddress.Hex()})
		require.NoError(t, err)
		assert.Equal(t, "contracts/DefiHorseIBCO.sol:DefiHorseIBCO", req.ContractName)
		assert.Equal(t, []any{models.DFHTokenAddress, models.BUSDTokenAddress}, req.ConstructorArgs)
	})

	t.Run("wraps parse errors", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)

		_, err := uc.PrepareRequest(ctx, "DefiHorseIBCO", nil)
		assert.ErrorIs(t, err, domain.ErrConstructorArgs)
	})

	t.Run("requires a name when non-interactive", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)
		uc.config.NonInteractive = true

		_, err := uc.PrepareRequest(ctx, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-interactive")
	})

	t.Run("offers deployable contracts only", func(t *testing.T) {
		uc, _, _, _ := newDeployFixture(t)
		selector := &mockSelector{pick: 0}
		uc.selector = selector

		req, err := uc.PrepareRequest(ctx, "", nil)
		require.NoError(t, err)
		require.Len(t, selector.offered, 2)
		assert.Equal(t, "DefiHorse", selector.offered[0].Name)
		assert.Equal(t, "DefiHorseIBCO", selector.offered[1].Name)
		assert.Equal(t, "contracts/DefiHorse.sol:DefiHorse", req.ContractName)
	})
}
