package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/samber/lo"
)

// DeployContract publishes one compiled contract to the active network
type DeployContract struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	factories FactoryResolver
	parser    ArgumentParser
	selector  InteractiveSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	factories FactoryResolver,
	parser ArgumentParser,
	selector InteractiveSelector,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		artifacts: artifacts,
		factories: factories,
		parser:    parser,
		selector:  selector,
		progress:  progress,
		log:       log,
	}
}

// PrepareRequest builds a request from command line input. An empty name
// opens the contract picker; raw arguments are parsed against the constructor.
func (uc *DeployContract) PrepareRequest(ctx context.Context, name string, rawArgs []string) (models.DeploymentRequest, error) {
	var contract *models.Contract
	var err error

	if name == "" {
		contract, err = uc.pickContract(ctx)
	} else {
		contract, err = uc.artifacts.GetContract(ctx, name)
	}
	if err != nil {
		return models.DeploymentRequest{}, err
	}

	contractABI, err := contract.Artifact.ParseABI()
	if err != nil {
		return models.DeploymentRequest{}, err
	}

	args, err := uc.parser.ParseArgs(contractABI.Constructor.Inputs, rawArgs)
	if err != nil {
		return models.DeploymentRequest{}, fmt.Errorf("%w for %s: %v", domain.ErrConstructorArgs, contract.Name, err)
	}

	return models.DeploymentRequest{ContractName: contract.FullyQualifiedName(), ConstructorArgs: args}, nil
}

func (uc *DeployContract) pickContract(ctx context.Context) (*models.Contract, error) {
	if uc.config.NonInteractive {
		return nil, fmt.Errorf("contract name is required in non-interactive mode")
	}

	contracts, err := uc.artifacts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	deployable := lo.Filter(contracts, func(c *models.Contract, _ int) bool {
		return c.Artifact.IsDeployable()
	})
	if len(deployable) == 0 {
		return nil, fmt.Errorf("%w: no deployable artifacts found", domain.ErrContractNotFound)
	}

	return uc.selector.SelectContract(ctx, deployable, "Select a contract to deploy")
}

// Run submits one deployment transaction and waits for it to be confirmed.
// Arguments are checked against the ABI before any network call.
func (uc *DeployContract) Run(ctx context.Context, req models.DeploymentRequest) (*models.DeploymentResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: no active network", domain.ErrUnknownNetwork)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: fmt.Sprintf("Resolving %s", req.ContractName),
	})

	contract, err := uc.artifacts.GetContract(ctx, req.ContractName)
	if err != nil {
		return nil, err
	}

	contractABI, err := contract.Artifact.ParseABI()
	if err != nil {
		return nil, err
	}
	bytecode, err := contract.Artifact.CreationCode()
	if err != nil {
		return nil, err
	}
	if _, err := contractABI.Pack("", req.ConstructorArgs...); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", domain.ErrConstructorArgs, contract.Name, err)
	}

	factory, err := uc.factories.Resolve(ctx, network)
	if err != nil {
		return nil, err
	}
	defer factory.Close()
	uc.progress.Info(fmt.Sprintf("Connected to %s (chain %d) as %s", network.Name, factory.ChainID(), factory.Deployer().Hex()))

	uc.log.Debug("deploying", "contract", contract.FullyQualifiedName(), "network", network.Name, "deployer", factory.Deployer().Hex())
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageDeploying),
		Message:  fmt.Sprintf("Deploying %s...", contract.Name),
		Metadata: contract,
	})

	pending, err := factory.Deploy(ctx, contractABI, bytecode, req.ConstructorArgs)
	if err != nil {
		return nil, err
	}
	pending.ContractName = contract.Name

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageConfirming),
		Message:  fmt.Sprintf("Waiting for %s to be mined", pending.TxHash.Hex()),
		Spinner:  true,
		Metadata: pending,
	})

	result, err := factory.WaitDeployed(ctx, pending)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})
		uc.progress.Error(fmt.Sprintf("%s was not confirmed: %v", pending.TxHash.Hex(), err))
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageCompleted),
		Message:  fmt.Sprintf("%s deployed to: %s", result.ContractName, result.Address.Hex()),
		Metadata: result,
	})
	return result, nil
}
