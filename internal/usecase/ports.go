package usecase

import (
	"context"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// FactoryResolver binds a signer and a chain backend for a network profile
type FactoryResolver interface {
	Resolve(ctx context.Context, network *config.NetworkProfile) (ContractFactory, error)
}

// ContractFactory submits contract creations from a single signer.
// Close releases the backend.
type ContractFactory interface {
	Deployer() common.Address
	ChainID() uint64
	Deploy(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error)
	WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error)
	Close()
}

// AccountInspector reads the signer accounts of a network
type AccountInspector interface {
	InspectAccounts(ctx context.Context, network *config.NetworkProfile) ([]models.AccountInfo, error)
}

// ChainProber asks an endpoint which chain it serves
type ChainProber interface {
	ProbeChainID(ctx context.Context, network *config.NetworkProfile) (uint64, error)
}

// ChainIDCache remembers probe results between runs
type ChainIDCache interface {
	Lookup(rpcURL string) (uint64, bool)
	Names(chainID uint64) []string
	Store(networkName, rpcURL string, chainID uint64) error
}

// InteractiveSelector handles interactive selection
type InteractiveSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// FileWriter handles file system operations for project scaffolding
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content string) error
	AppendLine(ctx context.Context, path string, line string) error
	ReadFile(ctx context.Context, path string) (string, error)
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}

// ProjectTemplates renders the files written by init
type ProjectTemplates interface {
	DeployConfig(ctx context.Context) (string, error)
	SecretsExample(ctx context.Context) (string, error)
}

// LocalConfigStore persists per-checkout defaults
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*domain.LocalConfig, error)
	Save(ctx context.Context, localConfig *domain.LocalConfig) error
	GetPath() string
}

// ExecutionStage represents a stage of a deployment
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "resolving"
	StageDeploying  ExecutionStage = "deploying"
	StageConfirming ExecutionStage = "confirming"
	StageCompleted  ExecutionStage = "completed"
)

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ArgumentParser converts raw command line values into ABI values
type ArgumentParser interface {
	ParseArgs(inputs abi.Arguments, raw []string) ([]any, error)
	Signature(inputs abi.Arguments) string
}
