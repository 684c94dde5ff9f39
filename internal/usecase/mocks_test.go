package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// returns a one-byte runtime; constructor arguments are ignored
	testBytecode = "0x6001600c60003960016000f300"

	ibcoABI  = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"dfh","type":"address"},{"name":"busd","type":"address"}]}]`
	horseABI = `[{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}]`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContract(name, contractABI, bytecode string) *models.Contract {
	return &models.Contract{
		Name:       name,
		SourceName: "contracts/" + name + ".sol",
		Artifact: &models.Artifact{
			Format:       "hh-sol-artifact-1",
			ContractName: name,
			SourceName:   "contracts/" + name + ".sol",
			ABI:          json.RawMessage(contractABI),
			Bytecode:     bytecode,
		},
	}
}

type mockArtifacts struct {
	contracts []*models.Contract
}

func (m *mockArtifacts) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	for _, c := range m.contracts {
		if c.Name == name || c.FullyQualifiedName() == name {
			return c, nil
		}
	}
	return nil, domain.ContractNotFoundErr{Name: name}
}

func (m *mockArtifacts) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	return m.contracts, nil
}

type mockFactoryResolver struct {
	resolveFunc func(context.Context, *config.NetworkProfile) (ContractFactory, error)
	calls       int
}

func (m *mockFactoryResolver) Resolve(ctx context.Context, network *config.NetworkProfile) (ContractFactory, error) {
	m.calls++
	return m.resolveFunc(ctx, network)
}

type mockFactory struct {
	deployer   common.Address
	deployFunc func(context.Context, *abi.ABI, []byte, []any) (*models.PendingDeployment, error)
	waitFunc   func(context.Context, *models.PendingDeployment) (*models.DeploymentResult, error)
	closed     bool
}

func (m *mockFactory) Deployer() common.Address { return m.deployer }
func (m *mockFactory) ChainID() uint64          { return 1337 }
func (m *mockFactory) Close()                   { m.closed = true }

func (m *mockFactory) Deploy(ctx context.Context, contractABI *abi.ABI, bytecode []byte, args []any) (*models.PendingDeployment, error) {
	return m.deployFunc(ctx, contractABI, bytecode, args)
}

func (m *mockFactory) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.DeploymentResult, error) {
	return m.waitFunc(ctx, pending)
}

// mockParser accepts addresses only
type mockParser struct{}

func (mockParser) ParseArgs(inputs abi.Arguments, raw []string) ([]any, error) {
	if len(inputs) != len(raw) {
		return nil, io.ErrUnexpectedEOF
	}
	values := make([]any, len(raw))
	for i, s := range raw {
		values[i] = common.HexToAddress(s)
	}
	return values, nil
}

func (mockParser) Signature(inputs abi.Arguments) string {
	names := make([]string, len(inputs))
	for i, input := range inputs {
		names[i] = input.Name
	}
	return "(" + strings.Join(names, ", ") + ")"
}

type mockSelector struct {
	offered []*models.Contract
	pick    int
}

func (m *mockSelector) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	m.offered = contracts
	return contracts[m.pick], nil
}

type recordingProgress struct {
	events []ProgressEvent
	infos  []string
	errors []string
}

func (r *recordingProgress) OnProgress(ctx context.Context, event ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingProgress) Info(message string)  { r.infos = append(r.infos, message) }
func (r *recordingProgress) Error(message string) { r.errors = append(r.errors, message) }

func (r *recordingProgress) stages() []string {
	stages := make([]string, len(r.events))
	for i, e := range r.events {
		stages[i] = e.Stage
	}
	return stages
}

type mockProber struct {
	chainIDs map[string]uint64
	errs     map[string]error
}

func (m *mockProber) ProbeChainID(ctx context.Context, network *config.NetworkProfile) (uint64, error) {
	if err := m.errs[network.Name]; err != nil {
		return 0, err
	}
	return m.chainIDs[network.Name], nil
}

type memoryChainCache struct {
	rpcs  map[string]uint64
	names map[uint64][]string
}

func (m *memoryChainCache) Lookup(rpcURL string) (uint64, bool) {
	id, ok := m.rpcs[rpcURL]
	return id, ok
}

func (m *memoryChainCache) Store(networkName, rpcURL string, chainID uint64) error {
	if m.rpcs == nil {
		m.rpcs = map[string]uint64{}
	}
	m.rpcs[rpcURL] = chainID
	if m.names == nil {
		m.names = map[uint64][]string{}
	}
	for _, name := range m.names[chainID] {
		if name == networkName {
			return nil
		}
	}
	m.names[chainID] = append(m.names[chainID], networkName)
	return nil
}

func (m *memoryChainCache) Names(chainID uint64) []string {
	names := append([]string(nil), m.names[chainID]...)
	sort.Strings(names)
	return names
}

type memoryConfigStore struct {
	config *domain.LocalConfig
	saved  int
}

func (m *memoryConfigStore) Exists() bool { return m.config != nil }
func (m *memoryConfigStore) GetPath() string {
	return "/project/.horse/config.local.json"
}

func (m *memoryConfigStore) Load(ctx context.Context) (*domain.LocalConfig, error) {
	if m.config == nil {
		return domain.DefaultLocalConfig(), nil
	}
	copied := *m.config
	return &copied, nil
}

func (m *memoryConfigStore) Save(ctx context.Context, cfg *domain.LocalConfig) error {
	m.config = cfg
	m.saved++
	return nil
}
