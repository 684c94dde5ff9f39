package adapters

import (
	"github.com/defihorse/horse-deploy/internal/adapters/abi"
	"github.com/defihorse/horse-deploy/internal/adapters/blockchain"
	"github.com/defihorse/horse-deploy/internal/adapters/fs"
	"github.com/defihorse/horse-deploy/internal/adapters/interactive"
	"github.com/defihorse/horse-deploy/internal/adapters/repository/contracts"
	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/google/wire"
)

// ProvideChainIDCache opens the chain ID cache under paths.cache
func ProvideChainIDCache(cfg *config.RuntimeConfig) *internalconfig.ChainIDCache {
	return internalconfig.NewChainIDCache(cfg.CacheDir())
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),

	ProvideChainIDCache,
	wire.Bind(new(usecase.ChainIDCache), new(*internalconfig.ChainIDCache)),
)

// RepositorySet provides artifact lookup
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// ABISet provides constructor argument handling
var ABISet = wire.NewSet(
	abi.NewParser,
	wire.Bind(new(usecase.ArgumentParser), new(*abi.Parser)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// BlockchainSet provides chain access
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,

	blockchain.NewFactoryResolverAdapter,
	wire.Bind(new(usecase.FactoryResolver), new(*blockchain.FactoryResolverAdapter)),

	blockchain.NewInspectorAdapter,
	wire.Bind(new(usecase.AccountInspector), new(*blockchain.InspectorAdapter)),
	wire.Bind(new(usecase.ChainProber), new(*blockchain.InspectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RepositorySet,
	ABISet,
	InteractiveSet,
	BlockchainSet,
)
