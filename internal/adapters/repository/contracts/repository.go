package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	domainconfig "github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/defihorse/horse-deploy/internal/usecase"
)

const (
	artifactFormat = "hh-sol-artifact-1"
	debugSuffix    = ".dbg.json"
	buildInfoDir   = "build-info"
)

// Repository indexes the hardhat artifacts directory
type Repository struct {
	artifactsDir  string
	contracts     map[string]*models.Contract   // key: "sourceName:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a repository over the configured artifacts directory
func NewRepository(cfg *domainconfig.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  cfg.ArtifactsDir(),
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: artifacts directory %s does not exist (compile the contracts first)", domain.ErrContractNotFound, r.artifactsDir)
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == buildInfoDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, debugSuffix) {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.contracts))
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file under artifacts is an artifact
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return nil
	}
	if artifact.Format != artifactFormat || artifact.ContractName == "" {
		return nil
	}

	contract := &models.Contract{
		Name:         artifact.ContractName,
		SourceName:   artifact.SourceName,
		ArtifactPath: path,
		Artifact:     &artifact,
	}

	r.contracts[contract.FullyQualifiedName()] = contract
	r.contractNames[contract.Name] = append(r.contractNames[contract.Name], contract)
	return nil
}

// GetContract retrieves a contract by name or source:Name
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, ok := r.contracts[key]; ok {
		return contract, nil
	}

	matches := r.contractNames[key]
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		names := make([]string, 0, len(r.contractNames))
		for name := range r.contractNames {
			names = append(names, name)
		}
		return nil, domain.ContractNotFoundErr{Name: key, Suggestions: config.SuggestNames(key, names)}
	default:
		qualified := make([]string, len(matches))
		for i, m := range matches {
			qualified[i] = m.FullyQualifiedName()
		}
		sort.Strings(qualified)
		return nil, fmt.Errorf("contract name %q is ambiguous, use one of: %s", key, strings.Join(qualified, ", "))
	}
}

// ListContracts returns every indexed contract sorted by name
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := make([]*models.Contract, 0, len(r.contracts))
	for _, contract := range r.contracts {
		contracts = append(contracts, contract)
	}
	sort.Slice(contracts, func(i, j int) bool {
		if contracts[i].Name != contracts[j].Name {
			return contracts[i].Name < contracts[j].Name
		}
		return contracts[i].SourceName < contracts[j].SourceName
	})
	return contracts, nil
}

// Ensure the repository implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
