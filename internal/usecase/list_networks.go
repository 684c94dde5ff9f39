package usecase

import (
	"context"
	"fmt"
	"log/slog"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe queries every endpoint for its chain ID
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Profile *config.NetworkProfile
	Active  bool
	ChainID uint64
	Cached  bool // chain ID taken from an earlier probe
	Probed  bool
	Error   error

	// SameChain lists the other profiles seen serving ChainID
	SameChain []string
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	config *config.RuntimeConfig
	prober ChainProber
	cache  ChainIDCache
	log    *slog.Logger
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, prober ChainProber, cache ChainIDCache, log *slog.Logger) *ListNetworks {
	return &ListNetworks{
		config: cfg,
		prober: prober,
		cache:  cache,
		log:    log,
	}
}

// Run executes the use case. Probe failures are reported per network.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := internalconfig.NetworkNames(uc.config.Deploy)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		profile := uc.config.Deploy.Networks[name]
		status := NetworkStatus{
			Profile: profile,
			Active:  uc.config.Network != nil && uc.config.Network.Name == name,
			ChainID: profile.ChainID,
		}

		if params.Probe {
			uc.probe(ctx, &status)
		} else if status.ChainID == 0 && profile.URL != "" {
			if chainID, ok := uc.cache.Lookup(profile.URL); ok {
				status.ChainID = chainID
				status.Cached = true
			}
		}

		if status.ChainID != 0 {
			status.SameChain = lo.Without(uc.cache.Names(status.ChainID), name)
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

func (uc *ListNetworks) probe(ctx context.Context, status *NetworkStatus) {
	profile := status.Profile
	chainID, err := uc.prober.ProbeChainID(ctx, profile)
	if err != nil {
		status.Error = err
		return
	}
	status.Probed = true
	status.ChainID = chainID

	if profile.ChainID != 0 && profile.ChainID != chainID {
		status.Error = fmt.Errorf("%w: expects %d, endpoint reports %d", domain.ErrChainIDMismatch, profile.ChainID, chainID)
	}

	if profile.URL == "" {
		return
	}
	if err := uc.cache.Store(profile.Name, profile.URL, chainID); err != nil {
		uc.log.Warn("failed to cache chain id", "network", profile.Name, "error", err)
	}
}
