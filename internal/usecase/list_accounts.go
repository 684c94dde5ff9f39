package usecase

import (
	"context"
	"fmt"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
)

// ListAccountsResult contains the signers of the active network
type ListAccountsResult struct {
	Network  *config.NetworkProfile
	Accounts []models.AccountInfo
}

// ListAccounts prints the accounts that would sign deployments
type ListAccounts struct {
	config    *config.RuntimeConfig
	inspector AccountInspector
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(cfg *config.RuntimeConfig, inspector AccountInspector) *ListAccounts {
	return &ListAccounts{
		config:    cfg,
		inspector: inspector,
	}
}

// Run executes the use case
func (uc *ListAccounts) Run(ctx context.Context) (*ListAccountsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: no active network", domain.ErrUnknownNetwork)
	}

	accounts, err := uc.inspector.InspectAccounts(ctx, network)
	if err != nil {
		return nil, err
	}

	return &ListAccountsResult{
		Network:  network,
		Accounts: accounts,
	}, nil
}
