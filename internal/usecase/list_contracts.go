package usecase

import (
	"context"

	"github.com/defihorse/horse-deploy/internal/domain/models"
)

// ListContractsParams contains parameters for listing contracts
type ListContractsParams struct {
	// All includes interfaces and abstract contracts
	All bool
}

// ContractSummary describes one artifact
type ContractSummary struct {
	Contract   *models.Contract
	Signature  string // constructor parameters, e.g. "(address dfh, address busd)"
	Deployable bool
	Error      error
}

// ListContractsResult contains the result of listing contracts
type ListContractsResult struct {
	Contracts []ContractSummary
}

// ListContracts lists the compiled contracts found in the artifacts directory
type ListContracts struct {
	artifacts ArtifactRepository
	parser    ArgumentParser
}

// NewListContracts creates a new ListContracts use case
func NewListContracts(artifacts ArtifactRepository, parser ArgumentParser) *ListContracts {
	return &ListContracts{
		artifacts: artifacts,
		parser:    parser,
	}
}

// Run executes the use case
func (uc *ListContracts) Run(ctx context.Context, params ListContractsParams) (*ListContractsResult, error) {
	contracts, err := uc.artifacts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListContractsResult{}
	for _, contract := range contracts {
		summary := ContractSummary{
			Contract:   contract,
			Deployable: contract.Artifact.IsDeployable(),
		}
		if !summary.Deployable && !params.All {
			continue
		}

		contractABI, err := contract.Artifact.ParseABI()
		if err != nil {
			summary.Error = err
		} else {
			summary.Signature = uc.parser.Signature(contractABI.Constructor.Inputs)
		}
		result.Contracts = append(result.Contracts, summary)
	}
	return result, nil
}
