package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeploymentRequest describes one contract creation.
// It is built inline per invocation and never mutated after submission.
type DeploymentRequest struct {
	ContractName    string
	ConstructorArgs []any
}

// DeploymentResult is the outcome of a confirmed deployment
type DeploymentResult struct {
	ContractName string         `json:"contractName"`
	Address      common.Address `json:"address"`
	TxHash       common.Hash    `json:"transactionHash"`
	Deployer     common.Address `json:"deployer"`
	Network      string         `json:"network"`
	ChainID      uint64         `json:"chainId"`
	BlockNumber  uint64         `json:"blockNumber"`
	GasUsed      uint64         `json:"gasUsed"`
}

// PendingDeployment is a submitted but not yet confirmed contract creation
type PendingDeployment struct {
	ContractName string
	TxHash       common.Hash
	Address      common.Address // predicted from sender and nonce
	Deployer     common.Address
	Transaction  *types.Transaction
}

// AccountInfo describes a signing account on a network
type AccountInfo struct {
	Address common.Address `json:"address"`
	Balance string         `json:"balance,omitempty"` // wei, decimal
	Nonce   uint64         `json:"nonce"`
	Error   string         `json:"error,omitempty"`
}
