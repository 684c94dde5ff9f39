package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// Token addresses on BSC mainnet passed to the IBCO constructor
var (
	DFHTokenAddress  = common.HexToAddress("0x5fdAb5BDbad5277B383B3482D085f4bFef68828C")
	BUSDTokenAddress = common.HexToAddress("0xe9e7cea3dedca5984780bafc599bd69add087d56")
)

// DeployScript is a fixed deployment exposed as its own command
type DeployScript struct {
	Command      string
	Description  string
	ContractName string
	Args         func() []any
}

// Request builds a fresh request for every invocation
func (s DeployScript) Request() DeploymentRequest {
	var args []any
	if s.Args != nil {
		args = s.Args()
	}
	return DeploymentRequest{ContractName: s.ContractName, ConstructorArgs: args}
}

// DeployScripts lists the project's fixed deployments
func DeployScripts() []DeployScript {
	return []DeployScript{
		{
			Command:      "deploy-horse",
			Description:  "Deploy the DefiHorse contract",
			ContractName: "DefiHorse",
		},
		{
			Command:      "deploy-ibco",
			Description:  "Deploy the DefiHorseIBCO sale contract for DFH/BUSD",
			ContractName: "DefiHorseIBCO",
			Args: func() []any {
				return []any{DFHTokenAddress, BUSDTokenAddress}
			},
		},
	}
}
