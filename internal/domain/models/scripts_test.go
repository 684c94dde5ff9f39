package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployScripts(t *testing.T) {
	scripts := DeployScripts()
	require.Len(t, scripts, 2)

	horse := scripts[0].Request()
	assert.Equal(t, "deploy-horse", scripts[0].Command)
	assert.Equal(t, "DefiHorse", horse.ContractName)
	assert.Empty(t, horse.ConstructorArgs)

	ibco := scripts[1].Request()
	assert.Equal(t, "deploy-ibco", scripts[1].Command)
	assert.Equal(t, "DefiHorseIBCO", ibco.ContractName)
	assert.Equal(t, []any{DFHTokenAddress, BUSDTokenAddress}, ibco.ConstructorArgs)
	assert.Equal(t, "0x5fdab5bdbad5277b383b3482d085f4bfef68828c", strings.ToLower(DFHTokenAddress.Hex()))
	assert.Equal(t, "0xe9e7cea3dedca5984780bafc599bd69add087d56", strings.ToLower(BUSDTokenAddress.Hex()))

	// each invocation gets its own argument slice
	ibco.ConstructorArgs[0] = nil
	assert.Equal(t, DFHTokenAddress, scripts[1].Request().ConstructorArgs[0])
}
