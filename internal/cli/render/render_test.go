package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/defihorse/horse-deploy/internal/domain/models"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestDeployRenderer(t *testing.T) {
	result := &models.DeploymentResult{
		ContractName: "DefiHorseIBCO",
		Address:      common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Network:      "hardhat",
		ChainID:      1337,
	}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		r := NewDeployRenderer(&out, false)
		r.PrintDeploying("Deploying DefiHorseIBCO...")
		require.NoError(t, r.Render(result))
		assert.Equal(t, "Deploying DefiHorseIBCO...\nDefiHorseIBCO deployed to: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		r := NewDeployRenderer(&out, true)
		r.PrintDeploying("Deploying DefiHorseIBCO...")
		require.NoError(t, r.Render(result))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "DefiHorseIBCO", decoded["contractName"])
		assert.Equal(t, "0x5fbdb2315678afecb367f032d93f642f64180aa3", decoded["address"])
		assert.Equal(t, float64(1337), decoded["chainId"])
	})
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{Networks: []usecase.NetworkStatus{
		{Profile: &config.NetworkProfile{Name: "hardhat"}, ChainID: 1337, Probed: true},
		{Profile: &config.NetworkProfile{Name: "localhost", URL: "http://127.0.0.1:8545"}, Error: errors.New("connection refused")},
		{Profile: &config.NetworkProfile{Name: "testnet", URL: "https://rpc.example.org", ChainID: 97, Accounts: []string{"k"}}, ChainID: 97, Active: true, SameChain: []string{"bsc-testnet"}},
	}}

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, false).Render(result))

		text := out.String()
		assert.Contains(t, text, "CHAIN ID")
		assert.Contains(t, text, "in-process")
		assert.Contains(t, text, "1337 (Probed)")
		assert.Contains(t, text, "97 (Configured)")
		assert.Contains(t, text, "✗ connection refused")
		assert.Contains(t, text, "✓ reachable")
		assert.Contains(t, text, "SAME CHAIN")
		assert.Contains(t, text, "bsc-testnet")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, true).Render(result))

		var decoded []networkJSON
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 3)
		assert.Equal(t, "probed", decoded[0].Source)
		assert.Equal(t, "connection refused", decoded[1].Error)
		assert.True(t, decoded[2].Active)
		assert.Equal(t, 1, decoded[2].Accounts)
		assert.Equal(t, []string{"bsc-testnet"}, decoded[2].SameChain)
		assert.Empty(t, decoded[0].SameChain)
	})
}

func TestAccountsRenderer(t *testing.T) {
	result := &usecase.ListAccountsResult{
		Network: &config.NetworkProfile{Name: "hardhat"},
		Accounts: []models.AccountInfo{
			{Address: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), Balance: "1500000000000000000", Nonce: 3},
			{Address: common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), Error: "rate limited"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewAccountsRenderer(&out, false).Render(result))

	text := out.String()
	assert.Contains(t, text, "Accounts on hardhat:")
	assert.Contains(t, text, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Contains(t, text, "1.5000")
	assert.Contains(t, text, "rate limited")
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "10000.0000", formatEther("10000000000000000000000"))
	assert.Equal(t, "0.0000", formatEther("0"))
	assert.Equal(t, "not-a-number", formatEther("not-a-number"))
}

func TestContractsRenderer(t *testing.T) {
	result := &usecase.ListContractsResult{Contracts: []usecase.ContractSummary{
		{Contract: &models.Contract{Name: "DefiHorse", SourceName: "contracts/DefiHorse.sol"}, Signature: "()", Deployable: true},
		{Contract: &models.Contract{Name: "DefiHorseIBCO", SourceName: "contracts/DefiHorseIBCO.sol"}, Signature: "(address dfh, address busd)", Deployable: true},
	}}

	var out bytes.Buffer
	require.NoError(t, NewContractsRenderer(&out, false).Render(result))
	assert.Contains(t, out.String(), "(address dfh, address busd)")
	assert.Contains(t, out.String(), "contracts/DefiHorse.sol")
}

func showConfigResult() *usecase.ShowConfigResult {
	return &usecase.ShowConfigResult{
		ProjectRoot:   "/project",
		SecretsPath:   "/project/secrets.json",
		ActiveNetwork: "testnet",
		Deploy: &internalconfig.DeployFile{
			DefaultNetwork: "mainnet",
			Networks: map[string]internalconfig.NetworkEntry{
				"testnet": {URL: "https://rpc.example.org", ChainID: 97, Accounts: []string{internalconfig.RedactedValue}},
			},
			Etherscan: internalconfig.EtherscanEntry{APIKey: internalconfig.RedactedValue},
		},
		Local:       &domain.LocalConfig{Network: "testnet"},
		LocalPath:   "/project/.horse/config.local.json",
		LocalExists: true,
	}
}

func TestConfigRenderer(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out).RenderConfig(showConfigResult(), FormatTOML))

		text := out.String()
		assert.Contains(t, text, "# config:   built-in defaults")
		assert.Contains(t, text, "# local network: testnet")
		assert.Contains(t, text, "[networks.testnet]")
		assert.Contains(t, text, `"***"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out).RenderConfig(showConfigResult(), FormatYAML))

		var decoded configView
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "testnet", decoded.ActiveNetwork)
		assert.Equal(t, "***", decoded.Settings.Etherscan.APIKey)
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out).RenderConfig(showConfigResult(), FormatJSON))

		var decoded configView
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, []string{"***"}, decoded.Settings.Networks["testnet"].Accounts)
		assert.Equal(t, "testnet", decoded.Local.Network)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := NewConfigRenderer(&bytes.Buffer{}).RenderConfig(showConfigResult(), "xml")
		assert.Error(t, err)
	})
}

func TestInitRenderer(t *testing.T) {
	var out bytes.Buffer
	result := &usecase.InitProjectResult{Steps: []usecase.InitStep{
		{Name: "Create deploy.toml", Success: true, Message: "Created deploy.toml"},
		{Name: "Ignore secrets", Error: errors.New("permission denied")},
	}}
	require.NoError(t, NewInitRenderer(&out).Render(result))

	assert.Contains(t, out.String(), "✅ Created deploy.toml")
	assert.Contains(t, out.String(), "❌ Ignore secrets\n   permission denied")
	assert.NotContains(t, out.String(), "Next steps")
}
