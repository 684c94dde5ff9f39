package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key (hardhat/anvil account #0)
const (
	testKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeSecrets(t *testing.T, dir, key string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, DefaultSecretsFile), `{"key": "`+key+`", "explorerApiKey": "EXPLORER"}`)
}

func TestProvider(t *testing.T) {
	t.Run("built-in defaults select the default network", func(t *testing.T) {
		dir := t.TempDir()
		writeSecrets(t, dir, testKey)

		v := viper.New()
		v.Set("root", dir)

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Empty(t, cfg.ConfigPath)
		assert.Equal(t, filepath.Join(dir, DefaultSecretsFile), cfg.SecretsPath)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "mainnet", cfg.Network.Name)
		assert.Equal(t, uint64(56), cfg.Network.ChainID)
		assert.Equal(t, []string{testKey}, cfg.Network.Accounts)
		assert.Equal(t, "EXPLORER", cfg.Deploy.Etherscan.APIKey)
		assert.Equal(t, filepath.Join(dir, "artifacts"), cfg.ArtifactsDir())
		assert.Equal(t, filepath.Join(dir, "cache"), cfg.CacheDir())
	})

	t.Run("network flag overrides the default", func(t *testing.T) {
		dir := t.TempDir()
		writeSecrets(t, dir, testKey)

		v := viper.New()
		v.Set("root", dir)
		v.Set("network", "hardhat")
		v.Set("timeout", "90s")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "hardhat", cfg.Network.Name)
		assert.True(t, cfg.Network.IsInProcess())
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})

	t.Run("unknown network suggests close names", func(t *testing.T) {
		dir := t.TempDir()
		writeSecrets(t, dir, testKey)

		v := viper.New()
		v.Set("root", dir)
		v.Set("network", "tesnet")

		_, err := Provider(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
		assert.Contains(t, err.Error(), "testnet")
	})

	t.Run("missing secrets file aborts", func(t *testing.T) {
		v := viper.New()
		v.Set("root", t.TempDir())

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrSecretsNotFound)
	})

	t.Run("empty key fails public profiles at load time", func(t *testing.T) {
		dir := t.TempDir()
		writeSecrets(t, dir, "")

		v := viper.New()
		v.Set("root", dir)
		v.Set("network", "hardhat")

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrMissingSigningKey)
	})

	t.Run("explicit config path must exist", func(t *testing.T) {
		dir := t.TempDir()
		writeSecrets(t, dir, testKey)

		v := viper.New()
		v.Set("root", dir)
		v.Set("config", "custom.toml")

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("custom secrets path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keys", "bsc.json"), `{"key": "`+testKey+`"}`)

		v := viper.New()
		v.Set("root", dir)
		v.Set("secrets", "keys/bsc.json")
		v.Set("network", "localhost")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "keys", "bsc.json"), cfg.SecretsPath)
		assert.Equal(t, "http://127.0.0.1:8545", cfg.Network.URL)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefaultConfigFile), "defaultNetwork = \"hardhat\"\n")
	nested := filepath.Join(root, "contracts", "token")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Chdir(nested)

	found, err := FindProjectRoot()
	require.NoError(t, err)

	// Resolve symlinks (macOS /var -> /private/var)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveNetwork(t *testing.T) {
	resolved, err := resolveDeployFile(DefaultDeployFile(), NewExpander(&testSecrets))
	require.NoError(t, err)

	t.Run("known", func(t *testing.T) {
		profile, err := ResolveNetwork(resolved, "testnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(97), profile.ChainID)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ResolveNetwork(resolved, "")
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})

	t.Run("names are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"hardhat", "localhost", "mainnet", "testnet"}, NetworkNames(resolved))
	})
}
