package contracts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, root, source, name, bytecode string) {
	t.Helper()
	dir := filepath.Join(root, "artifacts", source)
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `{"_format":"hh-sol-artifact-1","contractName":"` + name + `","sourceName":"` + source +
		`","abi":[],"bytecode":"` + bytecode + `","deployedBytecode":"0x","linkReferences":{},"deployedLinkReferences":{}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".dbg.json"), []byte(`{"_format":"hh-sol-dbg-1","buildInfo":"../../build-info/abc.json"}`), 0644))
}

func newTestRepository(t *testing.T, root string) *Repository {
	cfg := &config.RuntimeConfig{
		ProjectRoot: root,
		Deploy:      &config.DeployConfig{Paths: config.PathsConfig{Artifacts: "./artifacts"}},
	}
	return NewRepository(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRepository(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "contracts/DefiHorse.sol", "DefiHorse", "0x6001")
	writeArtifact(t, root, "contracts/DefiHorseIBCO.sol", "DefiHorseIBCO", "0x6002")
	writeArtifact(t, root, "contracts/IERC20.sol", "IERC20", "0x")
	writeArtifact(t, root, "contracts/a/Token.sol", "Token", "0x6003")
	writeArtifact(t, root, "contracts/b/Token.sol", "Token", "0x6004")

	// build info and stray json files are not artifacts
	require.NoError(t, os.MkdirAll(filepath.Join(root, "artifacts", "build-info"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "artifacts", "build-info", "abc.json"), []byte(`{"_format":"hh-sol-build-info-1"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "artifacts", "notes.json"), []byte(`[1,2]`), 0644))

	repo := newTestRepository(t, root)
	ctx := context.Background()

	t.Run("by name", func(t *testing.T) {
		contract, err := repo.GetContract(ctx, "DefiHorseIBCO")
		require.NoError(t, err)
		assert.Equal(t, "contracts/DefiHorseIBCO.sol", contract.SourceName)
		assert.Equal(t, "0x6002", contract.Artifact.Bytecode)
		assert.Equal(t, filepath.Join(root, "artifacts", "contracts/DefiHorseIBCO.sol", "DefiHorseIBCO.json"), contract.ArtifactPath)
	})

	t.Run("by fully qualified name", func(t *testing.T) {
		contract, err := repo.GetContract(ctx, "contracts/b/Token.sol:Token")
		require.NoError(t, err)
		assert.Equal(t, "0x6004", contract.Artifact.Bytecode)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		_, err := repo.GetContract(ctx, "Token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contracts/a/Token.sol:Token, contracts/b/Token.sol:Token")
	})

	t.Run("unknown name suggests", func(t *testing.T) {
		_, err := repo.GetContract(ctx, "DefiHors")
		require.ErrorIs(t, err, domain.ErrContractNotFound)

		var notFound domain.ContractNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"DefiHorse", "DefiHorseIBCO"}, notFound.Suggestions)
	})

	t.Run("list", func(t *testing.T) {
		contracts, err := repo.ListContracts(ctx)
		require.NoError(t, err)
		names := make([]string, len(contracts))
		for i, c := range contracts {
			names[i] = c.FullyQualifiedName()
		}
		assert.Equal(t, []string{
			"contracts/DefiHorse.sol:DefiHorse",
			"contracts/DefiHorseIBCO.sol:DefiHorseIBCO",
			"contracts/IERC20.sol:IERC20",
			"contracts/a/Token.sol:Token",
			"contracts/b/Token.sol:Token",
		}, names)
	})
}

func TestRepositoryMissingArtifacts(t *testing.T) {
	repo := newTestRepository(t, t.TempDir())

	_, err := repo.GetContract(context.Background(), "DefiHorse")
	require.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Contains(t, err.Error(), "compile the contracts first")
}
