package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract represents a compiled contract discovered in the artifacts directory
type Contract struct {
	Name         string    `json:"name"`
	SourceName   string    `json:"sourceName"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// FullyQualifiedName returns the source:Name form used by block explorers
func (c *Contract) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", c.SourceName, c.Name)
}

// Artifact represents a hardhat compilation artifact (hh-sol-artifact-1)
type Artifact struct {
	Format                 string          `json:"_format"`
	ContractName           string          `json:"contractName"`
	SourceName             string          `json:"sourceName"`
	ABI                    json.RawMessage `json:"abi"`
	Bytecode               string          `json:"bytecode"`
	DeployedBytecode       string          `json:"deployedBytecode"`
	LinkReferences         map[string]any  `json:"linkReferences"`
	DeployedLinkReferences map[string]any  `json:"deployedLinkReferences"`
}

// CreationCode decodes the creation bytecode
func (a *Artifact) CreationCode() ([]byte, error) {
	if len(a.LinkReferences) > 0 {
		return nil, fmt.Errorf("artifact %s requires library linking, which is not supported", a.ContractName)
	}
	code := strings.TrimSpace(a.Bytecode)
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", a.ContractName)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	decoded, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("artifact %s has malformed bytecode: %w", a.ContractName, err)
	}
	return decoded, nil
}

// ParseABI decodes the artifact's ABI
func (a *Artifact) ParseABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", a.ContractName)
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("artifact %s has an invalid ABI: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// IsDeployable reports whether the artifact carries creation code
func (a *Artifact) IsDeployable() bool {
	code := strings.TrimSpace(a.Bytecode)
	return code != "" && code != "0x"
}
