package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrConfigNotFound is returned when the project configuration is missing
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrSecretsNotFound is returned when the secrets file doesn't exist
	ErrSecretsNotFound = errors.New("secrets file not found")

	// ErrMalformedSecrets is returned when the secrets file can't be parsed
	ErrMalformedSecrets = errors.New("malformed secrets file")

	// ErrMissingSigningKey is returned when a public network has no signing key
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrInvalidSigningKey is returned when a configured key is not a valid private key
	ErrInvalidSigningKey = errors.New("invalid signing key")

	// ErrUnknownNetwork is returned when a network name is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrChainIDMismatch is returned when the endpoint serves a different chain
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrConstructorArgs is returned when constructor arguments don't match the ABI
	ErrConstructorArgs = errors.New("invalid constructor arguments")

	// ErrDeploymentFailed is returned when the deployment transaction did not create a contract
	ErrDeploymentFailed = errors.New("deployment failed")
)

// ContractNotFoundErr carries close matches for an unknown contract name
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	return withSuggestions(fmt.Sprintf("contract %q not found in artifacts", e.Name), e.Suggestions)
}

func (e ContractNotFoundErr) Unwrap() error {
	return ErrContractNotFound
}

// UnknownNetworkErr carries close matches for an unknown network name
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	return withSuggestions(fmt.Sprintf("network %q is not configured", e.Name), e.Suggestions)
}

func (e UnknownNetworkErr) Unwrap() error {
	return ErrUnknownNetwork
}

func withSuggestions(msg string, suggestions []string) string {
	if len(suggestions) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (did you mean: %s?)", msg, strings.Join(suggestions, ", "))
}
