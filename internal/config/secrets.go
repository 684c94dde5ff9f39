package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/defihorse/horse-deploy/internal/domain"
	"github.com/defihorse/horse-deploy/internal/domain/config"
)

// DefaultSecretsFile is the secrets file name. It must never be committed.
const DefaultSecretsFile = "secrets.json"

// SecretsExampleFile is the committed template of the secrets file
const SecretsExampleFile = "secrets.example.json"

// LoadSecrets reads the secrets file once. A missing or malformed file is
// fatal so that nothing touches the network with a broken setup.
func LoadSecrets(path string) (*config.Secrets, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (copy %s and fill in your keys)", domain.ErrSecretsNotFound, path, SecretsExampleFile)
		}
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	var secrets config.Secrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSecrets, path, err)
	}

	if secrets.Key != "" {
		if _, err := ParsePrivateKey(secrets.Key); err != nil {
			return nil, fmt.Errorf("%w: %s: key: %v", domain.ErrMalformedSecrets, path, err)
		}
	}

	return &secrets, nil
}
