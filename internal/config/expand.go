package config

import (
	"crypto/ecdsa"
	"os"
	"sort"

	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
)

// Names the secrets file exposes to ${...} references
const (
	SecretKeyRef         = "key"
	SecretExplorerKeyRef = "explorerApiKey"
)

// PrivateKey is a parsed signing key together with its address
type PrivateKey struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// NewExpander returns a function expanding ${key} and ${explorerApiKey} from
// the secrets file and any other ${VAR} from the environment
func NewExpander(secrets *config.Secrets) func(string) string {
	return func(s string) string {
		return os.Expand(s, func(name string) string {
			if secrets != nil {
				switch name {
				case SecretKeyRef:
					return secrets.Key
				case SecretExplorerKeyRef:
					return secrets.ExplorerAPIKey
				}
			}
			return os.Getenv(name)
		})
	}
}

// SuggestNames returns up to three candidates that fuzzily match name
func SuggestNames(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		// fuzzy requires the pattern's runes in order; retry the other way
		// round so that typos with missing letters still get a hint
		for _, candidate := range candidates {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}

	suggestions := make([]string, 0, 3)
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	sort.Strings(suggestions)
	return suggestions
}
