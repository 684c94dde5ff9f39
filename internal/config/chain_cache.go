package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// ChainIDCacheFile is the cache file name inside paths.cache
const ChainIDCacheFile = "chainIds.json"

// ChainIDCache remembers the chain IDs reported by RPC endpoints
type ChainIDCache struct {
	path string
	mu   sync.RWMutex
	data chainIDCacheData
}

type chainIDCacheData struct {
	Networks   map[string]uint64   `json:"networks"`   // name -> chainID
	RPCs       map[string]uint64   `json:"rpcs"`       // rpcURL -> chainID
	ChainNames map[uint64][]string `json:"chainNames"` // chainID -> names
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// NewChainIDCache loads the cache from cacheDir. A missing or corrupt
// cache file starts empty.
func NewChainIDCache(cacheDir string) *ChainIDCache {
	c := &ChainIDCache{path: filepath.Join(cacheDir, ChainIDCacheFile)}
	c.load()
	return c
}

// Lookup returns the cached chain ID for an RPC URL
func (c *ChainIDCache) Lookup(rpcURL string) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chainID, ok := c.data.RPCs[rpcURL]
	return chainID, ok
}

// Names returns the network names known to serve chainID
func (c *ChainIDCache) Names(chainID uint64) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := append([]string(nil), c.data.ChainNames[chainID]...)
	sort.Strings(names)
	return names
}

// Store records a probe result and persists the cache
func (c *ChainIDCache) Store(networkName, rpcURL string, chainID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.Networks[networkName] = chainID
	c.data.RPCs[rpcURL] = chainID

	found := false
	for _, name := range c.data.ChainNames[chainID] {
		if name == networkName {
			found = true
			break
		}
	}
	if !found {
		c.data.ChainNames[chainID] = append(c.data.ChainNames[chainID], networkName)
	}
	c.data.UpdatedAt = time.Now()

	return c.save()
}

func (c *ChainIDCache) load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = emptyChainIDCacheData()

	data, err := os.ReadFile(c.path)
	if err != nil {
		// Cache doesn't exist yet, that's fine
		return
	}
	if err := json.Unmarshal(data, &c.data); err != nil {
		c.data = emptyChainIDCacheData()
		return
	}
	if c.data.Networks == nil {
		c.data.Networks = make(map[string]uint64)
	}
	if c.data.RPCs == nil {
		c.data.RPCs = make(map[string]uint64)
	}
	if c.data.ChainNames == nil {
		c.data.ChainNames = make(map[uint64][]string)
	}
}

func (c *ChainIDCache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}

func emptyChainIDCacheData() chainIDCacheData {
	return chainIDCacheData{
		Networks:   make(map[string]uint64),
		RPCs:       make(map[string]uint64),
		ChainNames: make(map[uint64][]string),
	}
}
