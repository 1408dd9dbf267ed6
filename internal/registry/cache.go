package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/initium-labs/initium/internal/platform"
)

const (
	cacheFileName = "registry-cache.json"
	// DefaultCacheMaxAge is the default maximum age for cached search results.
	DefaultCacheMaxAge = 24 * time.Hour
	// DefaultSearchSize caps the number of search results requested.
	DefaultSearchSize = 250
)

// SearchCache holds the last registry search.
type SearchCache struct {
	Registry  string        `json:"registry"`
	Query     string        `json:"query"`
	Packages  []PackageInfo `json:"packages"`
	CheckedAt time.Time     `json:"checked_at"`
}

// LoadCache reads the search cache from the config directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(configDir string) (*SearchCache, error) {
	path := filepath.Join(configDir, cacheFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry cache: %w", err)
	}

	var cache SearchCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing registry cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the search cache to the config directory.
func SaveCache(configDir string, cache *SearchCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry cache: %w", err)
	}

	path := filepath.Join(configDir, cacheFileName)
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing registry cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge or nil.
func IsCacheStale(cache *SearchCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}

// Available returns registry packages matching query, served from the cache
// in configDir while it is fresh. refresh bypasses the cache. The second
// result reports whether the cache was used.
func (h *HTTPClient) Available(ctx context.Context, configDir, query string, refresh bool) ([]PackageInfo, bool, error) {
	if !refresh {
		// A corrupt cache is treated as missing.
		cache, _ := LoadCache(configDir)
		if !IsCacheStale(cache, DefaultCacheMaxAge) && cache.Registry == h.baseURL && cache.Query == query {
			return cache.Packages, true, nil
		}
	}

	pkgs, err := h.Search(ctx, query, DefaultSearchSize)
	if err != nil {
		return nil, false, err
	}

	cache := &SearchCache{
		Registry:  h.baseURL,
		Query:     query,
		Packages:  pkgs,
		CheckedAt: time.Now(),
	}
	if err := SaveCache(configDir, cache); err != nil {
		return pkgs, false, err
	}
	return pkgs, false, nil
}
