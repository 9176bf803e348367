// Package cache provides in-memory caching for expensive analysis results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching analysis results.
type Cache interface {
	// Get retrieves a cached value by key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given key and TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error

	// Stats returns cache statistics.
	Stats() Stats

	// Close releases any resources held by the cache.
	Close() error
}

// Stats contains cache performance statistics.
type Stats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Sets       int64     `json:"sets"`
	Entries    int64     `json:"entries"`
	LastAccess time.Time `json:"last_access"`
}

// Config holds cache configuration.
type Config struct {
	// Maximum number of entries (0 = unlimited)
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// Default TTL for cache entries (0 = no expiration)
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`

	// Cleanup interval for expired entries (0 disables the sweeper)
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
}

// AnalysisKey builds a deterministic cache key for source analysis: the key
// depends only on the analyzed text, so identical submissions hit the cache
// regardless of the algorithm name attached to them.
func AnalysisKey(code string) string {
	h := sha256.Sum256([]byte(code))
	return fmt.Sprintf("analysis_%s", hex.EncodeToString(h[:])[:16])
}
