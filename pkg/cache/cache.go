// Package cache remembers which document contents are already canonical.
//
// The formatter is run over the same configuration files again and again
// (pre-commit hooks, CI checks). A file whose exact bytes were confirmed
// canonical under the same layout options does not need to be parsed and
// rendered again, so the pipeline stores a marker keyed by the content hash
// and the options, and short-circuits on a hit.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: shared entries for CI runners and the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are produced by a [Keyer] so that every option that influences the
// output also influences the key:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.FormatKey(cache.Hash(data), cache.FormatKeyOpts{MaxWidth: 100})
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// DefaultTTL is how long a canonical marker stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte store with expiration. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// FormatKeyOpts lists every input besides the content that changes the
// rendered output.
type FormatKeyOpts struct {
	Indent         string `json:"indent"`
	MaxWidth       int    `json:"max_width"`
	MaxGroupLevel  int    `json:"max_group_level"`
	GroupSeparator string `json:"group_separator"`
	Version        string `json:"version"` // formatter build, so layout changes invalidate entries
}

// Keyer generates cache keys.
type Keyer interface {
	// FormatKey returns the key for the canonical marker of a content hash.
	FormatKey(contentHash string, opts FormatKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FormatKey returns "format:<sha256(contentHash, opts)>".
func (DefaultKeyer) FormatKey(contentHash string, opts FormatKeyOpts) string {
	return hashKey("format", contentHash, opts)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns prefix + ":" + the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}
