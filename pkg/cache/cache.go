// Package cache stores audit snapshots between runs.
//
// A snapshot is the JSON-encoded result of the last audit of a project,
// keyed by a hash of everything the result depends on (manifest, resolved
// tree, catalog and category filter). A hit lets the CLI skip classification
// and lets other tools read the latest result without re-running the audit.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under the XDG cache directory
//   - [RedisCache]: a shared Redis instance, for teams running audits in CI
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a snapshot stays valid.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the inputs that determine an audit result besides the
// manifest and tree content.
type ResultKeyOpts struct {
	CatalogHash string `json:"catalog"`
	Category    string `json:"category,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies the audit result for a manifest and tree.
	ResultKey(manifest, tree []byte, opts ResultKeyOpts) string
	// LastKey identifies the most recent result for a project, whatever
	// its inputs were.
	LastKey(project string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey hashes the manifest, tree and options into "result:<sha256>".
func (DefaultKeyer) ResultKey(manifest, tree []byte, opts ResultKeyOpts) string {
	return hashKey("result", Hash(manifest), Hash(tree), opts)
}

// LastKey returns "last:<sha256 of project>".
func (DefaultKeyer) LastKey(project string) string {
	return "last:" + Hash([]byte(project))
}
