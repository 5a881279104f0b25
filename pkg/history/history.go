// Package history records a summary of every audit.
//
// Each audit appends an [Entry] to a [Store]. The CLI uses a [FileStore]
// holding a JSON array under the XDG data directory; deployments that audit
// many repositories can point the CLI at MongoDB instead ([MongoStore]).
// Recording history is best effort: callers log a failed Append and carry on.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
)

// DefaultLimit is the number of entries List returns when limit <= 0.
const DefaultLimit = 20

// Summary holds the counters of one audit.
type Summary struct {
	Direct   int `json:"direct" bson:"direct"`
	Indirect int `json:"indirect" bson:"indirect"`
	Other    int `json:"other" bson:"other"`
}

// Entry is one recorded audit.
type Entry struct {
	ID       string    `json:"id" bson:"_id"`
	Date     time.Time `json:"date" bson:"date"`
	Project  string    `json:"project,omitempty" bson:"project,omitempty"`
	Category string    `json:"category,omitempty" bson:"category,omitempty"`
	Degraded bool      `json:"degraded,omitempty" bson:"degraded,omitempty"`
	Summary  Summary   `json:"summary" bson:"summary"`
}

// NewEntry summarizes r for project. Degraded marks audits that ran
// without a resolved tree.
func NewEntry(project string, r *classify.Result, degraded bool) Entry {
	return Entry{
		ID:       uuid.NewString(),
		Date:     time.Now().UTC(),
		Project:  project,
		Category: r.Filter,
		Degraded: degraded,
		Summary: Summary{
			Direct:   r.DirectCount,
			Indirect: r.IndirectCount,
			Other:    len(r.ByCategory[catalog.Other]),
		},
	}
}

// Store is the interface for history backends.
type Store interface {
	// Append records an entry.
	Append(ctx context.Context, e Entry) error
	// List returns up to limit entries, most recent first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Close releases backend resources.
	Close() error
}

// NullStore discards every entry.
type NullStore struct{}

// NewNullStore creates a store that records nothing.
func NewNullStore() Store { return NullStore{} }

func (NullStore) Append(context.Context, Entry) error        { return nil }
func (NullStore) List(context.Context, int) ([]Entry, error) { return nil, nil }
func (NullStore) Close() error                               { return nil }
