// Package store persists diagram scripts.
//
// A [Diagram] is the TOML source of a script plus bookkeeping. Renders are
// never stored here; they are derived on demand and cached by pkg/cache.
//
// Backends:
//   - [MemoryStore]: process-local, for tests and `gitgraph serve` without a
//     database
//   - [FileStore]: one JSON file per diagram, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/errors"
)

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Diagram is a stored script.
type Diagram struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	Script     string    `json:"script" bson:"script"`
	ScriptHash string    `json:"script_hash" bson:"script_hash"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface implemented by diagram backends.
type Store interface {
	// Get returns ErrCodeDiagramNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Diagram, error)
	// Put inserts or replaces d.
	Put(ctx context.Context, d *Diagram) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// List returns the most recently updated diagrams first.
	List(ctx context.Context, limit int) ([]*Diagram, error)
	Close() error
}

// NewDiagram creates a diagram with a fresh id.
func NewDiagram(title, script string) *Diagram {
	now := time.Now().UTC()
	return &Diagram{
		ID:         uuid.NewString(),
		Title:      title,
		Script:     script,
		ScriptHash: cache.ScriptHash([]byte(script)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Update replaces the script and bumps UpdatedAt.
func (d *Diagram) Update(script string) {
	d.Script = script
	d.ScriptHash = cache.ScriptHash([]byte(script))
	d.UpdatedAt = time.Now().UTC()
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", id)
}

func checkID(id string) error {
	return errors.ValidateDiagramID(id)
}
