// Package catalog records parse runs and the IR they produced in a SQLite
// database, so earlier results can be listed and inspected later.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// ErrRunNotFound is returned when no run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun is returned when an ID prefix matches more than one run.
var ErrAmbiguousRun = errors.New("ambiguous run id")

// Run is one recorded parse.
type Run struct {
	ID           string    `json:"id"`
	Dialect      string    `json:"dialect"`
	Sources      []string  `json:"sources"`
	StartedAt    time.Time `json:"started_at"`
	EntityCount  int       `json:"entity_count"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
}

// Entity is a stored IR record. Body holds its JSON encoding.
type Entity struct {
	Seq  int             `json:"seq"`
	Kind string          `json:"kind"`
	Name string          `json:"name"`
	Body json.RawMessage `json:"body"`
}

// Diagnostic is a stored parse diagnostic.
type Diagnostic struct {
	Statement int    `json:"statement"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

// RunInput is everything recorded for one parse.
type RunInput struct {
	Dialect     string
	Sources     []string
	Entities    []core.Entity
	Diagnostics []parser.Diagnostic
}

// Store defines the catalog operations.
type Store interface {
	// RecordRun stores a run with its entities and diagnostics atomically.
	RecordRun(ctx context.Context, in RunInput) (*Run, error)
	// ListRuns returns the most recent runs first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	// GetRun finds a run by full ID or unique ID prefix.
	GetRun(ctx context.Context, id string) (*Run, error)
	// Entities returns the entities of a run in parse order.
	Entities(ctx context.Context, runID string) ([]Entity, error)
	// Diagnostics returns the diagnostics of a run in report order.
	Diagnostics(ctx context.Context, runID string) ([]Diagnostic, error)
	// DeleteRun removes a run and everything recorded with it.
	DeleteRun(ctx context.Context, runID string) error
	Close() error
}
