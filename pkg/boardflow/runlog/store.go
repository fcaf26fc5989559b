// Package runlog persists per-activation trace records so finished runs
// can be inspected after the fact.
package runlog

import (
	"errors"
	"time"
)

// Record is one node activation as it appeared in a run.
type Record struct {
	// RunID identifies the run.
	RunID string

	// Seq orders records within a run, starting at 1.
	Seq int

	// Instance and Node identify the activation.
	Instance string
	Node     string

	// Status is the activation outcome ("success" or "fail").
	Status string

	// Message carries the failure message, when any.
	Message string

	// DurationMs is the node body execution time.
	DurationMs int64

	// Timestamp is when the record was appended.
	Timestamp time.Time
}

// Store persists run trace records.
// Implementations must be safe for concurrent use; parallel runs append
// interleaved records.
type Store interface {
	// Append adds a record. The store assigns Seq and Timestamp when
	// they are zero.
	Append(rec Record) error

	// List returns all records for a run, ordered by sequence.
	// Returns an empty slice (not an error) for an unknown run.
	List(runID string) ([]Record, error)

	// DeleteRun removes all records for a run.
	// Returns nil if the run has no records.
	DeleteRun(runID string) error

	// Close releases any resources.
	Close() error
}

// Sentinel errors for trace stores.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("run log store closed")
)
