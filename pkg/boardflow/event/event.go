// Package event carries run progress events from the scheduler to
// in-process consumers such as an editor's progress view.
//
// Events are informational: dropping one never affects execution, which
// is why the bus publishes without blocking the scheduler.
package event

import "time"

// Type classifies a run event.
type Type string

const (
	// RunStarted fires once when a run begins.
	RunStarted Type = "run_started"

	// RunFinished fires once when a run completes or aborts.
	RunFinished Type = "run_finished"

	// NodeActivated fires when an instance begins executing.
	NodeActivated Type = "node_activated"

	// NodeCompleted fires when an instance reports its result.
	NodeCompleted Type = "node_completed"

	// EdgeFired fires when an exec edge is marked fired.
	EdgeFired Type = "edge_fired"
)

// Event is one scheduler progress notification.
type Event struct {
	// Type classifies the event.
	Type Type

	// RunID identifies the run.
	RunID string

	// Board is the board name.
	Board string

	// Instance and Node identify the activation, when applicable.
	Instance string
	Node     string

	// Pin is the exec-out pin for EdgeFired events.
	Pin string

	// Status and Message carry the node result for NodeCompleted and
	// the run outcome for RunFinished.
	Status  string
	Message string

	// Time is when the event was recorded.
	Time time.Time
}
