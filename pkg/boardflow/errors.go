package boardflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for registration.
var (
	// ErrDuplicateName indicates a node with the same name is already registered.
	ErrDuplicateName = errors.New("node name already registered")

	// ErrNotFound indicates a definition lookup for an unknown name.
	ErrNotFound = errors.New("node not found")
)

// Sentinel errors for board loading and compilation.
var (
	// ErrUnknownInstance indicates an edge or entry references an undeclared instance.
	ErrUnknownInstance = errors.New("unknown node instance")

	// ErrUnknownPin indicates a reference to a pin the definition does not declare.
	ErrUnknownPin = errors.New("unknown pin")

	// ErrTypeMismatch indicates a value or edge disagrees with a pin's DataType.
	ErrTypeMismatch = errors.New("data type mismatch")

	// ErrPinDirection indicates an edge connecting pins with the wrong directions.
	ErrPinDirection = errors.New("edge must connect an output pin to an input pin")

	// ErrNoEntry indicates a board with no entry node to start a run from.
	ErrNoEntry = errors.New("board has no entry node")
)

// Sentinel errors for execution.
var (
	// ErrMissingInput indicates an input pin with no bound value and no default.
	ErrMissingInput = errors.New("missing input")

	// ErrOutputAlreadySet indicates a second write to a write-once output pin.
	ErrOutputAlreadySet = errors.New("output already set")

	// ErrPermissionDenied indicates a gated host call outside the node's
	// declared permission set. Expected and node-handleable: the underlying
	// effect did not occur.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotExecPin indicates ActivateExec was called with a non-exec pin.
	ErrNotExecPin = errors.New("pin is not an exec output")

	// ErrBudgetExceeded indicates the run exhausted its activation or time budget.
	ErrBudgetExceeded = errors.New("run budget exceeded")

	// ErrCancelled indicates the run was cancelled externally.
	ErrCancelled = errors.New("run cancelled")
)

// RegistrationError reports why a node module was rejected at load time.
// The module is not added to the registry.
type RegistrationError struct {
	// Node is the definition name, when known.
	Node string
	// Err is the underlying validation error.
	Err error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register node %q: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// BoardError wraps a build-time graph error with its location.
// Board errors are fatal at board load; the run never starts.
type BoardError struct {
	// Board is the board name, when set.
	Board string
	// Instance is the node instance involved, when known.
	Instance string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	if e.Instance != "" {
		return fmt.Sprintf("board %q: instance %q: %v", e.Board, e.Instance, e.Err)
	}
	return fmt.Sprintf("board %q: %v", e.Board, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BoardError) Unwrap() error {
	return e.Err
}

// EdgeError reports an invalid edge found during compilation.
type EdgeError struct {
	// From and To are the edge endpoints as written in the board.
	From, To Endpoint
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %s.%s -> %s.%s: %v",
		e.From.Instance, e.From.Pin, e.To.Instance, e.To.Pin, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EdgeError) Unwrap() error {
	return e.Err
}

// BudgetExceededError aborts a run that exhausted its budget.
// Distinct from node-reported failure and from cancellation: a looped
// board that spins past its budget is never reported as success.
type BudgetExceededError struct {
	// Activations is the number of activations performed.
	Activations int
	// Limit is the configured activation limit (0 when the time budget tripped).
	Limit int
	// LastInstance is the instance that would have activated next.
	LastInstance string
}

// Error implements the error interface.
func (e *BudgetExceededError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("exceeded activation budget (%d) at instance %s", e.Limit, e.LastInstance)
	}
	return fmt.Sprintf("exceeded time budget after %d activations at instance %s", e.Activations, e.LastInstance)
}

// Unwrap returns ErrBudgetExceeded for errors.Is support.
func (e *BudgetExceededError) Unwrap() error {
	return ErrBudgetExceeded
}

// CancelledError aborts a run whose context was cancelled.
// An in-flight host call is abandoned; its result, if it arrives, is
// discarded along with the activation's output buffer.
type CancelledError struct {
	// Instance is the instance about to activate when cancellation was observed.
	Instance string
	// Cause is the context error (context.Canceled or context.DeadlineExceeded).
	Cause error
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	return fmt.Sprintf("cancelled before instance %s: %v", e.Instance, e.Cause)
}

// Unwrap returns ErrCancelled for errors.Is support.
func (e *CancelledError) Unwrap() error {
	return ErrCancelled
}

// ActivationError reports a scheduler fault while activating an instance,
// such as a missing input with no default. Activation errors abort the
// run with a specific reason; they are never treated as success.
type ActivationError struct {
	// Instance is the node instance being activated.
	Instance string
	// Node is the definition name.
	Node string
	// Err is the underlying fault.
	Err error
}

// Error implements the error interface.
func (e *ActivationError) Error() string {
	return fmt.Sprintf("activate %s (%s): %v", e.Instance, e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ActivationError) Unwrap() error {
	return e.Err
}
