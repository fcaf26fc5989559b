package boardflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boardflow/boardflow/pkg/boardflow/host"
	"github.com/boardflow/boardflow/pkg/boardflow/observability"
)

// ExecutionContext is the per-activation bridge between node code and the
// host. It carries the resolved input values, a write-once output buffer,
// the node's permission set (copied from its definition) and the eventual
// result.
//
// A context never outlives the activation that created it and is never
// reused, even when the same instance re-fires later in the same run.
// Its output buffer is the only channel by which a node affects anything
// outside itself.
type ExecutionContext struct {
	context.Context

	runID    string
	board    string
	instance string
	def      *Definition

	logger  *slog.Logger
	perms   PermissionSet
	http    *host.Client
	metrics observability.MetricsRecorder

	inputs    map[string]any
	outputs   map[string]any
	activated []string
	result    *Result
}

// newExecutionContext builds the context for one activation.
// inputs must already be canonicalized.
func newExecutionContext(ctx context.Context, cfg *runConfig, board string, bi *boundInstance, inputs map[string]any) *ExecutionContext {
	return &ExecutionContext{
		Context:  ctx,
		runID:    cfg.runID,
		board:    board,
		instance: bi.id,
		def:      bi.def,
		logger:   observability.EnrichLogger(cfg.logger, cfg.runID, board, bi.id),
		perms:    bi.def.PermissionSet(),
		http:     cfg.http,
		metrics:  cfg.metrics,
		inputs:   inputs,
		outputs:  make(map[string]any),
	}
}

// RunID returns the identifier of the owning run.
func (c *ExecutionContext) RunID() string {
	return c.runID
}

// BoardName returns the name of the board being run.
func (c *ExecutionContext) BoardName() string {
	return c.board
}

// InstanceID returns the id of the activating instance.
func (c *ExecutionContext) InstanceID() string {
	return c.instance
}

// NodeName returns the definition name of the activating node.
func (c *ExecutionContext) NodeName() string {
	return c.def.Name
}

// Logger returns the run logger enriched with run, board and instance
// fields. Logging is informational and requires no permission.
func (c *ExecutionContext) Logger() *slog.Logger {
	return c.logger
}

// Permissions returns a copy of the activation's permission set.
func (c *ExecutionContext) Permissions() PermissionSet {
	return c.perms.Clone()
}

// Input returns the resolved value of a data input pin.
//
// Fails with ErrUnknownPin for an undeclared pin and ErrMissingInput for
// an input with no bound value, no override and no default.
func (c *ExecutionContext) Input(pinID string) (any, error) {
	pin, ok := c.def.Pin(pinID)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrUnknownPin, pinID, c.def.Name)
	}
	if pin.Direction != Input || pin.IsExec() {
		return nil, fmt.Errorf("%w: %q is not a data input", ErrUnknownPin, pinID)
	}
	v, ok := c.inputs[pinID]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrMissingInput, pinID, c.def.Name)
	}
	return v, nil
}

// InputString returns a string input value.
func (c *ExecutionContext) InputString(pinID string) (string, error) {
	v, err := c.Input(pinID)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: input %q is %T, want string", ErrTypeMismatch, pinID, v)
	}
	return s, nil
}

// InputInt returns an integer input value.
func (c *ExecutionContext) InputInt(pinID string) (int64, error) {
	v, err := c.Input(pinID)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: input %q is %T, want int64", ErrTypeMismatch, pinID, v)
	}
	return n, nil
}

// InputBool returns a boolean input value.
func (c *ExecutionContext) InputBool(pinID string) (bool, error) {
	v, err := c.Input(pinID)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: input %q is %T, want bool", ErrTypeMismatch, pinID, v)
	}
	return b, nil
}

// InputFloat returns a float input value.
func (c *ExecutionContext) InputFloat(pinID string) (float64, error) {
	v, err := c.Input(pinID)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: input %q is %T, want float64", ErrTypeMismatch, pinID, v)
	}
	return f, nil
}

// InputBytes returns a bytes input value.
func (c *ExecutionContext) InputBytes(pinID string) ([]byte, error) {
	v, err := c.Input(pinID)
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: input %q is %T, want []byte", ErrTypeMismatch, pinID, v)
	}
	return b, nil
}

// SetOutput writes a value to a declared output pin.
//
// Fails with ErrUnknownPin when pinID is not a data output of this node,
// ErrTypeMismatch when the value's shape disagrees with the pin's type,
// and ErrOutputAlreadySet on a second write: the buffer is write-once.
func (c *ExecutionContext) SetOutput(pinID string, v any) error {
	pin, ok := c.def.Pin(pinID)
	if !ok {
		return fmt.Errorf("%w: %q on %q", ErrUnknownPin, pinID, c.def.Name)
	}
	if pin.Direction != Output || pin.IsExec() {
		return fmt.Errorf("%w: %q is not a data output", ErrUnknownPin, pinID)
	}
	canon, err := pin.Type.Canonical(v)
	if err != nil {
		return fmt.Errorf("output %q: %w", pinID, err)
	}
	if _, dup := c.outputs[pinID]; dup {
		return fmt.Errorf("%w: %q", ErrOutputAlreadySet, pinID)
	}
	c.outputs[pinID] = canon
	return nil
}

// ActivateExec marks an exec output pin to fire when this activation
// completes successfully. A successful node that activates none fires
// every exec output except a declared error pin.
func (c *ExecutionContext) ActivateExec(pinID string) error {
	pin, ok := c.def.Pin(pinID)
	if !ok {
		return fmt.Errorf("%w: %q on %q", ErrUnknownPin, pinID, c.def.Name)
	}
	if !pin.IsExec() || pin.Direction != Output {
		return fmt.Errorf("%w: %q", ErrNotExecPin, pinID)
	}
	for _, id := range c.activated {
		if id == pinID {
			return nil
		}
	}
	c.activated = append(c.activated, pinID)
	return nil
}

// Success reports the activation as successful. The first report wins;
// later Success or Fail calls are ignored.
func (c *ExecutionContext) Success() {
	if c.result == nil {
		c.result = &Result{Status: StatusSuccess}
	}
}

// Fail reports the activation as failed with an explanatory message.
// The first report wins; later Success or Fail calls are ignored.
func (c *ExecutionContext) Fail(message string) {
	if c.result == nil {
		c.result = &Result{Status: StatusFail, Message: message}
	}
}

// HTTPRequest performs an outbound HTTP call through the capability gate.
//
// The gate is consulted freshly on every call with this activation's
// permission set - never cached from a prior node or prior run. On
// denial the underlying request is not performed and ErrPermissionDenied
// is returned; denial is an expected outcome for the node to handle,
// not a fault.
func (c *ExecutionContext) HTTPRequest(method, url string, headers map[string]string, body []byte) (*host.Response, error) {
	if !Authorize(c.perms, CapabilityHTTP) {
		observability.LogDenial(c.logger, c.instance, c.def.Name, CapabilityHTTP)
		c.metrics.RecordDenial(c.Context, c.def.Name, CapabilityHTTP)
		return nil, fmt.Errorf("%w: %q requires capability %q", ErrPermissionDenied, c.def.Name, CapabilityHTTP)
	}
	return c.http.Do(c.Context, host.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
	})
}

// finalResult returns the reported result, or the implicit failure for a
// node that returned without calling Success or Fail.
func (c *ExecutionContext) finalResult() Result {
	if c.result == nil {
		return Result{Status: StatusFail, Message: "node did not report a result"}
	}
	return *c.result
}
