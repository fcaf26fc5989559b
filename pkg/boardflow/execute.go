package boardflow

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/boardflow/boardflow/pkg/boardflow/event"
	"github.com/boardflow/boardflow/pkg/boardflow/observability"
	"github.com/boardflow/boardflow/pkg/boardflow/runlog"
)

// Outcome is the aggregated result of one run.
type Outcome string

const (
	// OutcomeSuccess - the run completed and its success criterion held.
	OutcomeSuccess Outcome = "success"

	// OutcomeFail - the run completed but a required node failed.
	OutcomeFail Outcome = "fail"

	// OutcomeAborted - the run stopped early: budget exceeded, cancelled,
	// or a scheduler fault. Never reported as success.
	OutcomeAborted Outcome = "aborted"
)

// Report summarizes one run.
type Report struct {
	// RunID identifies the run.
	RunID string

	// Board is the board name.
	Board string

	// Outcome is the aggregated run result.
	Outcome Outcome

	// Results holds the most recent result per activated instance.
	// Instances that never activated are absent.
	Results map[string]Result

	// Activations counts node activations, including re-fires.
	Activations int

	// Duration is the wall-clock run time.
	Duration time.Duration
}

// Run executes the board once.
//
// Within a run, activation is single-threaded and ordered by exec-edge
// resolution; the only state shared with other runs is the read-only
// registry behind the CompiledBoard, so any number of runs may execute
// in parallel.
//
// Returns a non-nil error only when the run aborts: *BudgetExceededError,
// *CancelledError or *ActivationError. A completed run returns a nil
// error and the report's Outcome says whether it succeeded; node-reported
// failures are part of the report, not Go errors.
func (cb *CompiledBoard) Run(ctx context.Context, opts ...RunOption) (report *Report, runErr error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.New().String()
	}

	report = &Report{
		RunID:   cfg.runID,
		Board:   cb.name,
		Results: make(map[string]Result),
	}
	start := time.Now()

	observability.LogRunStart(cfg.logger, cfg.runID, cb.name)
	publishEvent(&cfg, event.Event{Type: event.RunStarted, RunID: cfg.runID, Board: cb.name})

	execCtx := ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, cb.name, cfg.runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	runErr = cb.execute(execCtx, &cfg, report)

	report.Duration = time.Since(start)
	durationMs := float64(report.Duration.Milliseconds())

	if runErr != nil {
		report.Outcome = OutcomeAborted
		lastInstance := ""
		switch e := runErr.(type) {
		case *BudgetExceededError:
			lastInstance = e.LastInstance
		case *CancelledError:
			lastInstance = e.Instance
		case *ActivationError:
			lastInstance = e.Instance
		}
		observability.LogRunAborted(cfg.logger, cfg.runID, runErr, durationMs, lastInstance)
	} else {
		observability.LogRunComplete(cfg.logger, cfg.runID, string(report.Outcome), durationMs, report.Activations)
	}

	cfg.metrics.RecordRun(ctx, string(report.Outcome), report.Duration)
	evt := event.Event{Type: event.RunFinished, RunID: cfg.runID, Board: cb.name, Status: string(report.Outcome)}
	if runErr != nil {
		evt.Message = runErr.Error()
	}
	publishEvent(&cfg, evt)

	return report, runErr
}

// execute drives the run state machine: Ready -> Activating -> Executing
// -> Propagating -> Ready, until the queue drains or the run aborts.
func (cb *CompiledBoard) execute(ctx context.Context, cfg *runConfig, report *Report) error {
	// Run-scoped state. Bound input values and the fired-edge bookkeeping
	// are owned by this run alone; sibling runs never observe them.
	values := make(map[string]map[string]any)
	joinPending := make(map[string]map[int]struct{})
	queue := append([]string(nil), cb.entries...)
	unhandledFail := false

	var deadline time.Time
	if cfg.timeBudget > 0 {
		deadline = time.Now().Add(cfg.timeBudget)
	}

	for len(queue) > 0 {
		instID := queue[0]
		queue = queue[1:]

		if report.Activations >= cfg.maxActivations {
			return &BudgetExceededError{
				Activations:  report.Activations,
				Limit:        cfg.maxActivations,
				LastInstance: instID,
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return &BudgetExceededError{
				Activations:  report.Activations,
				LastInstance: instID,
			}
		}
		select {
		case <-ctx.Done():
			return &CancelledError{Instance: instID, Cause: ctx.Err()}
		default:
		}

		bi := cb.instances[instID]

		// Activating: bind inputs and build the per-activation context.
		inputs, err := cb.bindInputs(bi, values[instID])
		if err != nil {
			return &ActivationError{Instance: instID, Node: bi.def.Name, Err: err}
		}

		observability.LogActivation(cfg.logger, instID, bi.def.Name)
		publishEvent(cfg, event.Event{
			Type: event.NodeActivated, RunID: cfg.runID, Board: cb.name,
			Instance: instID, Node: bi.def.Name,
		})

		nodeCtx := ctx
		var span trace.Span
		if cfg.tracingEnabled {
			nodeCtx, span = cfg.spans.StartActivationSpan(ctx, instID, bi.def.Name)
		}

		// Executing: the node body runs with panic containment, so a
		// buggy node fails its own run and nothing else.
		ec := newExecutionContext(nodeCtx, cfg, cb.name, bi, inputs)
		nodeStart := time.Now()
		runNode(bi.node, ec)
		result := ec.finalResult()
		nodeDuration := time.Since(nodeStart)

		report.Activations++
		report.Results[instID] = result

		cfg.metrics.RecordActivation(nodeCtx, bi.def.Name, nodeDuration, result.Failed())
		if cfg.tracingEnabled {
			var spanErr error
			if result.Failed() {
				spanErr = fmt.Errorf("node failed: %s", result.Message)
			}
			cfg.spans.EndSpanWithError(span, spanErr)
		}
		durationMs := float64(nodeDuration.Milliseconds())
		observability.LogNodeResult(cfg.logger, instID, bi.def.Name, string(result.Status), result.Message, durationMs)
		publishEvent(cfg, event.Event{
			Type: event.NodeCompleted, RunID: cfg.runID, Board: cb.name,
			Instance: instID, Node: bi.def.Name,
			Status: string(result.Status), Message: result.Message,
		})
		if cfg.trace != nil {
			rec := runlog.Record{
				RunID:      cfg.runID,
				Seq:        report.Activations,
				Instance:   instID,
				Node:       bi.def.Name,
				Status:     string(result.Status),
				Message:    result.Message,
				DurationMs: nodeDuration.Milliseconds(),
			}
			if err := cfg.trace.Append(rec); err != nil {
				cfg.logger.Warn("run log append failed", slog.String("error", err.Error()))
			}
		}

		// Propagating: outputs move downstream only on success; a failed
		// node propagates nothing and fires only its declared error pin.
		var firedPins []string
		if result.Failed() {
			if bi.def.ErrorPin != "" {
				firedPins = []string{bi.def.ErrorPin}
			} else {
				unhandledFail = true
			}
		} else {
			for pinID, v := range ec.outputs {
				for _, target := range cb.dataOut[instID][pinID] {
					if values[target.Instance] == nil {
						values[target.Instance] = make(map[string]any)
					}
					values[target.Instance][target.Pin] = v
				}
			}
			firedPins = ec.activated
			if len(firedPins) == 0 {
				for _, p := range bi.def.ExecOutputs() {
					if p.ID != bi.def.ErrorPin {
						firedPins = append(firedPins, p.ID)
					}
				}
			}
		}

		// Ready: fired-edge bookkeeping and the queue update happen
		// together, between activations, so a target cannot double-fire.
		for _, pinID := range firedPins {
			for _, idx := range cb.execOut[instID][pinID] {
				edge := cb.execEdges[idx]
				target := edge.To.Instance
				publishEvent(cfg, event.Event{
					Type: event.EdgeFired, RunID: cfg.runID, Board: cb.name,
					Instance: instID, Node: bi.def.Name, Pin: pinID,
				})

				if cb.instances[target].def.JoinExec {
					if joinPending[target] == nil {
						joinPending[target] = make(map[int]struct{})
					}
					joinPending[target][idx] = struct{}{}
					if len(joinPending[target]) == len(cb.reachableExecIn[target]) {
						delete(joinPending, target)
						queue = append(queue, target)
					}
				} else {
					queue = append(queue, target)
				}
			}
		}
	}

	// Completed: aggregate the outcome. With a designated terminal, only
	// its result decides; otherwise any unhandled node failure fails the
	// run, while failures routed through an error pin do not.
	switch {
	case cb.terminal != "":
		res, activated := report.Results[cb.terminal]
		if activated && !res.Failed() {
			report.Outcome = OutcomeSuccess
		} else {
			report.Outcome = OutcomeFail
		}
	case unhandledFail:
		report.Outcome = OutcomeFail
	default:
		report.Outcome = OutcomeSuccess
	}
	return nil
}

// bindInputs resolves every data input of the activating instance:
// bound value, then instance override, then pin default. An input with
// none of the three is a scheduler fault that aborts the run.
//
// Compound values are cloned at bind time, so the activation exclusively
// owns its inputs. A node mutating a struct or byte slice can never leak
// the mutation into a sibling activation fed from the same output, an
// override, or a shared pin default.
func (cb *CompiledBoard) bindInputs(bi *boundInstance, bound map[string]any) (map[string]any, error) {
	inputs := make(map[string]any)
	for _, pin := range bi.def.Inputs() {
		if v, ok := bound[pin.ID]; ok {
			inputs[pin.ID] = cloneValue(v)
			continue
		}
		if v, ok := bi.overrides[pin.ID]; ok {
			inputs[pin.ID] = cloneValue(v)
			continue
		}
		if pin.Default != nil {
			canon, err := pin.Type.Canonical(pin.Default)
			if err != nil {
				return nil, fmt.Errorf("default for pin %q: %w", pin.ID, err)
			}
			inputs[pin.ID] = cloneValue(canon)
			continue
		}
		return nil, fmt.Errorf("%w: pin %q", ErrMissingInput, pin.ID)
	}
	return inputs, nil
}

// cloneValue deep-copies compound values. Scalars are immutable and
// returned unchanged.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []byte:
		out := make([]byte, len(t))
		copy(out, t)
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

// runNode executes the node body with panic containment. A panic becomes
// a node failure, overriding any result the node reported before it blew
// up, so a half-finished activation never propagates outputs.
func runNode(n Node, ec *ExecutionContext) {
	defer func() {
		if r := recover(); r != nil {
			ec.logger.Error("node panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			ec.result = &Result{Status: StatusFail, Message: fmt.Sprintf("node panicked: %v", r)}
		}
	}()
	n.Run(ec)
}

// publishEvent stamps and publishes an event when a bus is configured.
func publishEvent(cfg *runConfig, evt event.Event) {
	if cfg.events == nil {
		return
	}
	evt.Time = time.Now()
	cfg.events.Publish(evt)
}
