package boardflow

import (
	"errors"
	"fmt"
)

// Compile validates the board against the registry and produces an
// immutable CompiledBoard ready to run.
//
// Validation checks (all build-time; a run never starts on a bad board):
//   - instance ids are unique and non-empty
//   - every instance references a registered definition
//   - default overrides name declared input data pins and match their type
//   - every edge endpoint references an existing instance and pin
//   - every edge connects an output pin to an input pin of identical type
//   - explicit entries and the terminal reference existing instances
//   - at least one entry instance exists
//
// Multiple violations are reported together via errors.Join.
func (b *Board) Compile(reg *NodeRegistry) (*CompiledBoard, error) {
	var errs []error

	instances := make(map[string]*boundInstance, len(b.Nodes))
	order := make([]string, 0, len(b.Nodes))

	for _, inst := range b.Nodes {
		if inst.ID == "" {
			errs = append(errs, &BoardError{Board: b.Name, Err: fmt.Errorf("instance has empty id")})
			continue
		}
		if _, dup := instances[inst.ID]; dup {
			errs = append(errs, &BoardError{Board: b.Name, Instance: inst.ID, Err: fmt.Errorf("duplicate instance id")})
			continue
		}

		def, err := reg.Lookup(inst.Node)
		if err != nil {
			errs = append(errs, &BoardError{Board: b.Name, Instance: inst.ID,
				Err: fmt.Errorf("%w: %q", err, inst.Node)})
			continue
		}
		node, _ := reg.Node(inst.Node)

		overrides, err := canonicalOverrides(def, inst.Overrides)
		if err != nil {
			errs = append(errs, &BoardError{Board: b.Name, Instance: inst.ID, Err: err})
			continue
		}

		instances[inst.ID] = &boundInstance{
			id:        inst.ID,
			def:       def,
			node:      node,
			overrides: overrides,
		}
		order = append(order, inst.ID)
	}

	execOut := make(map[string]map[string][]int)
	dataOut := make(map[string]map[string][]Endpoint)
	execIn := make(map[string][]int)
	var execEdges []Edge

	for _, e := range b.Edges {
		fromPin, toPin, err := b.resolveEdge(instances, e)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if fromPin.IsExec() {
			idx := len(execEdges)
			execEdges = append(execEdges, e)
			if execOut[e.From.Instance] == nil {
				execOut[e.From.Instance] = make(map[string][]int)
			}
			execOut[e.From.Instance][e.From.Pin] = append(execOut[e.From.Instance][e.From.Pin], idx)
			execIn[e.To.Instance] = append(execIn[e.To.Instance], idx)
		} else {
			_ = toPin
			if dataOut[e.From.Instance] == nil {
				dataOut[e.From.Instance] = make(map[string][]Endpoint)
			}
			dataOut[e.From.Instance][e.From.Pin] = append(dataOut[e.From.Instance][e.From.Pin], e.To)
		}
	}

	entries, entryErrs := b.resolveEntries(instances, order, execIn)
	errs = append(errs, entryErrs...)

	if b.Terminal != "" {
		if _, ok := instances[b.Terminal]; !ok {
			errs = append(errs, &BoardError{Board: b.Name,
				Err: fmt.Errorf("%w: terminal %q", ErrUnknownInstance, b.Terminal)})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	cb := &CompiledBoard{
		name:      b.Name,
		terminal:  b.Terminal,
		instances: instances,
		order:     order,
		entries:   entries,
		execEdges: execEdges,
		execOut:   execOut,
		execIn:    execIn,
		dataOut:   dataOut,
	}
	cb.computeReachability()
	return cb, nil
}

// resolveEdge validates both endpoints and the type-match invariant.
func (b *Board) resolveEdge(instances map[string]*boundInstance, e Edge) (Pin, Pin, error) {
	var zero Pin

	src, ok := instances[e.From.Instance]
	if !ok {
		return zero, zero, &EdgeError{From: e.From, To: e.To,
			Err: fmt.Errorf("%w: %q", ErrUnknownInstance, e.From.Instance)}
	}
	dst, ok := instances[e.To.Instance]
	if !ok {
		return zero, zero, &EdgeError{From: e.From, To: e.To,
			Err: fmt.Errorf("%w: %q", ErrUnknownInstance, e.To.Instance)}
	}

	fromPin, ok := src.def.Pin(e.From.Pin)
	if !ok {
		return zero, zero, &EdgeError{From: e.From, To: e.To,
			Err: fmt.Errorf("%w: %q on %q", ErrUnknownPin, e.From.Pin, src.def.Name)}
	}
	toPin, ok := dst.def.Pin(e.To.Pin)
	if !ok {
		return zero, zero, &EdgeError{From: e.From, To: e.To,
			Err: fmt.Errorf("%w: %q on %q", ErrUnknownPin, e.To.Pin, dst.def.Name)}
	}

	if fromPin.Direction != Output || toPin.Direction != Input {
		return zero, zero, &EdgeError{From: e.From, To: e.To, Err: ErrPinDirection}
	}

	// Identical DataType only. No coercion: a string output never feeds
	// an integer input, and exec connects only to exec.
	if fromPin.Type != toPin.Type {
		return zero, zero, &EdgeError{From: e.From, To: e.To,
			Err: fmt.Errorf("%w: %s -> %s", ErrTypeMismatch, fromPin.Type, toPin.Type)}
	}

	return fromPin, toPin, nil
}

// resolveEntries returns the run entry instances: the explicit list when
// given, otherwise every instance with exec pins and no incoming exec edge.
func (b *Board) resolveEntries(instances map[string]*boundInstance, order []string, execIn map[string][]int) ([]string, []error) {
	var errs []error

	if len(b.Entries) > 0 {
		entries := make([]string, 0, len(b.Entries))
		for _, id := range b.Entries {
			if _, ok := instances[id]; !ok {
				errs = append(errs, &BoardError{Board: b.Name,
					Err: fmt.Errorf("%w: entry %q", ErrUnknownInstance, id)})
				continue
			}
			entries = append(entries, id)
		}
		return entries, errs
	}

	var entries []string
	for _, id := range order {
		bi := instances[id]
		hasExec := len(bi.def.ExecInputs()) > 0 || len(bi.def.ExecOutputs()) > 0
		if hasExec && len(execIn[id]) == 0 {
			entries = append(entries, id)
		}
	}
	if len(entries) == 0 && len(instances) > 0 {
		errs = append(errs, &BoardError{Board: b.Name, Err: ErrNoEntry})
	}
	return entries, errs
}

// canonicalOverrides validates per-instance default overrides against the
// definition and canonicalizes their values.
func canonicalOverrides(def *Definition, overrides map[string]any) (map[string]any, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(overrides))
	for pinID, v := range overrides {
		pin, ok := def.Pin(pinID)
		if !ok {
			return nil, fmt.Errorf("override %w: %q on %q", ErrUnknownPin, pinID, def.Name)
		}
		if pin.Direction != Input || pin.IsExec() {
			return nil, fmt.Errorf("override pin %q must be a data input", pinID)
		}
		canon, err := pin.Type.Canonical(v)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", pinID, err)
		}
		out[pinID] = canon
	}
	return out, nil
}
